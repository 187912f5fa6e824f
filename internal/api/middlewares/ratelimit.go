package middlewares

import (
	"net/http"
	"sync"
	"time"

	"campus-vote/internal/api/models"

	"github.com/gin-gonic/gin"
)

type RateLimiter struct {
	visitors map[string]*Visitor
	mutex    sync.RWMutex
	rate     int
	cleanup  time.Duration
}

type Visitor struct {
	lastSeen time.Time
	count    int
	window   time.Time
}

// NewRateLimiter creates a new rate limiter allowing rate requests per
// minute per client IP
func NewRateLimiter(rate int) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*Visitor),
		rate:     rate,
		cleanup:  time.Minute * 10,
	}

	go rl.cleanupExpiredVisitors()
	return rl
}

// RateLimit middleware implements per-IP rate limiting
func RateLimit(rate int) gin.HandlerFunc {
	limiter := NewRateLimiter(rate)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		if !limiter.Allow(ip) {
			c.JSON(http.StatusTooManyRequests, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeRateLimited,
					Message: "Rate limit exceeded. Please try again later.",
				},
				Timestamp: time.Now().Unix(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	visitor, exists := rl.visitors[ip]

	if !exists {
		rl.visitors[ip] = &Visitor{
			lastSeen: now,
			count:    1,
			window:   now,
		}
		return true
	}

	visitor.lastSeen = now

	// Reset counter if window has passed
	if now.Sub(visitor.window) >= time.Minute {
		visitor.count = 1
		visitor.window = now
		return true
	}

	if visitor.count >= rl.rate {
		return false
	}

	visitor.count++
	return true
}

func (rl *RateLimiter) cleanupExpiredVisitors() {
	ticker := time.NewTicker(rl.cleanup)
	defer ticker.Stop()

	for range ticker.C {
		rl.mutex.Lock()
		now := time.Now()
		for ip, visitor := range rl.visitors {
			if now.Sub(visitor.lastSeen) > rl.cleanup {
				delete(rl.visitors, ip)
			}
		}
		rl.mutex.Unlock()
	}
}
