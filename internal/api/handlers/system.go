package handlers

import (
	"net/http"
	"time"

	"campus-vote/internal/api/interfaces"
	"campus-vote/internal/api/models"

	"github.com/gin-gonic/gin"
)

// HealthCheck provides a simple health check endpoint
func HealthCheck(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := map[string]string{
			"database": "healthy",
		}

		status := http.StatusOK
		overall := "healthy"
		if !services.IsHealthy() {
			checks["database"] = "unhealthy"
			overall = "unhealthy"
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, models.HealthCheckResponse{
			Status:    overall,
			Timestamp: time.Now().Unix(),
			Version:   "1.0.0",
			Checks:    checks,
		})
	}
}
