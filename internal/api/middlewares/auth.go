package middlewares

import (
	"net/http"
	"strings"
	"time"

	"campus-vote/internal/api/interfaces"
	"campus-vote/internal/api/models"
	"campus-vote/internal/voting"

	"github.com/gin-gonic/gin"
)

// AuthRequired middleware validates JWT tokens issued by the campus
// identity provider and puts the voter projection into the request context
func AuthRequired(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeUnauthorized,
					Message: "Authorization token required",
				},
				Timestamp: time.Now().Unix(),
			})
			c.Abort()
			return
		}

		claims, err := services.AuthService().ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeInvalidToken,
					Message: "Invalid or expired token: " + err.Error(),
				},
				Timestamp: time.Now().Unix(),
			})
			c.Abort()
			return
		}

		c.Set("voter_id", claims.StudentID)
		c.Set("voter_role", claims.Role)
		c.Set("voter", voting.Voter{
			ID:            claims.StudentID,
			Department:    claims.Department,
			ClassLevel:    claims.ClassLevel,
			Organizations: claims.Organizations,
		})

		c.Next()
	}
}

// AdminRequired middleware ensures the caller has the admin role
func AdminRequired(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("voter_role")
		if !exists || role != "admin" {
			c.JSON(http.StatusForbidden, models.BaseResponse{
				Success: false,
				Error: &models.ErrorInfo{
					Code:    models.ErrCodeForbidden,
					Message: "Admin access required",
				},
				Timestamp: time.Now().Unix(),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// WSAuthRequired middleware authenticates WebSocket upgrade requests. The
// browser WebSocket API cannot set headers, so the token rides a query
// parameter.
func WSAuthRequired(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			token = extractToken(c)
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required for WebSocket"})
			c.Abort()
			return
		}

		claims, err := services.AuthService().ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token: " + err.Error()})
			c.Abort()
			return
		}

		c.Set("voter_id", claims.StudentID)
		c.Set("voter_role", claims.Role)
		c.Next()
	}
}

// extractToken extracts JWT token from Authorization header
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}
