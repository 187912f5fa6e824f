package middlewares

import (
	"campus-vote/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogging middleware logs HTTP requests with per-request ids
func RequestLogging(log *logger.Logger) gin.HandlerFunc {
	return log.RequestLogger()
}
