package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptpilot/promptpilot/internal/shared/constants"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
	"github.com/promptpilot/promptpilot/internal/shared/utils"
)

func CustomLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"user_agent", c.Request.UserAgent(),
			"body_size", c.Writer.Size(),
		}

		if requestID := c.GetHeader(constants.HeaderRequestID); requestID != "" {
			args = append(args, "request_id", requestID)
		}

		if ac, ok := GetAuthContext(c); ok {
			args = append(args, "user_id", ac.UserID)
			if ac.Email != "" {
				args = append(args, "email", utils.MaskEmail(ac.Email))
			}
		}

		status := c.Writer.Status()
		switch {
		case status >= 500:
			log.Errorw("HTTP request completed with server error", args...)
		case status >= 400:
			log.Warnw("HTTP request completed with client error", args...)
		default:
			log.Debugw("HTTP request completed successfully", args...)
		}
	}
}
