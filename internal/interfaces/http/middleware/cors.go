package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/promptpilot/promptpilot/internal/shared/constants"
)

// CORS admits browser calls from the configured origins. An empty list or "*"
// allows any origin without credentials.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowHeaders = []string{
		"Origin", "Content-Length", "Content-Type", "Authorization",
		constants.HeaderServiceKey, constants.HeaderRequestID,
	}
	config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	config.ExposeHeaders = []string{"Content-Length", "Content-Disposition", constants.HeaderRequestID}
	config.MaxAge = 24 * time.Hour

	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
		config.AllowCredentials = true
	}
	return cors.New(config)
}

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
