package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptpilot/promptpilot/internal/shared/constants"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
	"github.com/promptpilot/promptpilot/internal/shared/utils"
)

// ServiceAuthMiddleware admits trusted backend callers holding the service key,
// or end users with a session.
type ServiceAuthMiddleware struct {
	serviceKey string
	auth       *AuthMiddleware
	logger     logger.Interface
}

func NewServiceAuthMiddleware(serviceKey string, auth *AuthMiddleware, logger logger.Interface) *ServiceAuthMiddleware {
	return &ServiceAuthMiddleware{
		serviceKey: serviceKey,
		auth:       auth,
		logger:     logger,
	}
}

func (m *ServiceAuthMiddleware) RequireServiceOrSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader(constants.HeaderServiceKey); key != "" {
			if m.serviceKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(m.serviceKey)) != 1 {
				m.logger.Warnw("invalid service key", "path", c.Request.URL.Path, "client_ip", c.ClientIP())
				utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
				c.Abort()
				return
			}
			c.Set(constants.ContextKeyService, true)
			c.Next()
			return
		}

		ac, ok := m.auth.authenticate(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		setAuthContext(c, ac)
		c.Next()
	}
}

// IsServiceCaller reports whether the request was admitted by service key.
func IsServiceCaller(c *gin.Context) bool {
	return c.GetBool(constants.ContextKeyService)
}
