package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/promptpilot/promptpilot/internal/shared/auth"
	"github.com/promptpilot/promptpilot/internal/shared/constants"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
	"github.com/promptpilot/promptpilot/internal/shared/utils"
)

// TokenVerifier turns a bearer token into a caller identity.
type TokenVerifier interface {
	Verify(token string) (auth.Context, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier TokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth rejects requests without a valid session.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := m.authenticate(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		setAuthContext(c, ac)
		c.Next()
	}
}

// OptionalAuth resolves the session when one is present.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ac, ok := m.authenticate(c); ok {
			setAuthContext(c, ac)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (auth.Context, bool) {
	token := bearerToken(c.GetHeader("Authorization"))
	if token == "" {
		return auth.Context{}, false
	}

	ac, err := m.verifier.Verify(token)
	if err != nil {
		if apperrors.ShouldLogAuthError(err) {
			m.logger.Warnw("failed to verify token", "error", err, "path", c.Request.URL.Path)
		} else {
			m.logger.Debugw("rejected session token", "error", err, "path", c.Request.URL.Path)
		}
		return auth.Context{}, false
	}
	return ac, ac.Valid()
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func setAuthContext(c *gin.Context, ac auth.Context) {
	c.Set(constants.ContextKeyAuth, ac)
	c.Request = c.Request.WithContext(auth.WithContext(c.Request.Context(), ac))
}

// GetAuthContext returns the identity stored by the auth middleware.
func GetAuthContext(c *gin.Context) (auth.Context, bool) {
	v, exists := c.Get(constants.ContextKeyAuth)
	if !exists {
		return auth.Context{}, false
	}
	ac, ok := v.(auth.Context)
	return ac, ok && ac.Valid()
}
