package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptpilot/promptpilot/internal/shared/auth"
	"github.com/promptpilot/promptpilot/internal/shared/constants"
	"github.com/promptpilot/promptpilot/internal/shared/utils"
)

// currentUser returns the session identity, answering 401 when there is none.
func currentUser(c *gin.Context) (auth.Context, bool) {
	if v, exists := c.Get(constants.ContextKeyAuth); exists {
		if ac, ok := v.(auth.Context); ok && ac.Valid() {
			return ac, true
		}
	}
	utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
	return auth.Context{}, false
}

// payingUser decides whose account a payment call acts on. Service callers
// name the user in the body; a session caller may only act on itself.
func payingUser(c *gin.Context, bodyUserID string) (auth.Context, bool) {
	if c.GetBool(constants.ContextKeyService) {
		return auth.Context{UserID: bodyUserID}, true
	}

	ac, ok := currentUser(c)
	if !ok {
		return auth.Context{}, false
	}
	if bodyUserID != "" && bodyUserID != ac.UserID {
		utils.ErrorResponse(c, http.StatusForbidden, "User mismatch")
		return auth.Context{}, false
	}
	return ac, true
}
