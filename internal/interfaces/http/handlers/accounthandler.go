package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptpilot/promptpilot/internal/application/account/usecases"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
	"github.com/promptpilot/promptpilot/internal/shared/utils"
)

type AccountHandler struct {
	deleteAccountUC deleteAccountUseCase
	logger          logger.Interface
}

func NewAccountHandler(deleteAccountUC deleteAccountUseCase, logger logger.Interface) *AccountHandler {
	return &AccountHandler{
		deleteAccountUC: deleteAccountUC,
		logger:          logger,
	}
}

// DeleteAccount removes the caller's subscription and prompt history
// @Summary Delete account data
// @Tags Account
// @Produce json
// @Security Bearer
// @Success 200 {object} map[string]string
// @Failure 401 {object} utils.ErrorBody
// @Failure 500 {object} utils.ErrorBody
// @Router /account/delete [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	ac, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.deleteAccountUC.Execute(c.Request.Context(), ac); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"message": usecases.DeletedMessage})
}
