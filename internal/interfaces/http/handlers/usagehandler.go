package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptpilot/promptpilot/internal/application/entitlement/dto"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
	"github.com/promptpilot/promptpilot/internal/shared/utils"
)

// UsageHandler reports and spends the caller's tokens.
type UsageHandler struct {
	getUsageUC      getUsageUseCase
	consumeTokenUC  consumeTokenUseCase
	getUserStatusUC getUserStatusUseCase
	logger          logger.Interface
}

func NewUsageHandler(
	getUsageUC getUsageUseCase,
	consumeTokenUC consumeTokenUseCase,
	getUserStatusUC getUserStatusUseCase,
	logger logger.Interface,
) *UsageHandler {
	return &UsageHandler{
		getUsageUC:      getUsageUC,
		consumeTokenUC:  consumeTokenUC,
		getUserStatusUC: getUserStatusUC,
		logger:          logger,
	}
}

// GetUsage returns the token balance after applying the daily refill
// @Summary Get token usage
// @Tags Usage
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UsageDTO
// @Failure 401 {object} utils.ErrorBody
// @Router /usage [get]
func (h *UsageHandler) GetUsage(c *gin.Context) {
	ac, ok := currentUser(c)
	if !ok {
		return
	}

	usage, err := h.getUsageUC.Execute(c.Request.Context(), ac)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, usage)
}

// ConsumeToken spends one token without optimizing
// @Summary Use a token
// @Tags Usage
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ConsumeTokenDTO
// @Failure 401 {object} utils.ErrorBody
// @Failure 429 {object} utils.ErrorBody
// @Router /usage [post]
func (h *UsageHandler) ConsumeToken(c *gin.Context) {
	ac, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.consumeTokenUC.Execute(c.Request.Context(), ac)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, dto.ToConsumeTokenDTO(result.Entitlement))
}

// GetUserStatus handles GET /user/status
func (h *UsageHandler) GetUserStatus(c *gin.Context) {
	ac, ok := currentUser(c)
	if !ok {
		return
	}

	status, err := h.getUserStatusUC.Execute(c.Request.Context(), ac)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, status)
}
