package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptpilot/promptpilot/internal/application/optimization/usecases"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
	"github.com/promptpilot/promptpilot/internal/shared/utils"
)

type OptimizeRequest struct {
	RawPrompt string `json:"raw_prompt"`
	Tone      string `json:"tone"`
}

type OptimizeHandler struct {
	optimizeUC optimizePromptUseCase
	logger     logger.Interface
}

func NewOptimizeHandler(optimizeUC optimizePromptUseCase, logger logger.Interface) *OptimizeHandler {
	return &OptimizeHandler{
		optimizeUC: optimizeUC,
		logger:     logger,
	}
}

// Optimize spends one token and rewrites the prompt
// @Summary Optimize a prompt
// @Description Consumes one token (Free plan) and returns the optimized prompt
// @Tags Optimize
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body OptimizeRequest true "Prompt and tone"
// @Success 200 {object} dto.OptimizeResultDTO
// @Failure 400 {object} utils.ErrorBody
// @Failure 401 {object} utils.ErrorBody
// @Failure 429 {object} utils.ErrorBody
// @Router /optimize [post]
func (h *OptimizeHandler) Optimize(c *gin.Context) {
	ac, ok := currentUser(c)
	if !ok {
		return
	}

	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for optimize", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.optimizeUC.Execute(c.Request.Context(), ac, usecases.OptimizeCommand{
		RawPrompt: req.RawPrompt,
		Tone:      req.Tone,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result)
}
