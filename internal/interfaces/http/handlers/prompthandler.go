package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptpilot/promptpilot/internal/application/prompt/usecases"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
	"github.com/promptpilot/promptpilot/internal/shared/utils"
)

// PromptHandler serves the caller's optimization history.
type PromptHandler struct {
	listPromptsUC   listPromptsUseCase
	exportPromptsUC exportPromptsUseCase
	logger          logger.Interface
}

func NewPromptHandler(listPromptsUC listPromptsUseCase, exportPromptsUC exportPromptsUseCase, logger logger.Interface) *PromptHandler {
	return &PromptHandler{
		listPromptsUC:   listPromptsUC,
		exportPromptsUC: exportPromptsUC,
		logger:          logger,
	}
}

// ListPrompts returns one page of history, newest first
// @Summary List prompt history
// @Tags Prompts
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.ListResponse{items=[]dto.PromptDTO}
// @Failure 401 {object} utils.ErrorBody
// @Router /prompts [get]
func (h *PromptHandler) ListPrompts(c *gin.Context) {
	ac, ok := currentUser(c)
	if !ok {
		return
	}

	p := utils.ParsePagination(c)
	result, err := h.listPromptsUC.Execute(c.Request.Context(), ac, usecases.ListPromptsQuery{
		Page:     p.Page,
		PageSize: p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Items, result.Total, p.Page, p.PageSize)
}

// ExportPrompts handles GET /prompts/export
func (h *PromptHandler) ExportPrompts(c *gin.Context) {
	ac, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.exportPromptsUC.Execute(c.Request.Context(), ac)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
