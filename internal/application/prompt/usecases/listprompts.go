package usecases

import (
	"context"

	"github.com/promptpilot/promptpilot/internal/application/prompt/dto"
	"github.com/promptpilot/promptpilot/internal/domain/prompt"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

// Renderer turns an optimized prompt into display-safe HTML.
type Renderer interface {
	ToHTMLSanitized(markdown string) (string, error)
}

type ListPromptsQuery struct {
	Page     int
	PageSize int
}

// ListPromptsUseCase returns the caller's optimization history, newest first.
type ListPromptsUseCase struct {
	repo     prompt.Repository
	renderer Renderer
	logger   logger.Interface
}

func NewListPromptsUseCase(repo prompt.Repository, renderer Renderer, logger logger.Interface) *ListPromptsUseCase {
	return &ListPromptsUseCase{
		repo:     repo,
		renderer: renderer,
		logger:   logger,
	}
}

func (uc *ListPromptsUseCase) Execute(ctx context.Context, ac auth.Context, query ListPromptsQuery) (*dto.PromptListDTO, error) {
	if !ac.Valid() {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	records, total, err := uc.repo.ListByUserID(ctx, ac.UserID, query.Page, query.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list prompts", "user_id", ac.UserID, "error", err)
		return nil, err
	}

	items := make([]dto.PromptDTO, 0, len(records))
	for _, r := range records {
		html, err := uc.renderer.ToHTMLSanitized(r.Optimized)
		if err != nil {
			uc.logger.Warnw("failed to render prompt", "prompt_id", r.ID, "error", err)
			html = ""
		}
		items = append(items, dto.ToPromptDTO(r, html))
	}

	return &dto.PromptListDTO{Items: items, Total: total}, nil
}
