package usecases

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	entitlementusecases "github.com/promptpilot/promptpilot/internal/application/entitlement/usecases"
	"github.com/promptpilot/promptpilot/internal/application/optimization/dto"
	"github.com/promptpilot/promptpilot/internal/domain/prompt"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
	"github.com/promptpilot/promptpilot/internal/shared/biztime"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

type OptimizeCommand struct {
	RawPrompt string
	Tone      string
}

// TokenConsumer spends one token for the caller.
type TokenConsumer interface {
	Execute(ctx context.Context, ac auth.Context) (*entitlementusecases.ConsumeResult, error)
}

// OptimizePromptUseCase meters, optimizes and records one prompt. The token is
// spent before the provider is called, and provider failures fall back to the
// local template.
type OptimizePromptUseCase struct {
	consumer   TokenConsumer
	optimizer  Optimizer
	promptRepo prompt.Repository
	logger     logger.Interface
	now        func() time.Time
}

// NewOptimizePromptUseCase builds the use case. optimizer may be nil, in which
// case every prompt is produced by the template.
func NewOptimizePromptUseCase(
	consumer TokenConsumer,
	optimizer Optimizer,
	promptRepo prompt.Repository,
	logger logger.Interface,
) *OptimizePromptUseCase {
	return &OptimizePromptUseCase{
		consumer:   consumer,
		optimizer:  optimizer,
		promptRepo: promptRepo,
		logger:     logger,
		now:        biztime.NowUTC,
	}
}

func (uc *OptimizePromptUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *OptimizePromptUseCase) Execute(ctx context.Context, ac auth.Context, cmd OptimizeCommand) (*dto.OptimizeResultDTO, error) {
	if !ac.Valid() {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	// The prompt is stored as typed; markup is only sanitized when history is rendered.
	raw := strings.TrimSpace(cmd.RawPrompt)
	if raw == "" {
		return nil, apperrors.NewValidationError("Prompt is required")
	}
	if utf8.RuneCountInString(raw) > prompt.MaxRawLength {
		return nil, apperrors.NewValidationError("Prompt is too long")
	}
	tone, ok := prompt.ParseTone(cmd.Tone)
	if !ok {
		return nil, apperrors.NewValidationError("Invalid tone")
	}

	consumed, err := uc.consumer.Execute(ctx, ac)
	if err != nil {
		return nil, err
	}

	text, provider := uc.optimize(ctx, ac.UserID, raw, tone)

	record, err := prompt.NewRecord(ac.UserID, raw, text, tone, provider, uc.now())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if err := uc.promptRepo.Create(ctx, record); err != nil {
		uc.logger.Errorw("failed to save prompt", "user_id", ac.UserID, "error", err)
		return nil, err
	}

	remaining := consumed.Remaining()
	if consumed.Decision.Unlimited {
		remaining = -1
	}

	return &dto.OptimizeResultDTO{
		Success:         true,
		OptimizedPrompt: text,
		Provider:        provider,
		TokensUsed:      1,
		RemainingTokens: remaining,
		IsUnlimited:     consumed.Decision.Unlimited,
	}, nil
}

func (uc *OptimizePromptUseCase) optimize(ctx context.Context, userID, raw string, tone prompt.Tone) (string, string) {
	if uc.optimizer == nil {
		return prompt.ApplyTemplate(raw, tone), prompt.ProviderTemplate
	}

	outcome := uc.optimizer.Optimize(ctx, raw, tone)
	if !outcome.OK() {
		uc.logger.Warnw("optimizer failed, using template",
			"provider", uc.optimizer.Name(),
			"user_id", userID,
			"error", outcome.Err,
		)
		return prompt.ApplyTemplate(raw, tone), prompt.ProviderTemplate
	}
	return outcome.Text, uc.optimizer.Name()
}
