package usecases

import (
	"context"
	"time"

	"github.com/promptpilot/promptpilot/internal/application/entitlement/dto"
	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
	"github.com/promptpilot/promptpilot/internal/shared/biztime"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

// GetUserStatusUseCase returns the caller's identity and subscription,
// creating the entitlement on first contact.
type GetUserStatusUseCase struct {
	repo   entitlement.Repository
	logger logger.Interface
	now    func() time.Time
}

func NewGetUserStatusUseCase(repo entitlement.Repository, logger logger.Interface) *GetUserStatusUseCase {
	return &GetUserStatusUseCase{
		repo:   repo,
		logger: logger,
		now:    biztime.NowUTC,
	}
}

func (uc *GetUserStatusUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *GetUserStatusUseCase) Execute(ctx context.Context, ac auth.Context) (*dto.UserStatusDTO, error) {
	if !ac.Valid() {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	now := uc.now()
	ent, created, err := uc.repo.GetOrCreate(ctx, ac.UserID, now)
	if err != nil {
		uc.logger.Errorw("failed to load subscription for user status", "user_id", ac.UserID, "error", err)
		return nil, err
	}
	if created {
		uc.logger.Infow("created subscription for user", "user_id", ac.UserID)
	}

	return &dto.UserStatusDTO{
		Authenticated:       true,
		User:                dto.ToUserDTO(ac),
		Subscription:        dto.ToSubscriptionDTO(ent, now),
		CreatedSubscription: created,
	}, nil
}
