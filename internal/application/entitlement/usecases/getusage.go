package usecases

import (
	"context"
	"time"

	"github.com/promptpilot/promptpilot/internal/application/entitlement/dto"
	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
	"github.com/promptpilot/promptpilot/internal/shared/biztime"
	"github.com/promptpilot/promptpilot/internal/shared/db"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

// GetUsageUseCase reports the balance after applying any pending daily refill.
type GetUsageUseCase struct {
	repo   entitlement.Repository
	logger logger.Interface
	now    func() time.Time
}

func NewGetUsageUseCase(repo entitlement.Repository, logger logger.Interface) *GetUsageUseCase {
	return &GetUsageUseCase{
		repo:   repo,
		logger: logger,
		now:    biztime.NowUTC,
	}
}

func (uc *GetUsageUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *GetUsageUseCase) Execute(ctx context.Context, ac auth.Context) (*dto.UsageDTO, error) {
	if !ac.Valid() {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	ent, err := refreshed(ctx, uc.repo, ac.UserID, uc.now())
	if err != nil {
		uc.logger.Errorw("failed to load usage", "user_id", ac.UserID, "error", err)
		return nil, err
	}
	return dto.ToUsageDTO(ent), nil
}

// refreshed loads or creates the entitlement and persists a due refill.
func refreshed(ctx context.Context, repo entitlement.Repository, userID string, now time.Time) (*entitlement.Entitlement, error) {
	var result *entitlement.Entitlement

	err := db.RetryOnConflict(ctx, db.DefaultMaxAttempts, func(ctx context.Context) error {
		current, _, err := repo.GetOrCreate(ctx, userID, now)
		if err != nil {
			return err
		}

		next, changed := entitlement.Refresh(current, now)
		if changed {
			ok, err := repo.CompareAndSwap(ctx, next, current.Version())
			if err != nil {
				return err
			}
			if !ok {
				return db.ErrVersionConflict
			}
		}
		result = next
		return nil
	})
	return result, err
}
