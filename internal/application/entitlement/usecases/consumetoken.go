package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
	"github.com/promptpilot/promptpilot/internal/shared/biztime"
	"github.com/promptpilot/promptpilot/internal/shared/db"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

// QuotaExceededMessage is returned to users who have run out of tokens.
const QuotaExceededMessage = "No tokens available. Upgrade to Pro for unlimited prompts or wait for daily token refresh."

type ConsumeResult struct {
	Entitlement *entitlement.Entitlement
	Decision    entitlement.Decision
}

// Remaining is the balance after consumption.
func (r *ConsumeResult) Remaining() int {
	return r.Entitlement.Tokens()
}

// ConsumeTokenUseCase spends one token for a unit of work. Concurrent calls
// for the same user are serialised by the entitlement version.
type ConsumeTokenUseCase struct {
	repo   entitlement.Repository
	logger logger.Interface
	now    func() time.Time
}

func NewConsumeTokenUseCase(repo entitlement.Repository, logger logger.Interface) *ConsumeTokenUseCase {
	return &ConsumeTokenUseCase{
		repo:   repo,
		logger: logger,
		now:    biztime.NowUTC,
	}
}

// SetClock replaces the server clock.
func (uc *ConsumeTokenUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *ConsumeTokenUseCase) Execute(ctx context.Context, ac auth.Context) (*ConsumeResult, error) {
	if !ac.Valid() {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	now := uc.now()
	var result *ConsumeResult

	err := db.RetryOnConflict(ctx, db.DefaultMaxAttempts, func(ctx context.Context) error {
		current, _, err := uc.repo.GetOrCreate(ctx, ac.UserID, now)
		if err != nil {
			return err
		}

		next, decision, err := entitlement.Consume(current, now)
		if errors.Is(err, entitlement.ErrNoTokensAvailable) {
			uc.logger.Infow("token consumption denied", "user_id", ac.UserID, "plan", current.Plan())
			return apperrors.NewQuotaExceededError(QuotaExceededMessage)
		}
		if err != nil {
			return err
		}

		if decision.Changed {
			ok, err := uc.repo.CompareAndSwap(ctx, next, current.Version())
			if err != nil {
				return err
			}
			if !ok {
				uc.logger.Debugw("entitlement changed during consumption, retrying", "user_id", ac.UserID)
				return db.ErrVersionConflict
			}
		}

		result = &ConsumeResult{Entitlement: next, Decision: decision}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Debugw("token consumed",
		"user_id", ac.UserID,
		"remaining", result.Remaining(),
		"unlimited", result.Decision.Unlimited,
		"refilled", result.Decision.Refilled,
	)
	return result, nil
}
