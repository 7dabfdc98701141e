package usecases

import (
	"context"
	"fmt"
	"time"

	entitlementdto "github.com/promptpilot/promptpilot/internal/application/entitlement/dto"
	"github.com/promptpilot/promptpilot/internal/application/subscription/dto"
	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
	"github.com/promptpilot/promptpilot/internal/shared/biztime"
	"github.com/promptpilot/promptpilot/internal/shared/db"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

type PrepareUpgradeCommand struct {
	Plan string
}

// PrepareUpgradeUseCase checks that the caller may start a Pro checkout. A
// previously failed payment is cleared so the user can try again.
type PrepareUpgradeUseCase struct {
	repo      entitlement.Repository
	proAmount int64
	logger    logger.Interface
	now       func() time.Time
}

func NewPrepareUpgradeUseCase(repo entitlement.Repository, proAmount int64, logger logger.Interface) *PrepareUpgradeUseCase {
	return &PrepareUpgradeUseCase{
		repo:      repo,
		proAmount: proAmount,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

func (uc *PrepareUpgradeUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *PrepareUpgradeUseCase) Execute(ctx context.Context, ac auth.Context, cmd PrepareUpgradeCommand) (*dto.UpgradeReadinessDTO, error) {
	if !ac.Valid() {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	target := entitlement.PlanPro
	if cmd.Plan != "" {
		p, ok := entitlement.ParsePlan(cmd.Plan)
		if !ok {
			return nil, apperrors.NewValidationError("Invalid plan")
		}
		target = p
	}

	var current *entitlement.Entitlement
	err := db.RetryOnConflict(ctx, db.DefaultMaxAttempts, func(ctx context.Context) error {
		stored, err := uc.repo.GetByUserID(ctx, ac.UserID)
		if err != nil {
			return err
		}
		current = stored

		if stored.Plan() == target {
			return apperrors.NewValidationError(fmt.Sprintf("Already subscribed to %s plan", target))
		}
		if target != entitlement.PlanPro {
			return apperrors.NewValidationError("Only Pro plan upgrades are supported")
		}

		next := stored.Clone()
		if !next.AcknowledgeFailure(uc.now()) {
			return nil
		}
		ok, err := uc.repo.CompareAndSwap(ctx, next, stored.Version())
		if err != nil {
			return err
		}
		if !ok {
			return db.ErrVersionConflict
		}
		current = next
		uc.logger.Infow("cleared failed payment before upgrade", "user_id", ac.UserID)
		return nil
	})
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewNotFoundError("Subscription not found")
		}
		return nil, err
	}

	return &dto.UpgradeReadinessDTO{
		Success:     true,
		Message:     "Ready for upgrade",
		CurrentPlan: current.Plan().String(),
		TargetPlan:  target.String(),
		Amount:      uc.proAmount,
		User:        entitlementdto.ToUserDTO(ac),
	}, nil
}
