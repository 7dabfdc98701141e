package usecases

import (
	"context"
	"time"

	entitlementdto "github.com/promptpilot/promptpilot/internal/application/entitlement/dto"
	paymentdto "github.com/promptpilot/promptpilot/internal/application/payment/dto"
	"github.com/promptpilot/promptpilot/internal/application/subscription/dto"
	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/domain/payment"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
	"github.com/promptpilot/promptpilot/internal/shared/biztime"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

// GetSubscriptionUseCase reports the caller's subscription and payment history.
type GetSubscriptionUseCase struct {
	entitlementRepo entitlement.Repository
	paymentRepo     payment.Repository
	logger          logger.Interface
	now             func() time.Time
}

func NewGetSubscriptionUseCase(
	entitlementRepo entitlement.Repository,
	paymentRepo payment.Repository,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		entitlementRepo: entitlementRepo,
		paymentRepo:     paymentRepo,
		logger:          logger,
		now:             biztime.NowUTC,
	}
}

func (uc *GetSubscriptionUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, ac auth.Context) (*dto.SubscriptionDetailsDTO, error) {
	if !ac.Valid() {
		return nil, apperrors.NewUnauthorizedError("Unauthorized")
	}

	current, err := uc.entitlementRepo.GetByUserID(ctx, ac.UserID)
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewNotFoundError("Subscription not found")
		}
		uc.logger.Errorw("failed to load subscription", "user_id", ac.UserID, "error", err)
		return nil, err
	}

	payments, err := uc.paymentRepo.ListByUserID(ctx, ac.UserID)
	if err != nil {
		uc.logger.Errorw("failed to load payment history", "user_id", ac.UserID, "error", err)
		return nil, err
	}

	return &dto.SubscriptionDetailsDTO{
		Success:      true,
		Subscription: entitlementdto.ToSubscriptionDTO(current, uc.now()),
		Payments:     paymentdto.ToPaymentDTOs(payments),
	}, nil
}
