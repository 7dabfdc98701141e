package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/promptpilot/promptpilot/internal/application/payment/dto"
	"github.com/promptpilot/promptpilot/internal/application/payment/paymentgateway"
	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/domain/payment"
	vo "github.com/promptpilot/promptpilot/internal/domain/payment/valueobjects"
	"github.com/promptpilot/promptpilot/internal/shared/biztime"
	"github.com/promptpilot/promptpilot/internal/shared/db"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

type CreateOrderCommand struct {
	UserID string
	Email  string
	Plan   string
	// Amount is in major units and must equal the Pro price.
	Amount int64
}

// CreateOrderUseCase opens a provider order for the Pro upgrade and moves the
// subscription to pending.
type CreateOrderUseCase struct {
	entitlementRepo entitlement.Repository
	paymentRepo     payment.Repository
	gateway         paymentgateway.PaymentGateway
	tx              TransactionRunner
	settings        Settings
	logger          logger.Interface
	now             func() time.Time
}

func NewCreateOrderUseCase(
	entitlementRepo entitlement.Repository,
	paymentRepo payment.Repository,
	gateway paymentgateway.PaymentGateway,
	tx TransactionRunner,
	settings Settings,
	logger logger.Interface,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		entitlementRepo: entitlementRepo,
		paymentRepo:     paymentRepo,
		gateway:         gateway,
		tx:              tx,
		settings:        settings.withDefaults(),
		logger:          logger,
		now:             biztime.NowUTC,
	}
}

func (uc *CreateOrderUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

func (uc *CreateOrderUseCase) Execute(ctx context.Context, cmd CreateOrderCommand) (*dto.OrderDTO, error) {
	if cmd.UserID == "" {
		return nil, apperrors.NewValidationError("user ID is required")
	}
	if cmd.Plan == "" {
		cmd.Plan = entitlement.PlanPro.String()
	}
	plan, ok := entitlement.ParsePlan(cmd.Plan)
	if !ok || plan != entitlement.PlanPro {
		return nil, apperrors.NewValidationError("Only Pro plan upgrades are supported")
	}
	if cmd.Amount != uc.settings.ProAmount {
		return nil, apperrors.NewValidationError("Invalid amount for Pro plan")
	}

	current, err := uc.entitlementRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if current.IsUnlimited() {
		return nil, apperrors.NewValidationError("Already subscribed to Pro plan")
	}

	amount, err := vo.FromMajor(cmd.Amount, uc.settings.Currency)
	if err != nil {
		return nil, apperrors.NewInternalError("invalid billing currency", err.Error())
	}

	now := uc.now()
	notes := map[string]string{
		"userId": cmd.UserID,
		"plan":   plan.String(),
		"email":  cmd.Email,
	}
	order, err := uc.gateway.CreateOrder(ctx, paymentgateway.CreateOrderRequest{
		Amount:   amount.AmountMinor(),
		Currency: amount.Currency(),
		Receipt:  receiptFor(now),
		Notes:    notes,
	})
	if err != nil {
		uc.logger.Errorw("failed to create provider order", "user_id", cmd.UserID, "error", err)
		return nil, apperrors.NewUpstreamUnavailableError("Failed to create payment order")
	}

	err = db.RetryOnConflict(ctx, db.DefaultMaxAttempts, func(ctx context.Context) error {
		return uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
			current, err := uc.entitlementRepo.GetByUserID(ctx, cmd.UserID)
			if err != nil {
				return err
			}
			next := current.Clone()
			if err := next.BeginOrder(order.ID, cmd.Amount, now); err != nil {
				if errors.Is(err, entitlement.ErrAlreadySubscribed) {
					return apperrors.NewValidationError("Already subscribed to Pro plan")
				}
				return apperrors.NewValidationError(err.Error())
			}
			ok, err := uc.entitlementRepo.CompareAndSwap(ctx, next, current.Version())
			if err != nil {
				return err
			}
			if !ok {
				return db.ErrVersionConflict
			}

			record, err := payment.NewPayment(order.ID, cmd.UserID, plan.String(), amount, order.Receipt, now)
			if err != nil {
				return apperrors.NewValidationError(err.Error())
			}
			record.SetMetadata("notes", notes)
			return uc.paymentRepo.Upsert(ctx, record)
		})
	})
	if err != nil {
		uc.logger.Errorw("failed to record order", "user_id", cmd.UserID, "order_id", order.ID, "error", err)
		return nil, err
	}

	uc.logger.Infow("payment order created",
		"user_id", cmd.UserID,
		"order_id", order.ID,
		"amount", amount.String(),
	)

	return &dto.OrderDTO{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Receipt,
	}, nil
}

// receiptFor returns "rcpt_" and the last eight digits of the millisecond clock.
func receiptFor(now time.Time) string {
	ms := fmt.Sprintf("%d", now.UnixMilli())
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return "rcpt_" + ms
}
