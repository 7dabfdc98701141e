package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/promptpilot/promptpilot/internal/application/payment/signature"
	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/domain/payment"
	"github.com/promptpilot/promptpilot/internal/shared/biztime"
	"github.com/promptpilot/promptpilot/internal/shared/db"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

// HandleWebhookUseCase reconciles provider notifications. Anything the
// service cannot act on is logged and acknowledged so the provider stops
// redelivering it; only storage failures ask for a retry.
type HandleWebhookUseCase struct {
	entitlementRepo entitlement.Repository
	paymentRepo     payment.Repository
	verifier        *signature.Verifier
	tx              TransactionRunner
	settings        Settings
	activator       *activator
	logger          logger.Interface
	now             func() time.Time
}

func NewHandleWebhookUseCase(
	entitlementRepo entitlement.Repository,
	paymentRepo payment.Repository,
	verifier *signature.Verifier,
	tx TransactionRunner,
	settings Settings,
	logger logger.Interface,
) *HandleWebhookUseCase {
	settings = settings.withDefaults()
	return &HandleWebhookUseCase{
		entitlementRepo: entitlementRepo,
		paymentRepo:     paymentRepo,
		verifier:        verifier,
		tx:              tx,
		settings:        settings,
		activator: &activator{
			entitlementRepo: entitlementRepo,
			paymentRepo:     paymentRepo,
			tx:              tx,
			settings:        settings,
			logger:          logger,
		},
		logger: logger,
		now:    biztime.NowUTC,
	}
}

func (uc *HandleWebhookUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// SetReceiptSender enables activation receipts (optional dependency injection)
func (uc *HandleWebhookUseCase) SetReceiptSender(sender ReceiptSender) {
	uc.activator.receipts = sender
}

func (uc *HandleWebhookUseCase) Execute(ctx context.Context, body []byte, sig string) error {
	if sig == "" {
		return apperrors.NewBadRequestError("Missing signature")
	}
	if !uc.verifier.VerifyWebhook(body, sig) {
		uc.logger.Warnw("invalid webhook signature", "body_size", len(body))
		if uc.settings.RejectInvalidWebhookSignature {
			return apperrors.NewInvalidSignatureError(verificationFailedMessage)
		}
		return nil
	}

	switch ev := payment.ParseWebhookEvent(body).(type) {
	case payment.PaymentCaptured:
		return uc.handleCaptured(ctx, ev)
	case payment.PaymentFailed:
		return uc.handleFailed(ctx, ev)
	case payment.OrderPaid:
		uc.logger.Infow("order paid", "order_id", ev.OrderID, "payment_id", ev.PaymentID)
		return nil
	case payment.Unrecognized:
		uc.logger.Warnw("unrecognized webhook event", "event", ev.Name, "reason", ev.Reason)
		return nil
	default:
		uc.logger.Warnw("unhandled webhook event", "event", ev.EventName())
		return nil
	}
}

func (uc *HandleWebhookUseCase) handleCaptured(ctx context.Context, ev payment.PaymentCaptured) error {
	userID, err := uc.resolveUser(ctx, ev.UserID, ev.OrderID)
	if err != nil || userID == "" {
		return err
	}

	result, err := uc.activator.activate(ctx, activationRequest{
		UserID:    userID,
		OrderID:   ev.OrderID,
		PaymentID: ev.PaymentID,
		Method:    ev.Method,
		Source:    "webhook",
	}, uc.now())
	if err != nil {
		return uc.acknowledgeUnactionable(err, ev.EventName(), ev.OrderID)
	}

	email := ev.Email
	if email == "" {
		email = emailFromNotes(result.Payment)
	}
	uc.activator.sendReceipt(result, email, "")
	return nil
}

func (uc *HandleWebhookUseCase) handleFailed(ctx context.Context, ev payment.PaymentFailed) error {
	userID, err := uc.resolveUser(ctx, ev.UserID, ev.OrderID)
	if err != nil || userID == "" {
		return err
	}
	now := uc.now()

	err = db.RetryOnConflict(ctx, db.DefaultMaxAttempts, func(ctx context.Context) error {
		return uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
			current, err := uc.entitlementRepo.GetByUserID(ctx, userID)
			if err != nil {
				return err
			}

			next := current.Clone()
			changed, err := next.MarkPaymentFailed(ev.OrderID, now)
			if err != nil {
				if errors.Is(err, entitlement.ErrOrderMismatch) {
					return apperrors.NewOrderMismatchError(verificationFailedMessage)
				}
				return apperrors.NewValidationError(err.Error())
			}
			if changed {
				ok, err := uc.entitlementRepo.CompareAndSwap(ctx, next, current.Version())
				if err != nil {
					return err
				}
				if !ok {
					return db.ErrVersionConflict
				}
			}

			record, err := uc.paymentRepo.GetByOrderID(ctx, ev.OrderID)
			if apperrors.IsNotFoundError(err) {
				return nil
			}
			if err != nil {
				return err
			}
			if record.MarkFailed(ev.PaymentID, ev.Reason, now) {
				return uc.paymentRepo.Upsert(ctx, record)
			}
			return nil
		})
	})
	if err != nil {
		return uc.acknowledgeUnactionable(err, ev.EventName(), ev.OrderID)
	}

	uc.logger.Infow("payment failed", "user_id", userID, "order_id", ev.OrderID, "reason", ev.Reason)
	return nil
}

// resolveUser prefers the user named in the order notes and falls back to the
// owner of the recorded payment. An empty result means the event is acknowledged.
func (uc *HandleWebhookUseCase) resolveUser(ctx context.Context, noted, orderID string) (string, error) {
	if noted != "" {
		return noted, nil
	}
	record, err := uc.paymentRepo.GetByOrderID(ctx, orderID)
	if apperrors.IsNotFoundError(err) {
		uc.logger.Warnw("webhook for unknown order", "order_id", orderID)
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return record.UserID(), nil
}

func (uc *HandleWebhookUseCase) acknowledgeUnactionable(err error, event, orderID string) error {
	if apperrors.IsOrderMismatchError(err) || apperrors.IsNotFoundError(err) || apperrors.IsValidationError(err) {
		uc.logger.Warnw("webhook event not applied", "event", event, "order_id", orderID, "error", err)
		return nil
	}
	uc.logger.Errorw("failed to process webhook event", "event", event, "order_id", orderID, "error", err)
	return err
}
