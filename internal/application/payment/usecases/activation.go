package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/domain/payment"
	vo "github.com/promptpilot/promptpilot/internal/domain/payment/valueobjects"
	"github.com/promptpilot/promptpilot/internal/shared/db"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/goroutine"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

type activationRequest struct {
	UserID    string
	OrderID   string
	PaymentID string
	Method    string
	Source    string
}

type activationResult struct {
	Entitlement *entitlement.Entitlement
	Payment     *payment.Payment
	// Changed is false when the payment had already been applied.
	Changed bool
}

// activator applies a verified payment. The client confirmation and the
// webhook both go through it, so whichever arrives second is a no-op.
type activator struct {
	entitlementRepo entitlement.Repository
	paymentRepo     payment.Repository
	tx              TransactionRunner
	settings        Settings
	receipts        ReceiptSender
	logger          logger.Interface
}

func (a *activator) activate(ctx context.Context, req activationRequest, now time.Time) (*activationResult, error) {
	var result *activationResult

	err := db.RetryOnConflict(ctx, db.DefaultMaxAttempts, func(ctx context.Context) error {
		return a.tx.RunInTransaction(ctx, func(ctx context.Context) error {
			record, err := a.paymentRepo.GetByOrderID(ctx, req.OrderID)
			if err != nil && !apperrors.IsNotFoundError(err) {
				return err
			}
			if record != nil && record.UserID() != req.UserID {
				a.logger.Warnw("payment order belongs to another user",
					"order_id", req.OrderID, "user_id", req.UserID, "owner", record.UserID())
				return apperrors.NewOrderMismatchError(verificationFailedMessage)
			}

			current, err := a.entitlementRepo.GetByUserID(ctx, req.UserID)
			if err != nil {
				return err
			}

			if record != nil && record.IsCompletedWith(req.PaymentID) {
				result = &activationResult{Entitlement: current, Payment: record}
				return nil
			}

			next := current.Clone()
			changed, err := next.ActivatePro(req.OrderID, req.PaymentID, now, a.settings.Period)
			if err != nil {
				if errors.Is(err, entitlement.ErrOrderMismatch) {
					a.logger.Warnw("payment order does not match subscription",
						"order_id", req.OrderID, "expected", current.PaymentOrderID(), "user_id", req.UserID)
					return apperrors.NewOrderMismatchError(verificationFailedMessage)
				}
				return apperrors.NewValidationError(err.Error())
			}
			if changed {
				ok, err := a.entitlementRepo.CompareAndSwap(ctx, next, current.Version())
				if err != nil {
					return err
				}
				if !ok {
					return db.ErrVersionConflict
				}
			}

			if record == nil {
				record, err = a.orphanRecord(req, next, now)
				if err != nil {
					return err
				}
			}
			if _, err := record.MarkCompleted(req.PaymentID, req.Method, now); err != nil {
				if errors.Is(err, payment.ErrAlreadyCompleted) {
					return apperrors.NewOrderMismatchError(verificationFailedMessage)
				}
				return apperrors.NewValidationError(err.Error())
			}
			record.SetMetadata("settled_by", req.Source)
			if err := a.paymentRepo.Upsert(ctx, record); err != nil {
				return err
			}

			result = &activationResult{Entitlement: next, Payment: record, Changed: changed}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	if result.Changed {
		a.logger.Infow("subscription upgraded to Pro",
			"user_id", req.UserID,
			"order_id", req.OrderID,
			"payment_id", req.PaymentID,
			"source", req.Source,
		)
	} else {
		a.logger.Infow("payment already applied", "order_id", req.OrderID, "payment_id", req.PaymentID, "source", req.Source)
	}
	return result, nil
}

// orphanRecord builds the payment row for an order that was created before
// payments were recorded.
func (a *activator) orphanRecord(req activationRequest, e *entitlement.Entitlement, now time.Time) (*payment.Payment, error) {
	major := e.AmountPaid()
	if major <= 0 {
		major = a.settings.ProAmount
	}
	amount, err := vo.FromMajor(major, a.settings.Currency)
	if err != nil {
		return nil, apperrors.NewInternalError("invalid billing currency", err.Error())
	}
	a.logger.Warnw("no payment record for order, creating one", "order_id", req.OrderID, "user_id", req.UserID)
	record, err := payment.NewPayment(req.OrderID, req.UserID, entitlement.PlanPro.String(), amount, "", now)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return record, nil
}

// sendReceipt mails the activation receipt in the background.
func (a *activator) sendReceipt(result *activationResult, email, name string) {
	if a.receipts == nil || !result.Changed || email == "" {
		return
	}
	receipt := Receipt{
		Email:     email,
		Name:      name,
		OrderID:   result.Payment.OrderID(),
		PaymentID: result.Payment.PaymentID(),
		Amount:    result.Payment.Amount().String(),
		Plan:      result.Entitlement.Plan().String(),
		ValidTill: result.Entitlement.SubscriptionEnd(),
	}
	goroutine.SafeGo(a.logger, "send-receipt", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := a.receipts.SendReceipt(ctx, receipt); err != nil {
			a.logger.Warnw("failed to send receipt", "order_id", receipt.OrderID, "error", err)
		}
	})
}

// emailFromNotes reads the email stored with the order.
func emailFromNotes(p *payment.Payment) string {
	if p == nil {
		return ""
	}
	switch notes := p.Metadata()["notes"].(type) {
	case map[string]string:
		return notes["email"]
	case map[string]any:
		s, _ := notes["email"].(string)
		return s
	}
	return ""
}
