package usecases

import (
	"context"
	"time"

	"github.com/promptpilot/promptpilot/internal/application/payment/dto"
	"github.com/promptpilot/promptpilot/internal/application/payment/signature"
	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/domain/payment"
	"github.com/promptpilot/promptpilot/internal/shared/biztime"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

type VerifyPaymentCommand struct {
	UserID    string
	Email     string
	Name      string
	OrderID   string
	PaymentID string
	Signature string
}

// VerifyPaymentUseCase confirms a checkout signature and upgrades the user.
type VerifyPaymentUseCase struct {
	verifier  *signature.Verifier
	activator *activator
	logger    logger.Interface
	now       func() time.Time
}

func NewVerifyPaymentUseCase(
	entitlementRepo entitlement.Repository,
	paymentRepo payment.Repository,
	verifier *signature.Verifier,
	tx TransactionRunner,
	settings Settings,
	logger logger.Interface,
) *VerifyPaymentUseCase {
	return &VerifyPaymentUseCase{
		verifier: verifier,
		activator: &activator{
			entitlementRepo: entitlementRepo,
			paymentRepo:     paymentRepo,
			tx:              tx,
			settings:        settings.withDefaults(),
			logger:          logger,
		},
		logger: logger,
		now:    biztime.NowUTC,
	}
}

func (uc *VerifyPaymentUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// SetReceiptSender enables activation receipts (optional dependency injection)
func (uc *VerifyPaymentUseCase) SetReceiptSender(sender ReceiptSender) {
	uc.activator.receipts = sender
}

func (uc *VerifyPaymentUseCase) Execute(ctx context.Context, cmd VerifyPaymentCommand) (*dto.VerifiedSubscriptionDTO, error) {
	if cmd.UserID == "" || cmd.OrderID == "" || cmd.PaymentID == "" || cmd.Signature == "" {
		return nil, apperrors.NewValidationError("Missing required payment verification fields")
	}

	if !uc.verifier.VerifyPayment(cmd.OrderID, cmd.PaymentID, cmd.Signature) {
		uc.logger.Warnw("invalid payment signature", "user_id", cmd.UserID, "order_id", cmd.OrderID)
		return nil, apperrors.NewInvalidSignatureError(verificationFailedMessage)
	}

	result, err := uc.activator.activate(ctx, activationRequest{
		UserID:    cmd.UserID,
		OrderID:   cmd.OrderID,
		PaymentID: cmd.PaymentID,
		Source:    "checkout",
	}, uc.now())
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewNotFoundError("Subscription not found or order mismatch")
		}
		return nil, err
	}

	email := cmd.Email
	if email == "" {
		email = emailFromNotes(result.Payment)
	}
	uc.activator.sendReceipt(result, email, cmd.Name)

	e := result.Entitlement
	return &dto.VerifiedSubscriptionDTO{
		Plan:      e.Plan().String(),
		StartDate: formatDate(e.SubscriptionStart()),
		EndDate:   formatDate(e.SubscriptionEnd()),
	}, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := biztime.FormatDate(biztime.DateOf(*t))
	return &s
}
