package usecases

import (
	"context"
	"time"

	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
)

// Settings carries the billing parameters shared by the payment use cases.
type Settings struct {
	// ProAmount is the Pro price in major units.
	ProAmount int64
	Currency  string
	Period    time.Duration
	// RejectInvalidWebhookSignature answers bad webhook signatures with 400
	// instead of acknowledging them.
	RejectInvalidWebhookSignature bool
}

func (s Settings) withDefaults() Settings {
	if s.ProAmount <= 0 {
		s.ProAmount = 499
	}
	if s.Currency == "" {
		s.Currency = "INR"
	}
	if s.Period <= 0 {
		s.Period = entitlement.DefaultProPeriod
	}
	return s
}

// TransactionRunner runs a unit of work atomically.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReceiptSender delivers the Pro activation receipt.
type ReceiptSender interface {
	SendReceipt(ctx context.Context, receipt Receipt) error
}

type Receipt struct {
	Email     string
	Name      string
	OrderID   string
	PaymentID string
	Amount    string
	Plan      string
	ValidTill *time.Time
}

// generic message for every verification failure
const verificationFailedMessage = "payment verification failed"
