// Package payment models payment attempts and the provider events that settle them.
package payment

import (
	"fmt"
	"time"

	vo "github.com/promptpilot/promptpilot/internal/domain/payment/valueobjects"
)

// Payment is one order with the payment provider. Records are updated in
// place as the order settles and are never deleted.
type Payment struct {
	id            uint
	orderID       string
	paymentID     string
	userID        string
	plan          string
	amount        vo.Money
	receipt       string
	method        string
	status        vo.PaymentStatus
	failureReason string
	metadata      map[string]any
	capturedAt    *time.Time
	version       int
	createdAt     time.Time
	updatedAt     time.Time
}

func NewPayment(orderID, userID, plan string, amount vo.Money, receipt string, now time.Time) (*Payment, error) {
	if orderID == "" {
		return nil, ErrOrderIDRequired
	}
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	now = now.UTC()
	return &Payment{
		orderID:   orderID,
		userID:    userID,
		plan:      plan,
		amount:    amount,
		receipt:   receipt,
		status:    vo.PaymentStatusPending,
		metadata:  make(map[string]any),
		version:   1,
		createdAt: now,
		updatedAt: now,
	}, nil
}

type ReconstructParams struct {
	ID            uint
	OrderID       string
	PaymentID     string
	UserID        string
	Plan          string
	Amount        vo.Money
	Receipt       string
	Method        string
	Status        vo.PaymentStatus
	FailureReason string
	Metadata      map[string]any
	CapturedAt    *time.Time
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ReconstructPayment(p ReconstructParams) (*Payment, error) {
	if p.OrderID == "" {
		return nil, ErrOrderIDRequired
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid payment status: %s", p.Status)
	}
	if p.Metadata == nil {
		p.Metadata = make(map[string]any)
	}
	return &Payment{
		id:            p.ID,
		orderID:       p.OrderID,
		paymentID:     p.PaymentID,
		userID:        p.UserID,
		plan:          p.Plan,
		amount:        p.Amount,
		receipt:       p.Receipt,
		method:        p.Method,
		status:        p.Status,
		failureReason: p.FailureReason,
		metadata:      p.Metadata,
		capturedAt:    p.CapturedAt,
		version:       p.Version,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}, nil
}

func (p *Payment) ID() uint                 { return p.id }
func (p *Payment) OrderID() string          { return p.orderID }
func (p *Payment) PaymentID() string        { return p.paymentID }
func (p *Payment) UserID() string           { return p.userID }
func (p *Payment) Plan() string             { return p.plan }
func (p *Payment) Amount() vo.Money         { return p.amount }
func (p *Payment) Receipt() string          { return p.receipt }
func (p *Payment) Method() string           { return p.method }
func (p *Payment) Status() vo.PaymentStatus { return p.status }
func (p *Payment) FailureReason() string    { return p.failureReason }
func (p *Payment) Metadata() map[string]any { return p.metadata }
func (p *Payment) CapturedAt() *time.Time   { return p.capturedAt }
func (p *Payment) Version() int             { return p.version }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time     { return p.updatedAt }

func (p *Payment) SetID(id uint) {
	p.id = id
}

// IsCompletedWith reports whether paymentID already settled this order.
func (p *Payment) IsCompletedWith(paymentID string) bool {
	return p.status.IsCompleted() && p.paymentID == paymentID
}

// MarkCompleted settles the order. A pending or failed attempt can complete;
// repeating the same payment is a no-op.
func (p *Payment) MarkCompleted(paymentID, method string, now time.Time) (bool, error) {
	if paymentID == "" {
		return false, ErrPaymentIDRequired
	}
	if p.status.IsCompleted() {
		if p.paymentID == paymentID {
			return false, nil
		}
		return false, ErrAlreadyCompleted
	}

	now = now.UTC()
	p.status = vo.PaymentStatusCompleted
	p.paymentID = paymentID
	if method != "" {
		p.method = method
	}
	p.failureReason = ""
	p.capturedAt = &now
	p.updatedAt = now
	p.version++
	return true, nil
}

// MarkFailed records a failed attempt. Completed orders stay completed.
func (p *Payment) MarkFailed(paymentID, reason string, now time.Time) bool {
	if p.status.IsCompleted() {
		return false
	}
	if p.status == vo.PaymentStatusFailed && p.paymentID == paymentID && p.failureReason == reason {
		return false
	}

	p.status = vo.PaymentStatusFailed
	if paymentID != "" {
		p.paymentID = paymentID
	}
	p.failureReason = reason
	p.updatedAt = now.UTC()
	p.version++
	return true
}

// SetMetadata attaches provider data such as order notes.
func (p *Payment) SetMetadata(key string, value any) {
	p.metadata[key] = value
}
