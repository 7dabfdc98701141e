package entitlement

import (
	"fmt"
	"time"

	"github.com/promptpilot/promptpilot/internal/shared/biztime"
)

// Entitlement is the aggregate root holding one user's plan, token balance
// and payment audit trail.
type Entitlement struct {
	id                uint
	userID            string
	plan              Plan
	status            Status
	tokens            int
	lastRefresh       time.Time // calendar date, midnight UTC
	bonusGranted      bool
	paymentOrderID    string
	paymentID         string
	amountPaid        int64
	subscriptionStart *time.Time
	subscriptionEnd   *time.Time
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewEntitlement returns the default Free record with the signup bonus applied.
func NewEntitlement(userID string, now time.Time) (*Entitlement, error) {
	if userID == "" {
		return nil, ErrUserIDRequired
	}

	now = now.UTC()
	e := &Entitlement{
		userID:      userID,
		plan:        PlanFree,
		status:      StatusActive,
		lastRefresh: biztime.DateOf(now),
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}
	e.GrantSignupBonus(now)
	return e, nil
}

// ReconstructParams carries persisted state back into the aggregate.
type ReconstructParams struct {
	ID                uint
	UserID            string
	Plan              Plan
	Status            Status
	Tokens            int
	// LastRefresh is a calendar date; only its year, month and day are read.
	LastRefresh       time.Time
	BonusGranted      bool
	PaymentOrderID    string
	PaymentID         string
	AmountPaid        int64
	SubscriptionStart *time.Time
	SubscriptionEnd   *time.Time
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReconstructEntitlement rebuilds an entitlement from persistence.
func ReconstructEntitlement(p ReconstructParams) (*Entitlement, error) {
	if p.UserID == "" {
		return nil, ErrUserIDRequired
	}
	if !p.Plan.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPlan, p.Plan)
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, p.Status)
	}
	if p.Tokens < 0 {
		return nil, ErrNegativeTokenCount
	}

	return &Entitlement{
		id:                p.ID,
		userID:            p.UserID,
		plan:              p.Plan,
		status:            p.Status,
		tokens:            p.Tokens,
		lastRefresh:       biztime.CalendarDate(p.LastRefresh),
		bonusGranted:      p.BonusGranted,
		paymentOrderID:    p.PaymentOrderID,
		paymentID:         p.PaymentID,
		amountPaid:        p.AmountPaid,
		subscriptionStart: p.SubscriptionStart,
		subscriptionEnd:   p.SubscriptionEnd,
		version:           p.Version,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
	}, nil
}

func (e *Entitlement) ID() uint                      { return e.id }
func (e *Entitlement) UserID() string                { return e.userID }
func (e *Entitlement) Plan() Plan                    { return e.plan }
func (e *Entitlement) Status() Status                { return e.status }
func (e *Entitlement) Tokens() int                   { return e.tokens }
func (e *Entitlement) LastRefresh() time.Time        { return e.lastRefresh }
func (e *Entitlement) BonusGranted() bool            { return e.bonusGranted }
func (e *Entitlement) PaymentOrderID() string        { return e.paymentOrderID }
func (e *Entitlement) PaymentID() string             { return e.paymentID }
func (e *Entitlement) AmountPaid() int64             { return e.amountPaid }
func (e *Entitlement) SubscriptionStart() *time.Time { return e.subscriptionStart }
func (e *Entitlement) SubscriptionEnd() *time.Time   { return e.subscriptionEnd }
func (e *Entitlement) Version() int                  { return e.version }
func (e *Entitlement) CreatedAt() time.Time          { return e.createdAt }
func (e *Entitlement) UpdatedAt() time.Time          { return e.updatedAt }

// SetID is called by the repository after insert.
func (e *Entitlement) SetID(id uint) {
	e.id = id
}

// SetVersion is called by the repository after a successful compare-and-swap.
func (e *Entitlement) SetVersion(v int) {
	e.version = v
}

// IsUnlimited reports whether consumption bypasses the token balance.
func (e *Entitlement) IsUnlimited() bool {
	return e.plan == PlanPro && e.status == StatusActive
}

// IsSubscriptionActive reports whether a paid period covers now.
func (e *Entitlement) IsSubscriptionActive(now time.Time) bool {
	if !e.IsUnlimited() {
		return false
	}
	return e.subscriptionEnd == nil || now.Before(*e.subscriptionEnd)
}

// MaxTokens is the balance cap, or -1 when the plan is unlimited.
func (e *Entitlement) MaxTokens() int {
	if e.IsUnlimited() {
		return -1
	}
	return FreeTokenCap
}

// CanConsume reports whether a consumption on the given day would be permitted.
func (e *Entitlement) CanConsume(now time.Time) bool {
	if e.IsUnlimited() {
		return true
	}
	next, _ := Refresh(e, now)
	return next.tokens > 0
}

// GrantSignupBonus applies the one-time bonus. The flag, not the balance,
// decides whether it was already granted.
func (e *Entitlement) GrantSignupBonus(now time.Time) bool {
	if e.bonusGranted {
		return false
	}
	e.tokens = SignupBonusTokens
	e.bonusGranted = true
	e.updatedAt = now.UTC()
	return true
}

// Clone returns an independent copy.
func (e *Entitlement) Clone() *Entitlement {
	c := *e
	if e.subscriptionStart != nil {
		t := *e.subscriptionStart
		c.subscriptionStart = &t
	}
	if e.subscriptionEnd != nil {
		t := *e.subscriptionEnd
		c.subscriptionEnd = &t
	}
	return &c
}
