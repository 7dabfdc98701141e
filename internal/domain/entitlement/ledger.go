package entitlement

import (
	"time"

	"github.com/promptpilot/promptpilot/internal/shared/biztime"
)

// Decision describes the outcome of a consumption attempt.
type Decision struct {
	Allowed   bool
	Unlimited bool
	Refilled  bool
	// Changed is true when the returned state must be persisted.
	Changed bool
}

// Refresh applies the daily refill: at most one token per business calendar
// day, clamped at FreeTokenCap. current is never modified.
func Refresh(current *Entitlement, now time.Time) (*Entitlement, bool) {
	next := current.Clone()
	if current.IsUnlimited() {
		return next, false
	}

	today := biztime.DateOf(now)
	if !next.lastRefresh.Before(today) {
		return next, false
	}

	next.tokens = min(FreeTokenCap, next.tokens+1)
	next.lastRefresh = today
	next.updatedAt = now.UTC()
	return next, true
}

// Consume decides whether one unit of work may run now and returns the state
// after consumption. On denial it returns ErrNoTokensAvailable and an
// unchanged copy of current.
func Consume(current *Entitlement, now time.Time) (*Entitlement, Decision, error) {
	if current.IsUnlimited() {
		return current.Clone(), Decision{Allowed: true, Unlimited: true}, nil
	}

	next, refilled := Refresh(current, now)
	if next.tokens <= 0 {
		return current.Clone(), Decision{}, ErrNoTokensAvailable
	}

	next.tokens--
	next.updatedAt = now.UTC()
	return next, Decision{Allowed: true, Refilled: refilled, Changed: true}, nil
}
