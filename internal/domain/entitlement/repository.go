package entitlement

import (
	"context"
	"time"
)

// Repository persists entitlements. Implementations report storage failures
// as StoreUnavailable and a missing record as NotFound.
type Repository interface {
	// GetOrCreate returns the user's entitlement, inserting the default record
	// if none exists. Concurrent callers converge on a single row; created is
	// true only for the caller whose insert won.
	GetOrCreate(ctx context.Context, userID string, now time.Time) (e *Entitlement, created bool, err error)

	GetByUserID(ctx context.Context, userID string) (*Entitlement, error)

	// CompareAndSwap stores next only if the persisted version still equals
	// expectedVersion. On success next carries the new version.
	CompareAndSwap(ctx context.Context, next *Entitlement, expectedVersion int) (bool, error)

	Delete(ctx context.Context, userID string) error
}
