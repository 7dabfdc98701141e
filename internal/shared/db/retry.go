package db

import (
	"context"
	"errors"

	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
)

// DefaultMaxAttempts bounds optimistic-lock retries.
const DefaultMaxAttempts = 5

// ErrVersionConflict signals that a compare-and-swap lost to a concurrent writer.
var ErrVersionConflict = errors.New("version conflict")

// RetryOnConflict runs fn until it returns anything other than ErrVersionConflict.
// When every attempt conflicts the caller gets a Conflict AppError.
func RetryOnConflict(ctx context.Context, attempts int, fn func(ctx context.Context) error) error {
	if attempts < 1 {
		attempts = DefaultMaxAttempts
	}
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := fn(ctx)
		if !errors.Is(err, ErrVersionConflict) {
			return err
		}
	}
	return apperrors.NewConflictError("too many concurrent updates, please retry")
}
