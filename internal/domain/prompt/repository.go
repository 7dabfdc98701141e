package prompt

import "context"

type Repository interface {
	Create(ctx context.Context, r *Record) error
	// ListByUserID returns one page of history, newest first, with the total count.
	ListByUserID(ctx context.Context, userID string, page, pageSize int) ([]*Record, int64, error)
	DeleteByUserID(ctx context.Context, userID string) error
}
