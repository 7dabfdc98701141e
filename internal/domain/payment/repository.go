package payment

import "context"

type Repository interface {
	// Upsert inserts the record or updates the existing one with the same order ID.
	Upsert(ctx context.Context, p *Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*Payment, error)
	// ListByUserID returns the user's payments, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*Payment, error)
}
