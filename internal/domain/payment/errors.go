package payment

import "errors"

var (
	ErrOrderIDRequired   = errors.New("order ID is required")
	ErrUserIDRequired    = errors.New("user ID is required")
	ErrPaymentIDRequired = errors.New("payment ID is required")
	ErrInvalidAmount     = errors.New("amount must be positive")
	// ErrAlreadyCompleted is returned when a different payment tries to settle a completed order.
	ErrAlreadyCompleted = errors.New("order already settled by another payment")
)
