package entitlement

import "errors"

var (
	ErrUserIDRequired     = errors.New("user ID is required")
	ErrNoTokensAvailable  = errors.New("no tokens available")
	ErrAlreadySubscribed  = errors.New("already subscribed to Pro")
	ErrOrderIDRequired    = errors.New("order ID is required")
	ErrPaymentIDRequired  = errors.New("payment ID is required")
	ErrOrderMismatch      = errors.New("order does not match the pending order for this user")
	ErrInvalidPlan        = errors.New("invalid plan")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrNegativeTokenCount = errors.New("token count cannot be negative")
)
