package paymentgateway

import "context"

// PaymentGateway defines the interface for payment gateway integrations
type PaymentGateway interface {
	// CreateOrder registers an order the client can then pay with the provider's checkout.
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
}

// CreateOrderRequest contains the data needed to create an order
type CreateOrderRequest struct {
	Amount   int64 // Amount in smallest currency unit (paise for INR)
	Currency string
	Receipt  string
	Notes    map[string]string
}

type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}
