package paymentgateway

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockGateway creates orders in memory. It backs local runs without provider
// credentials and the application tests.
type MockGateway struct {
	shouldSucceed bool

	mu       sync.Mutex
	requests []CreateOrderRequest
}

func NewMockGateway(shouldSucceed bool) *MockGateway {
	return &MockGateway{
		shouldSucceed: shouldSucceed,
	}
}

func (m *MockGateway) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if !m.shouldSucceed {
		return nil, fmt.Errorf("mock gateway: order creation disabled")
	}

	m.mu.Lock()
	m.requests = append(m.requests, req)
	n := len(m.requests)
	m.mu.Unlock()

	return &Order{
		ID:       fmt.Sprintf("order_MOCK%d%d", time.Now().UnixNano()%1_000_000, n),
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
		Status:   "created",
	}, nil
}

// Requests returns every order request received so far.
func (m *MockGateway) Requests() []CreateOrderRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CreateOrderRequest(nil), m.requests...)
}
