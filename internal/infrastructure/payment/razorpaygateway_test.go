package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpilot/promptpilot/internal/application/payment/paymentgateway"
	"github.com/promptpilot/promptpilot/internal/application/testutil"
	"github.com/promptpilot/promptpilot/internal/shared/config"
)

type fakeOrders struct {
	data map[string]interface{}
	resp map[string]interface{}
	err  error
}

func (f *fakeOrders) Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error) {
	f.data = data
	return f.resp, f.err
}

func TestRazorpayGateway_CreateOrder(t *testing.T) {
	orders := &fakeOrders{resp: map[string]interface{}{
		"id":       "order_Nx1",
		"amount":   float64(49900),
		"currency": "INR",
		"receipt":  "rcpt_12345678",
		"status":   "created",
	}}
	g := &RazorpayGateway{orders: orders, logger: testutil.NewRecordingLogger()}

	order, err := g.CreateOrder(context.Background(), paymentgateway.CreateOrderRequest{
		Amount:   49900,
		Currency: "INR",
		Receipt:  "rcpt_12345678",
		Notes:    map[string]string{"userId": "user-1", "plan": "Pro"},
	})
	require.NoError(t, err)
	assert.Equal(t, "order_Nx1", order.ID)
	assert.Equal(t, int64(49900), order.Amount)
	assert.Equal(t, "created", order.Status)

	assert.Equal(t, int64(49900), orders.data["amount"])
	assert.Equal(t, "user-1", orders.data["notes"].(map[string]interface{})["userId"])
}

func TestRazorpayGateway_Errors(t *testing.T) {
	log := testutil.NewRecordingLogger()

	g := &RazorpayGateway{orders: &fakeOrders{err: errors.New("BAD_REQUEST_ERROR")}, logger: log}
	_, err := g.CreateOrder(context.Background(), paymentgateway.CreateOrderRequest{Amount: 100, Currency: "INR"})
	assert.Error(t, err)
	assert.True(t, log.HasMessage("error", "razorpay order creation failed"))

	g = &RazorpayGateway{orders: &fakeOrders{resp: map[string]interface{}{}}, logger: log}
	_, err = g.CreateOrder(context.Background(), paymentgateway.CreateOrderRequest{Amount: 100, Currency: "INR"})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = g.CreateOrder(ctx, paymentgateway.CreateOrderRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewGateway_FallsBackToMock(t *testing.T) {
	log := testutil.NewRecordingLogger()

	_, ok := NewGateway(config.PaymentConfig{}, log).(*paymentgateway.MockGateway)
	assert.True(t, ok)
	_, ok = NewGateway(config.PaymentConfig{KeyID: "rzp_test", KeySecret: "s"}, log).(*RazorpayGateway)
	assert.True(t, ok)
}
