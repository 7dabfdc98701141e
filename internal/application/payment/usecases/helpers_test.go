package usecases

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/promptpilot/promptpilot/internal/application/payment/paymentgateway"
	"github.com/promptpilot/promptpilot/internal/application/payment/signature"
	"github.com/promptpilot/promptpilot/internal/application/testutil"
	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
)

const (
	keySecret = "rzp_test_secret"
	userID    = "user-1"
)

type fixture struct {
	entitlements *testutil.MockEntitlementRepository
	payments     *testutil.MockPaymentRepository
	gateway      *paymentgateway.MockGateway
	log          *testutil.RecordingLogger
	receipts     *fakeReceiptSender

	createOrder *CreateOrderUseCase
	verify      *VerifyPaymentUseCase
	webhook     *HandleWebhookUseCase
}

func newFixture(t *testing.T, settings Settings) *fixture {
	t.Helper()

	f := &fixture{
		entitlements: testutil.NewMockEntitlementRepository(),
		payments:     testutil.NewMockPaymentRepository(),
		gateway:      paymentgateway.NewMockGateway(true),
		log:          testutil.NewRecordingLogger(),
		receipts:     newFakeReceiptSender(),
	}
	verifier := signature.NewVerifier(keySecret, "")
	tx := testutil.PassthroughTx{}

	f.createOrder = NewCreateOrderUseCase(f.entitlements, f.payments, f.gateway, tx, settings, f.log)
	f.createOrder.SetClock(testutil.FixedClock(testutil.Day(2)))

	f.verify = NewVerifyPaymentUseCase(f.entitlements, f.payments, verifier, tx, settings, f.log)
	f.verify.SetClock(testutil.FixedClock(testutil.Day(2)))
	f.verify.SetReceiptSender(f.receipts)

	f.webhook = NewHandleWebhookUseCase(f.entitlements, f.payments, verifier, tx, settings, f.log)
	f.webhook.SetClock(testutil.FixedClock(testutil.Day(2)))
	f.webhook.SetReceiptSender(f.receipts)

	_, _, err := f.entitlements.GetOrCreate(context.Background(), userID, testutil.Day(1))
	require.NoError(t, err)
	return f
}

// pendingOrder creates an order for userID and returns its ID.
func (f *fixture) pendingOrder(t *testing.T) string {
	t.Helper()
	order, err := f.createOrder.Execute(context.Background(), CreateOrderCommand{
		UserID: userID,
		Email:  "user@example.com",
		Plan:   "Pro",
		Amount: 499,
	})
	require.NoError(t, err)
	return order.ID
}

func (f *fixture) stored(t *testing.T) *entitlement.Entitlement {
	t.Helper()
	e := f.entitlements.Stored(userID)
	require.NotNil(t, e)
	return e
}

func webhookBody(t *testing.T, event, orderID, paymentID string, notes any) []byte {
	t.Helper()
	if notes == nil {
		notes = []any{}
	}
	body, err := json.Marshal(map[string]any{
		"entity": "event",
		"event":  event,
		"payload": map[string]any{
			"payment": map[string]any{
				"entity": map[string]any{
					"id":                paymentID,
					"order_id":          orderID,
					"method":            "upi",
					"amount":            49900,
					"currency":          "INR",
					"email":             "user@example.com",
					"error_description": "Payment was declined by the bank",
					"notes":             notes,
				},
			},
		},
	})
	require.NoError(t, err)
	return body
}

// deliver sends body to the webhook with a valid signature.
func (f *fixture) deliver(body []byte) error {
	return f.webhook.Execute(context.Background(), body, signature.Sign(keySecret, body))
}

func signPayment(orderID, paymentID string) string {
	return signature.SignPayment(keySecret, orderID, paymentID)
}

type fakeReceiptSender struct {
	mu   sync.Mutex
	sent chan Receipt
}

func newFakeReceiptSender() *fakeReceiptSender {
	return &fakeReceiptSender{sent: make(chan Receipt, 4)}
}

func (f *fakeReceiptSender) SendReceipt(ctx context.Context, r Receipt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent <- r
	return nil
}
