package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWebhookEvent(t *testing.T) {
	tests := []struct {
		name string
		body string
		want WebhookEvent
	}{
		{
			name: "payment captured with notes",
			body: `{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1","method":"upi","amount":49900,"currency":"INR","email":"a@example.com","notes":{"userId":"user-1","plan":"Pro"}}}}}`,
			want: PaymentCaptured{OrderID: "order_1", PaymentID: "pay_1", Method: "upi", Amount: 49900, Currency: "INR", UserID: "user-1", Email: "a@example.com"},
		},
		{
			name: "payment captured with empty notes array",
			body: `{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_1","order_id":"order_1","method":"card","notes":[]}}}}`,
			want: PaymentCaptured{OrderID: "order_1", PaymentID: "pay_1", Method: "card"},
		},
		{
			name: "payment failed",
			body: `{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_2","order_id":"order_1","error_code":"BAD_REQUEST_ERROR","error_description":"Payment declined","notes":{"userId":"user-1"}}}}}`,
			want: PaymentFailed{OrderID: "order_1", PaymentID: "pay_2", Reason: "Payment declined", UserID: "user-1"},
		},
		{
			name: "order paid",
			body: `{"event":"order.paid","payload":{"order":{"entity":{"id":"order_1"}},"payment":{"entity":{"id":"pay_1","order_id":"order_1"}}}}`,
			want: OrderPaid{OrderID: "order_1", PaymentID: "pay_1"},
		},
		{
			name: "unknown event",
			body: `{"event":"refund.created","payload":{}}`,
			want: Unrecognized{Name: "refund.created", Reason: "unsupported event"},
		},
		{
			name: "captured without entity",
			body: `{"event":"payment.captured","payload":{}}`,
			want: Unrecognized{Name: "payment.captured", Reason: "payment entity missing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseWebhookEvent([]byte(tt.body)))
		})
	}
}

func TestParseWebhookEvent_Malformed(t *testing.T) {
	ev := ParseWebhookEvent([]byte(`{not json`))

	unrec, ok := ev.(Unrecognized)
	require.True(t, ok)
	assert.Contains(t, unrec.Reason, "malformed payload")
	assert.Equal(t, "", ev.EventName())
}
