package signature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifier_VerifyPayment(t *testing.T) {
	v := NewVerifier("key_secret", "")
	valid := SignPayment("key_secret", "order_1", "pay_1")

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		sig       string
		want      bool
	}{
		{"valid", "order_1", "pay_1", valid, true},
		{"uppercase hex", "order_1", "pay_1", strings.ToUpper(valid), true},
		{"other order", "order_2", "pay_1", valid, false},
		{"other payment", "order_1", "pay_2", valid, false},
		{"wrong secret", "order_1", "pay_1", SignPayment("other", "order_1", "pay_1"), false},
		{"not hex", "order_1", "pay_1", "zz" + valid[2:], false},
		{"truncated", "order_1", "pay_1", valid[:20], false},
		{"empty", "order_1", "pay_1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.VerifyPayment(tt.orderID, tt.paymentID, tt.sig))
		})
	}
}

func TestVerifier_VerifyWebhook(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)

	t.Run("dedicated secret", func(t *testing.T) {
		v := NewVerifier("key_secret", "hook_secret")
		assert.True(t, v.VerifyWebhook(body, Sign("hook_secret", body)))
		assert.False(t, v.VerifyWebhook(body, Sign("key_secret", body)))
	})

	t.Run("falls back to key secret", func(t *testing.T) {
		v := NewVerifier("key_secret", "")
		assert.True(t, v.VerifyWebhook(body, Sign("key_secret", body)))
	})

	t.Run("body must match byte for byte", func(t *testing.T) {
		v := NewVerifier("key_secret", "")
		sig := Sign("key_secret", body)
		assert.False(t, v.VerifyWebhook([]byte(`{"event": "payment.captured"}`), sig))
	})

	t.Run("no secret configured", func(t *testing.T) {
		v := NewVerifier("", "")
		assert.False(t, v.VerifyWebhook(body, Sign("", body)))
	})
}
