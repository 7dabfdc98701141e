// Package signature checks provider HMAC-SHA256 signatures for checkout
// confirmations and webhooks.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Verifier holds the secrets for both trust boundaries.
type Verifier struct {
	keySecret     []byte
	webhookSecret []byte
}

// NewVerifier returns a Verifier. An empty webhookSecret falls back to keySecret.
func NewVerifier(keySecret, webhookSecret string) *Verifier {
	if webhookSecret == "" {
		webhookSecret = keySecret
	}
	return &Verifier{
		keySecret:     []byte(keySecret),
		webhookSecret: []byte(webhookSecret),
	}
}

// VerifyPayment checks the signature the checkout returns over "order_id|payment_id".
func (v *Verifier) VerifyPayment(orderID, paymentID, sig string) bool {
	return verify(v.keySecret, []byte(orderID+"|"+paymentID), sig)
}

// VerifyWebhook checks the signature over the raw request body.
func (v *Verifier) VerifyWebhook(body []byte, sig string) bool {
	return verify(v.webhookSecret, body, sig)
}

// Sign returns the lowercase hex HMAC-SHA256 of payload.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignPayment signs a checkout confirmation the way the provider does.
func SignPayment(secret, orderID, paymentID string) string {
	return Sign(secret, []byte(orderID+"|"+paymentID))
}

func verify(secret, payload []byte, sig string) bool {
	if len(secret) == 0 {
		return false
	}
	got, err := hex.DecodeString(strings.TrimSpace(sig))
	if err != nil || len(got) != sha256.Size {
		return false
	}
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hmac.Equal(mac.Sum(nil), got)
}
