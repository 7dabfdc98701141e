// Package payment wires the payment provider used to open checkout orders.
package payment

import (
	"github.com/promptpilot/promptpilot/internal/application/payment/paymentgateway"
	"github.com/promptpilot/promptpilot/internal/shared/config"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

// NewGateway returns the Razorpay gateway, or the in-process mock when the
// configuration asks for it or carries no credentials.
func NewGateway(cfg config.PaymentConfig, log logger.Interface) paymentgateway.PaymentGateway {
	if cfg.UseMock || cfg.KeyID == "" || cfg.KeySecret == "" {
		log.Warnw("payment provider not configured, using mock gateway")
		return paymentgateway.NewMockGateway(true)
	}
	return NewRazorpayGateway(cfg.KeyID, cfg.KeySecret, log.Named("razorpay"))
}
