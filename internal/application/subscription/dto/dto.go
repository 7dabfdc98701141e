package dto

import (
	entitlementdto "github.com/promptpilot/promptpilot/internal/application/entitlement/dto"
	paymentdto "github.com/promptpilot/promptpilot/internal/application/payment/dto"
)

// SubscriptionDetailsDTO is the response of GET /subscription/upgrade.
type SubscriptionDetailsDTO struct {
	Success      bool                           `json:"success"`
	Subscription entitlementdto.SubscriptionDTO `json:"subscription"`
	Payments     []paymentdto.PaymentDTO        `json:"payments"`
}

// UpgradeReadinessDTO tells the checkout what to charge.
type UpgradeReadinessDTO struct {
	Success     bool                   `json:"success"`
	Message     string                 `json:"message"`
	CurrentPlan string                 `json:"currentPlan"`
	TargetPlan  string                 `json:"targetPlan"`
	Amount      int64                  `json:"amount"`
	User        entitlementdto.UserDTO `json:"user"`
}
