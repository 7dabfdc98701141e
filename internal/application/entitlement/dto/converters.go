package dto

import (
	"time"

	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/shared/auth"
	"github.com/promptpilot/promptpilot/internal/shared/biztime"
)

// Payment states derived from the entitlement's order fields.
const (
	PaymentStatusNone      = "none"
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

func ToUsageDTO(e *entitlement.Entitlement) *UsageDTO {
	unlimited := e.IsUnlimited()
	return &UsageDTO{
		Tokens: TokensDTO{
			Current:   e.Tokens(),
			Max:       e.MaxTokens(),
			Unlimited: unlimited,
		},
		Plan:           e.Plan().String(),
		CanMakeRequest: unlimited || e.Tokens() > 0,
	}
}

func ToSubscriptionDTO(e *entitlement.Entitlement, now time.Time) SubscriptionDTO {
	return SubscriptionDTO{
		Plan:          e.Plan().String(),
		Status:        e.Status().String(),
		Tokens:        e.Tokens(),
		PaymentStatus: paymentStatusOf(e),
		StartDate:     formatDate(e.SubscriptionStart()),
		EndDate:       formatDate(e.SubscriptionEnd()),
		IsActive:      e.IsSubscriptionActive(now),
		AmountPaid:    e.AmountPaid(),
	}
}

func ToUserDTO(ac auth.Context) UserDTO {
	return UserDTO{
		ID:    ac.UserID,
		Email: ac.Email,
		Name:  ac.DisplayName(),
	}
}

func paymentStatusOf(e *entitlement.Entitlement) string {
	switch {
	case e.PaymentID() != "" && e.IsUnlimited():
		return PaymentStatusCompleted
	case e.Status() == entitlement.StatusPending:
		return PaymentStatusPending
	case e.Status() == entitlement.StatusFailed:
		return PaymentStatusFailed
	default:
		return PaymentStatusNone
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := biztime.FormatDate(biztime.DateOf(*t))
	return &s
}

// TokenUsedMessage confirms a manual token spend.
const TokenUsedMessage = "Token used successfully"

func ToConsumeTokenDTO(e *entitlement.Entitlement) *ConsumeTokenDTO {
	return &ConsumeTokenDTO{
		Success: true,
		Tokens: RemainingTokensDTO{
			Current:   e.Tokens(),
			Unlimited: e.IsUnlimited(),
		},
		Message: TokenUsedMessage,
	}
}
