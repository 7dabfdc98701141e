package dto

import (
	"time"

	"github.com/promptpilot/promptpilot/internal/domain/payment"
)

// OrderDTO is returned to the checkout. Amount is in minor units.
type OrderDTO struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type VerifiedSubscriptionDTO struct {
	Plan      string  `json:"plan"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// PaymentDTO is one entry of the payment history. Amount is in major units.
type PaymentDTO struct {
	ID            uint      `json:"id"`
	OrderID       string    `json:"order_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToPaymentDTO(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID(),
		OrderID:       p.OrderID(),
		Amount:        p.Amount().AmountMajor(),
		Currency:      p.Amount().Currency(),
		Status:        p.Status().String(),
		PaymentMethod: p.Method(),
		CreatedAt:     p.CreatedAt(),
	}
}

func ToPaymentDTOs(payments []*payment.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(payments))
	for _, p := range payments {
		out = append(out, ToPaymentDTO(p))
	}
	return out
}
