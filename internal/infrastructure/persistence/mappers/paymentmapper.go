package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/promptpilot/promptpilot/internal/domain/payment"
	vo "github.com/promptpilot/promptpilot/internal/domain/payment/valueobjects"
	"github.com/promptpilot/promptpilot/internal/infrastructure/persistence/models"
)

func PaymentToModel(p *payment.Payment) (*models.PaymentModel, error) {
	model := &models.PaymentModel{
		ID:            p.ID(),
		OrderID:       p.OrderID(),
		PaymentID:     optionalString(p.PaymentID()),
		UserID:        p.UserID(),
		Plan:          p.Plan(),
		Amount:        p.Amount().AmountMinor(),
		Currency:      p.Amount().Currency(),
		Receipt:       p.Receipt(),
		Method:        p.Method(),
		Status:        p.Status().String(),
		FailureReason: p.FailureReason(),
		CapturedAt:    p.CapturedAt(),
		Version:       p.Version(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}

	if len(p.Metadata()) > 0 {
		raw, err := json.Marshal(p.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to encode payment metadata: %w", err)
		}
		model.Metadata = datatypes.JSON(raw)
	}

	return model, nil
}

func PaymentToDomain(m *models.PaymentModel) (*payment.Payment, error) {
	amount, err := vo.NewMoney(m.Amount, m.Currency)
	if err != nil {
		return nil, err
	}

	metadata := make(map[string]any)
	if len(m.Metadata) > 0 {
		if err := json.Unmarshal(m.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to decode payment metadata: %w", err)
		}
	}

	return payment.ReconstructPayment(payment.ReconstructParams{
		ID:            m.ID,
		OrderID:       m.OrderID,
		PaymentID:     derefString(m.PaymentID),
		UserID:        m.UserID,
		Plan:          m.Plan,
		Amount:        amount,
		Receipt:       m.Receipt,
		Method:        m.Method,
		Status:        vo.PaymentStatus(m.Status),
		FailureReason: m.FailureReason,
		Metadata:      metadata,
		CapturedAt:    m.CapturedAt,
		Version:       m.Version,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	})
}
