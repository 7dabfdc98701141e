package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/promptpilot/promptpilot/internal/domain/payment"
	"github.com/promptpilot/promptpilot/internal/infrastructure/persistence/mappers"
	"github.com/promptpilot/promptpilot/internal/infrastructure/persistence/models"
	"github.com/promptpilot/promptpilot/internal/shared/db"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Upsert(ctx context.Context, p *payment.Payment) error {
	model, err := mappers.PaymentToModel(p)
	if err != nil {
		return apperrors.NewInternalError("failed to map payment", err.Error())
	}
	// the row is addressed by order_id
	model.ID = 0

	err = db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"payment_id", "method", "status", "failure_reason",
				"metadata", "captured_at", "version", "updated_at",
			}),
		}).
		Create(model).Error
	if err != nil {
		return apperrors.NewStoreUnavailableError("failed to save payment", err.Error())
	}

	if p.ID() == 0 && model.ID != 0 {
		p.SetID(model.ID)
	}
	return nil
}

func (r *PaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*payment.Payment, error) {
	var model models.PaymentModel

	err := db.GetTxFromContext(ctx, r.db).Where("order_id = ?", orderID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("payment not found")
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to load payment", err.Error())
	}

	p, err := mappers.PaymentToDomain(&model)
	if err != nil {
		return nil, apperrors.NewInternalError("corrupt payment record", err.Error())
	}
	return p, nil
}

func (r *PaymentRepository) ListByUserID(ctx context.Context, userID string) ([]*payment.Payment, error) {
	var rows []models.PaymentModel

	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OwnedBy(userID)).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to list payments", err.Error())
	}

	payments := make([]*payment.Payment, 0, len(rows))
	for i := range rows {
		p, err := mappers.PaymentToDomain(&rows[i])
		if err != nil {
			return nil, apperrors.NewInternalError("corrupt payment record", err.Error())
		}
		payments = append(payments, p)
	}
	return payments, nil
}
