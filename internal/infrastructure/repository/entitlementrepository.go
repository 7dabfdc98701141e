package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/promptpilot/promptpilot/internal/domain/entitlement"
	"github.com/promptpilot/promptpilot/internal/infrastructure/persistence/mappers"
	"github.com/promptpilot/promptpilot/internal/infrastructure/persistence/models"
	"github.com/promptpilot/promptpilot/internal/shared/db"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

type EntitlementRepository struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewEntitlementRepository(db *gorm.DB, log logger.Interface) *EntitlementRepository {
	return &EntitlementRepository{db: db, logger: log}
}

// find returns nil without error when the user has no row.
func (r *EntitlementRepository) find(ctx context.Context, userID string) (*entitlement.Entitlement, error) {
	var model models.EntitlementModel
	err := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStoreUnavailableError("failed to load entitlement", err.Error())
	}

	e, err := mappers.EntitlementToDomain(&model)
	if err != nil {
		return nil, apperrors.NewInternalError("corrupt entitlement record", err.Error())
	}
	return e, nil
}

func (r *EntitlementRepository) GetByUserID(ctx context.Context, userID string) (*entitlement.Entitlement, error) {
	e, err := r.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}
	return e, nil
}

func (r *EntitlementRepository) GetOrCreate(ctx context.Context, userID string, now time.Time) (*entitlement.Entitlement, bool, error) {
	existing, err := r.find(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return r.ensureBonus(ctx, existing, now)
	}

	e, err := entitlement.NewEntitlement(userID, now)
	if err != nil {
		return nil, false, apperrors.NewValidationError(err.Error())
	}

	model := mappers.EntitlementToModel(e)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if !apperrors.IsDuplicateError(err) {
			return nil, false, apperrors.NewStoreUnavailableError("failed to create entitlement", err.Error())
		}
		// another request created the row first
		r.logger.Debugw("entitlement created concurrently, loading existing row", "user_id", userID)
		existing, err := r.GetByUserID(ctx, userID)
		return existing, false, err
	}

	e.SetID(model.ID)
	return e, true, nil
}

// ensureBonus grants the signup bonus to rows that predate it.
func (r *EntitlementRepository) ensureBonus(ctx context.Context, e *entitlement.Entitlement, now time.Time) (*entitlement.Entitlement, bool, error) {
	if e.BonusGranted() {
		return e, false, nil
	}

	next := e.Clone()
	next.GrantSignupBonus(now)
	ok, err := r.CompareAndSwap(ctx, next, e.Version())
	if err != nil {
		return nil, false, err
	}
	if !ok {
		// a concurrent writer moved the row; its state wins
		reloaded, err := r.GetByUserID(ctx, e.UserID())
		return reloaded, false, err
	}
	return next, false, nil
}

func (r *EntitlementRepository) CompareAndSwap(ctx context.Context, next *entitlement.Entitlement, expectedVersion int) (bool, error) {
	model := mappers.EntitlementToModel(next)
	newVersion := expectedVersion + 1

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.EntitlementModel{}).
		Where("user_id = ? AND version = ?", model.UserID, expectedVersion).
		Updates(map[string]any{
			"plan":               model.Plan,
			"status":             model.Status,
			"tokens":             model.Tokens,
			"last_refresh":       model.LastRefresh,
			"bonus_granted":      model.BonusGranted,
			"payment_order_id":   model.PaymentOrderID,
			"payment_id":         model.PaymentID,
			"amount_paid":        model.AmountPaid,
			"subscription_start": model.SubscriptionStart,
			"subscription_end":   model.SubscriptionEnd,
			"version":            newVersion,
			"updated_at":         model.UpdatedAt,
		})
	if result.Error != nil {
		return false, apperrors.NewStoreUnavailableError("failed to update entitlement", result.Error.Error())
	}
	if result.RowsAffected != 1 {
		return false, nil
	}

	next.SetVersion(newVersion)
	return true, nil
}

func (r *EntitlementRepository) Delete(ctx context.Context, userID string) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Delete(&models.EntitlementModel{}).Error; err != nil {
		return apperrors.NewStoreUnavailableError("failed to delete entitlement", err.Error())
	}
	return nil
}
