package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/promptpilot/promptpilot/internal/domain/prompt"
	"github.com/promptpilot/promptpilot/internal/infrastructure/persistence/mappers"
	"github.com/promptpilot/promptpilot/internal/infrastructure/persistence/models"
	"github.com/promptpilot/promptpilot/internal/shared/db"
	apperrors "github.com/promptpilot/promptpilot/internal/shared/errors"
)

type PromptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

func (r *PromptRepository) Create(ctx context.Context, rec *prompt.Record) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.PromptToModel(rec)).Error; err != nil {
		return apperrors.NewStoreUnavailableError("failed to save prompt", err.Error())
	}
	return nil
}

func (r *PromptRepository) ListByUserID(ctx context.Context, userID string, page, pageSize int) ([]*prompt.Record, int64, error) {
	owned := func() *gorm.DB {
		return db.GetTxFromContext(ctx, r.db).Model(&models.PromptModel{}).Scopes(db.OwnedBy(userID))
	}

	var total int64
	if err := owned().Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewStoreUnavailableError("failed to count prompts", err.Error())
	}

	var rows []models.PromptModel
	if err := owned().Scopes(db.Paginate(page, pageSize)).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, 0, apperrors.NewStoreUnavailableError("failed to list prompts", err.Error())
	}

	records := make([]*prompt.Record, 0, len(rows))
	for i := range rows {
		records = append(records, mappers.PromptToDomain(&rows[i]))
	}
	return records, total, nil
}

func (r *PromptRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OwnedBy(userID)).
		Delete(&models.PromptModel{}).Error; err != nil {
		return apperrors.NewStoreUnavailableError("failed to delete prompts", err.Error())
	}
	return nil
}
