package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/promptpilot/promptpilot/internal/infrastructure/persistence/models"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

// Models lists every table owned by the service.
func Models() []any {
	return []any{
		&models.EntitlementModel{},
		&models.PaymentModel{},
		&models.PromptModel{},
	}
}

// GormAutoMigrateStrategy derives the schema from the model structs. It is
// meant for local sqlite databases.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.gorm"),
	}
}

func (s *GormAutoMigrateStrategy) Name() string {
	return StrategyGorm
}

func (s *GormAutoMigrateStrategy) Up(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	s.logger.Infow("schema auto-migrated", "tables", len(Models()))
	return nil
}

func (s *GormAutoMigrateStrategy) Down(*gorm.DB, int) error {
	return fmt.Errorf("%s does not support down migrations", StrategyGorm)
}

func (s *GormAutoMigrateStrategy) Status(db *gorm.DB) error {
	for _, m := range Models() {
		s.logger.Infow("table status", "model", fmt.Sprintf("%T", m), "exists", db.Migrator().HasTable(m))
	}
	return nil
}
