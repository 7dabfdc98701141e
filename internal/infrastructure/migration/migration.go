// Package migration selects and runs a schema migration tool.
package migration

import (
	"fmt"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

const (
	DefaultGooseScripts   = "./internal/infrastructure/migration/scripts/goose"
	DefaultMigrateScripts = "./internal/infrastructure/migration/scripts/migrate"
)

// Manager runs migrations with the chosen strategy.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks a strategy by name. Goose scripts live in one directory per
// driver under scriptsPath. sqlite databases only support goose and gorm.
func NewManager(name, scriptsPath, driver string) (*Manager, error) {
	var strategy Strategy

	switch strings.ToLower(name) {
	case StrategyGoose, "":
		dialect, dir := "mysql", "mysql"
		if driver == "sqlite" {
			dialect, dir = "sqlite3", "sqlite"
		}
		strategy = NewGooseStrategy(filepath.Join(absOr(scriptsPath, DefaultGooseScripts), dir), dialect)
	case StrategyGolangMigrate:
		if driver == "sqlite" {
			return nil, fmt.Errorf("%s supports mysql only", StrategyGolangMigrate)
		}
		strategy = NewGolangMigrateStrategy(absOr(scriptsPath, DefaultMigrateScripts))
	case StrategyGorm:
		strategy = NewGormAutoMigrateStrategy()
	default:
		return nil, fmt.Errorf("unknown migration strategy %q", name)
	}

	return NewManagerWithStrategy(strategy), nil
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().With("component", "migration.manager"),
	}
}

func (m *Manager) Strategy() Strategy {
	return m.strategy
}

func (m *Manager) Up(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.Name())
	if err := m.strategy.Up(db); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.Name(), err)
	}
	return nil
}

func (m *Manager) Down(db *gorm.DB, steps int) error {
	if steps < 1 {
		steps = 1
	}
	return m.strategy.Down(db, steps)
}

func (m *Manager) Status(db *gorm.DB) error {
	return m.strategy.Status(db)
}

func absOr(path, fallback string) string {
	if path == "" {
		path = fallback
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
