package migrate

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/promptpilot/promptpilot/internal/infrastructure/config"
	"github.com/promptpilot/promptpilot/internal/infrastructure/database"
	"github.com/promptpilot/promptpilot/internal/infrastructure/migration"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

var (
	env         string
	strategy    string
	scriptsPath string
	name        string
	steps       int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations including running migrations, checking status, and creating new migration files.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&strategy, "strategy", "s", migration.StrategyGoose, "Migration tool (goose, golang-migrate, gorm)")
	cmd.PersistentFlags().StringVar(&scriptsPath, "scripts", "", "Directory holding the migration scripts for the chosen tool")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
		newCreateCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE:  runUp,
	}
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE:  runStatus,
	}
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new goose SQL migration",
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the migration (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func initEnv(connect bool) (*config.Config, *migration.Manager, error) {
	cfg, err := config.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	manager, err := migration.NewManager(strategy, scriptsPath, cfg.Database.Driver)
	if err != nil {
		return nil, nil, err
	}

	if connect {
		if err := database.Init(&cfg.Database); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return cfg, manager, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	_, manager, err := initEnv(true)
	if err != nil {
		return err
	}
	defer database.Close()

	log := logger.NewLogger()
	log.Infow("running up migrations", "environment", env, "strategy", strategy)

	if err := manager.Up(database.Get()); err != nil {
		log.Errorw("migration failed", "error", err)
		return err
	}

	log.Infow("migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	_, manager, err := initEnv(true)
	if err != nil {
		return err
	}
	defer database.Close()

	log := logger.NewLogger()
	log.Infow("running down migrations", "environment", env, "strategy", strategy, "steps", steps)

	if err := manager.Down(database.Get(), steps); err != nil {
		log.Errorw("down migration failed", "error", err)
		return fmt.Errorf("down migration failed: %w", err)
	}

	log.Infow("down migration completed successfully")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, manager, err := initEnv(true)
	if err != nil {
		return err
	}
	defer database.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "\nMigration Status:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  Environment: %s\n", env)
	fmt.Fprintf(cmd.OutOrStdout(), "  Driver:      %s\n", cfg.Database.Driver)
	fmt.Fprintf(cmd.OutOrStdout(), "  Strategy:    %s\n", manager.Strategy().Name())

	if err := manager.Status(database.Get()); err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	_, manager, err := initEnv(false)
	if err != nil {
		return err
	}

	goose, ok := manager.Strategy().(*migration.GooseStrategy)
	if !ok {
		return fmt.Errorf("create is only supported with the %s strategy", migration.StrategyGoose)
	}
	if err := goose.Create(filepath.Base(name)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migration '%s' created\n", name)
	return nil
}
