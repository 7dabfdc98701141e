package optimizer

import (
	"context"

	"github.com/promptpilot/promptpilot/internal/application/optimization/usecases"
	"github.com/promptpilot/promptpilot/internal/shared/config"
	"github.com/promptpilot/promptpilot/internal/shared/logger"
)

// New returns the configured provider, or nil when prompts should be built
// from the local template only.
func New(ctx context.Context, cfg config.OptimizerConfig, log logger.Interface) usecases.Optimizer {
	if !cfg.Enabled() {
		log.Infow("no optimizer provider configured, using template")
		return nil
	}

	switch cfg.Provider {
	case "gemini":
		g, err := NewGeminiOptimizer(ctx, cfg, log.Named("gemini"))
		if err != nil {
			log.Warnw("failed to initialize gemini optimizer, using template", "error", err)
			return nil
		}
		return g
	default:
		log.Warnw("unknown optimizer provider, using template", "provider", cfg.Provider)
		return nil
	}
}
