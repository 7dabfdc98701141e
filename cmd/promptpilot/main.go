package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/promptpilot/promptpilot/internal/interfaces/cli/configcmd"
	"github.com/promptpilot/promptpilot/internal/interfaces/cli/migrate"
	"github.com/promptpilot/promptpilot/internal/interfaces/cli/server"
	"github.com/promptpilot/promptpilot/internal/interfaces/cli/version"
)

//	@title						PromptPilot API
//	@version					1.0
//	@description				Prompt optimization with a daily token ledger and Pro subscriptions.
//	@BasePath					/api
//	@securityDefinitions.apikey	Bearer
//	@in							header
//	@name						Authorization
//	@securityDefinitions.apikey	ServiceKey
//	@in							header
//	@name						X-Service-Key

func main() {
	rootCmd := &cobra.Command{
		Use:          "promptpilot",
		Short:        "PromptPilot API server",
		Long:         `PromptPilot turns rough prompts into structured ones, metering free users with daily tokens.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		configcmd.NewCommand(),
		version.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
