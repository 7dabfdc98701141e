package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	buildinfo "github.com/promptpilot/promptpilot/internal/shared/version"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s/%s %s\n", buildinfo.String(), runtime.GOOS, runtime.GOARCH, runtime.Version())
		},
	}
}
