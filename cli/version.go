package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display wari version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wari v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Workforce AI Risk Index explorer (commit %s, built %s)\n", GitCommit, BuildDate)
		},
	}
}
