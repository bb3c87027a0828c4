package cli

import (
	"github.com/spf13/cobra"

	"github.com/spektr-org/wari/engine"
)

// NewSectorsCommand creates the sectors command.
func NewSectorsCommand() *cobra.Command {
	var bars bool

	cmd := &cobra.Command{
		Use:   "sectors",
		Short: "Show the average WARI score per sector",
		Long: `Show the average WARI score and occupation count of every sector,
highest average first. The aggregate always covers the full record set.

With -o json the output is the chart configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())

			s, _ := openSession(cmd)
			defer s.Close()
			rows := s.Sectors()

			w := cmd.OutOrStdout()
			switch cfg.Output {
			case "json":
				return renderJSON(w, engine.BuildSectorChart(rows))
			default:
				if bars && cfg.Output != "markdown" {
					renderBars(w, engine.BuildSectorChart(rows), 40)
					return nil
				}
				renderTableData(w, engine.BuildSectorTable(rows), cfg.Output)
				return nil
			}
		},
	}

	cmd.Flags().BoolVar(&bars, "bars", false, "Draw a bar chart instead of a table")
	return cmd
}
