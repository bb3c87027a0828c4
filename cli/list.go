package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spektr-org/wari/engine"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var q queryFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List occupations, one page at a time",
		Long: `List occupations matching the search and filters, sorted and paged.

Examples:
  wari list --search nurse
  wari list --sector "Finance & Business Services" --sort alpha
  wari list --risk "very high" --page 2 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())

			s, _ := openSession(cmd)
			defer s.Close()
			if err := q.apply(s); err != nil {
				return err
			}
			snap := s.Snapshot()

			w := cmd.OutOrStdout()
			switch cfg.Output {
			case "json":
				return renderJSON(w, snap)
			case "csv":
				_, err := fmt.Fprintln(w, engine.ExportCSV(snap.View.Page.Items))
				return err
			default:
				_, _ = fmt.Fprintln(w, mutedStyle.Render(engine.ResultsCount(snap.View.FilteredCount, snap.View.TotalCount)))
				renderTableData(w, engine.BuildPageTable(snap.View.Page), cfg.Output)
				return nil
			}
		},
	}

	q.bind(cmd, true)
	return cmd
}
