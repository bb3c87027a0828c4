package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/wari/engine"
	"github.com/spektr-org/wari/logging"
	"github.com/spektr-org/wari/session"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var (
		q      queryFlags
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered, sorted occupations as CSV",
		Long: `Export every occupation matching the search and filters (all pages) as
CSV. The file name reflects the active filters, e.g.
wari-data-education-low-risk-filtered.csv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())

			s, loadErr := openSession(cmd)
			defer s.Close()
			if err := q.apply(s); err != nil {
				return err
			}

			if stdout {
				name, content := s.Export()
				logging.FromContext(cmd.Context()).Debug("exporting to stdout", zap.String("name", name))
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), content)
			} else {
				path, rows, err := writeExport(s, cfg.ExportDir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n",
					pluralOccupations(rows), path)
			}

			if loadErr != nil {
				return fmt.Errorf("exported sample records only: %w", loadErr)
			}
			return nil
		},
	}

	q.bind(cmd, false)
	cmd.Flags().String("dir", "", "Directory to write the CSV file to (default: export_dir)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Write the CSV to stdout instead of a file")
	return cmd
}

// writeExport writes the session's export into dir and returns the path
// and the number of data rows.
func writeExport(s *session.Session, dir string) (string, int, error) {
	name, content := s.Export()
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("failed to create export dir: %w", err)
	}
	path := filepath.Join(dir, exportFileName(name))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", 0, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, strings.Count(content, "\n"), nil
}

// exportFileName keeps a filter-derived name inside the export dir:
// sector values such as "Arts/Media" must not add path elements.
func exportFileName(name string) string {
	return pathSeparators.Replace(name)
}

var pathSeparators = strings.NewReplacer("/", "-", `\`, "-")

func pluralOccupations(n int) string {
	if n == 1 {
		return "1 occupation"
	}
	return engine.FormatInt(n) + " occupations"
}
