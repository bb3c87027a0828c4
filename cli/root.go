// Package cli provides the command-line interface for wari.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/wari/config"
	"github.com/spektr-org/wari/logging"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "wari",
		Short: "wari - Workforce AI Risk Index explorer",
		Long: `wari explores the Workforce AI Risk Index: occupation records with a
risk score, sector, projected demand decline and risk tier.

Search, filter, sort and page through the records, view the average score
per sector, and export the current view as CSV.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			logger := logging.New(cfg.LogLevel, cfg.LogFormat)
			if cfg.ConfigFile != "" {
				logger.Debug("using config file", zap.String("path", cfg.ConfigFile))
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = logging.WithContext(ctx, logger)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./wari.yaml)")
	pf.String("source", "", "Occupation data location: JSON or CSV file path, or http(s) URL")
	pf.String("records-path", "", "JSONPath selecting the record objects (e.g. $.occupations[*])")
	pf.Duration("timeout", 0, "Load timeout (e.g. 10s)")
	pf.Bool("derive-risk", false, "Derive a missing risk tier from the WARI score")
	pf.String("locale", "", "Collation locale for alphabetical sorts (e.g. en, fr)")
	pf.String("log-level", "", "Log level (debug|info|warn|error)")
	pf.String("log-format", "", "Log format (console|json)")
	pf.StringP("output", "o", "", "Output format (table|markdown|json|csv)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewSectorsCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewExploreCommand())
	rootCmd.AddCommand(NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	return &config.Config{
		Source:         config.DefaultSource,
		Timeout:        config.DefaultTimeout,
		SearchDebounce: config.DefaultSearchDebounce,
		Locale:         config.DefaultLocale,
		LogLevel:       config.DefaultLogLevel,
		LogFormat:      config.DefaultLogFormat,
		Output:         config.DefaultOutput,
		ExportDir:      config.DefaultExportDir,
		HistoryFile:    config.DefaultHistoryFile,
	}
}
