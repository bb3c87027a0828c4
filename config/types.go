// Package config provides configuration management for the wari CLI.
//
// Values are layered: defaults, then wari.yaml (or the --config file), then
// WARI_* environment variables, then explicitly set flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/spektr-org/wari/loader"
)

// Defaults.
const (
	DefaultSource         = "https://ppl-ai-code-interpreter-files.s3.amazonaws.com/web/direct-files/5c22422f41748cdd80bcdc1e0e3d3eb7/d8bf0113-9bd3-4b57-9c7d-dcfcab3b3671/5bd30d03.json"
	DefaultTimeout        = 15 * time.Second
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultLocale         = "en"
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "console"
	DefaultOutput         = "table"
	DefaultExportDir      = "."
	DefaultHistoryFile    = ".wari_history"
)

// Output formats accepted by the output key.
var OutputFormats = []string{"table", "markdown", "json", "csv"}

// Config holds all CLI configuration options.
type Config struct {
	Source         string        `koanf:"source"`
	RecordsPath    string        `koanf:"records_path"`
	Timeout        time.Duration `koanf:"timeout"`
	SearchDebounce time.Duration `koanf:"search_debounce"`
	DeriveRisk     bool          `koanf:"derive_risk"`
	Locale         string        `koanf:"locale"`
	LogLevel       string        `koanf:"log_level"`
	LogFormat      string        `koanf:"log_format"`
	Output         string        `koanf:"output"`
	ExportDir      string        `koanf:"export_dir"`
	HistoryFile    string        `koanf:"history_file"`

	// ConfigFile is the file the values were read from, if any.
	ConfigFile string `koanf:"-"`
}

// LoaderSource converts the config into a loader.Source.
func (c *Config) LoaderSource() loader.Source {
	return loader.Source{
		Location:    c.Source,
		RecordsPath: c.RecordsPath,
		Timeout:     c.Timeout,
		DeriveRisk:  c.DeriveRisk,
	}
}

// Language returns the collation locale. Invalid tags fall back to English.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// Validate checks enumerated values and durations.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("source is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.SearchDebounce < 0 {
		return fmt.Errorf("search_debounce must not be negative, got %s", c.SearchDebounce)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	if !oneOf(c.Output, OutputFormats...) {
		return fmt.Errorf("invalid output %q (expected one of %s)", c.Output, strings.Join(OutputFormats, ", "))
	}
	if !oneOf(c.LogLevel, "debug", "info", "warn", "error") {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if !oneOf(c.LogFormat, "console", "json") {
		return fmt.Errorf("invalid log_format %q", c.LogFormat)
	}
	return nil
}

func oneOf(v string, options ...string) bool {
	for _, o := range options {
		if v == o {
			return true
		}
	}
	return false
}
