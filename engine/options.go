package engine

import (
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// ============================================================================
// ENGINE OPTIONS — Functional options for Sort() and Derive()
// ============================================================================

// Option configures engine behavior via functional options pattern.
type Option func(*config)

type config struct {
	Locale language.Tag
	Logger *zap.Logger
}

// WithLocale sets the collation locale for title and sector ordering.
func WithLocale(tag language.Tag) Option {
	return func(c *config) {
		c.Locale = tag
	}
}

// WithLogger routes pipeline debug logs to l.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		Locale: language.English,
		Logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
