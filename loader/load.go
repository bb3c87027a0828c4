package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spektr-org/wari/engine"
	"github.com/spektr-org/wari/schema"
)

// ============================================================================
// LOAD — Fetch + decode the occupation collection
// ============================================================================
// Entry points:
//   Load(ctx, src)             single attempt, typed *LoadError on failure
//   LoadWithFallback(ctx, src) sample records AND the error on failure
//
// Location is a local path or an http(s) URL. Locations ending in ".csv"
// are imported with ParseCSV, everything else is decoded as JSON.
// ============================================================================

// DefaultTimeout bounds one load attempt when Source.Timeout is unset.
const DefaultTimeout = 15 * time.Second

// Source describes where the record collection lives.
type Source struct {
	Location    string        `json:"location"`
	RecordsPath string        `json:"recordsPath,omitempty"` // JSONPath selecting the record objects
	Timeout     time.Duration `json:"timeout,omitempty"`
	DeriveRisk  bool          `json:"deriveRisk,omitempty"` // fill a missing risk tier from the score
}

// IsRemote reports whether the location is an http(s) URL.
func (s Source) IsRemote() bool {
	u, err := url.Parse(s.Location)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// IsCSV reports whether the location names a CSV file.
func (s Source) IsCSV() bool {
	p := s.Location
	if s.IsRemote() {
		if u, err := url.Parse(s.Location); err == nil {
			p = u.Path
		}
	}
	return strings.EqualFold(path.Ext(p), ".csv")
}

// ── Options ───────────────────────────────────────────────────────────────────

// Option configures Load.
type Option func(*options)

type options struct {
	client *http.Client
	logger *zap.Logger
}

// WithHTTPClient sets the client used for remote locations.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.client = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{client: http.DefaultClient, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ── Load ──────────────────────────────────────────────────────────────────────

// Load performs one attempt to obtain the record collection.
// Every failure is a *LoadError.
func Load(ctx context.Context, src Source, opts ...Option) ([]engine.Record, error) {
	o := applyOptions(opts)

	timeout := src.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	o.logger.Debug("loading occupations", zap.String("location", src.Location))

	data, err := read(ctx, src, o.client)
	if err != nil {
		return nil, err
	}

	var records []engine.Record
	if src.IsCSV() {
		records, err = ParseCSV(data, schema.Occupations(), opts...)
		if err != nil {
			err = &LoadError{Kind: KindParse, Err: err}
		}
	} else {
		records, err = Decode(data, src.RecordsPath, src.DeriveRisk)
	}
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Location = src.Location
		}
		return nil, err
	}

	o.logger.Info("loaded occupations",
		zap.String("location", src.Location),
		zap.Int("count", len(records)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return records, nil
}

// LoadWithFallback loads src and, on failure, returns the embedded sample
// records together with the error. Callers must surface the error.
func LoadWithFallback(ctx context.Context, src Source, opts ...Option) ([]engine.Record, error) {
	records, err := Load(ctx, src, opts...)
	if err == nil {
		return records, nil
	}
	applyOptions(opts).logger.Warn("load failed, using sample records",
		zap.String("location", src.Location),
		zap.Error(err),
	)
	return SampleRecords(), err
}

func read(ctx context.Context, src Source, client *http.Client) ([]byte, error) {
	if strings.TrimSpace(src.Location) == "" {
		return nil, &LoadError{Kind: KindFetch, Location: src.Location, Err: errors.New("no source location configured")}
	}

	if !src.IsRemote() {
		data, err := os.ReadFile(src.Location)
		if err != nil {
			return nil, &LoadError{Kind: KindFetch, Location: src.Location, Err: err}
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Location, nil)
	if err != nil {
		return nil, &LoadError{Kind: KindFetch, Location: src.Location, Err: err}
	}
	req.Header.Set("Accept", "application/json, text/csv;q=0.9, */*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &LoadError{Kind: KindFetch, Location: src.Location, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{
			Kind:       KindStatus,
			Location:   src.Location,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP error! status: %d", resp.StatusCode),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &LoadError{Kind: KindFetch, Location: src.Location, Err: err}
	}
	return data, nil
}
