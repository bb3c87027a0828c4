// Package session owns the query state of one explorer and turns user
// commands into derived views. Engine stages stay pure; the session is the
// only place QueryState changes.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/spektr-org/wari/engine"
	"github.com/spektr-org/wari/loader"
)

// DefaultSearchDebounce is the quiet window applied to TypeSearch.
const DefaultSearchDebounce = 300 * time.Millisecond

// Snapshot is everything a presentation needs to render the current state.
type Snapshot struct {
	State   engine.QueryState  `json:"state"`
	View    engine.DerivedView `json:"view"`
	Sectors []engine.SectorRow `json:"sectors"`
	LoadErr error              `json:"-"`
}

// Session holds the loaded records, the aggregate computed from them and
// the current QueryState. Methods are safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	src        loader.Source
	records    []engine.Record
	sectors    []engine.SectorRow
	categories []string
	state      engine.QueryState
	loadErr    error

	logger   *zap.Logger
	locale   language.Tag
	loadOpts []loader.Option
	search   *debouncer
	onChange func(Snapshot)
}

// ── Options ───────────────────────────────────────────────────────────────────

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSearchDebounce overrides the TypeSearch quiet window.
func WithSearchDebounce(d time.Duration) Option {
	return func(s *Session) {
		s.search = newDebouncer(d)
	}
}

// WithLocale sets the collation locale for alphabetical sorts.
func WithLocale(tag language.Tag) Option {
	return func(s *Session) {
		s.locale = tag
	}
}

// WithLoadOptions passes options through to the loader.
func WithLoadOptions(opts ...loader.Option) Option {
	return func(s *Session) {
		s.loadOpts = append(s.loadOpts, opts...)
	}
}

// New creates a session for src. No records are loaded until Reload.
func New(src loader.Source, opts ...Option) *Session {
	s := &Session{
		src:        src,
		records:    []engine.Record{},
		sectors:    []engine.SectorRow{},
		categories: []string{},
		state:      engine.DefaultQueryState(),
		logger:     zap.NewNop(),
		locale:     language.English,
		search:     newDebouncer(DefaultSearchDebounce),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.loadOpts = append(s.loadOpts, loader.WithLogger(s.logger))
	return s
}

// Source returns the configured data source.
func (s *Session) Source() loader.Source {
	return s.src
}

// ============================================================================
// LOAD
// ============================================================================

// Reload fetches the records again. On failure the sample records are
// installed and the error is both stored and returned. The aggregate is
// recomputed and the query state reset either way. A pending TypeSearch
// is dropped.
func (s *Session) Reload(ctx context.Context) error {
	s.search.Stop()
	records, err := loader.LoadWithFallback(ctx, s.src, s.loadOpts...)

	s.search.Stop()
	s.mu.Lock()
	s.records = records
	s.sectors = engine.Aggregate(records)
	s.categories = engine.Categories(records)
	s.state = engine.DefaultQueryState()
	s.loadErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("showing sample records", zap.Error(err))
	} else {
		s.logger.Debug("session reloaded", zap.Int("records", len(records)))
	}
	s.notify()
	return err
}

// LoadErr returns the error of the most recent load, if any.
func (s *Session) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// ============================================================================
// COMMANDS
// ============================================================================

// SetSearch applies a search term immediately and returns to page 1.
func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	s.state.Search = term
	s.state.Page = 1
	s.mu.Unlock()
}

// TypeSearch applies term after the debounce window. A later call within
// the window replaces it, so only the last term is applied.
func (s *Session) TypeSearch(term string) {
	s.search.Trigger(func() {
		s.SetSearch(term)
		s.notify()
	})
}

// CancelSearch drops a pending TypeSearch.
func (s *Session) CancelSearch() {
	s.search.Stop()
}

// SetCategory sets the category filter ("" or engine.All clears it) and
// returns to page 1.
func (s *Session) SetCategory(category string) {
	s.mu.Lock()
	s.state.Category = normalizeChoice(category)
	s.state.Page = 1
	s.mu.Unlock()
}

// FocusCategory narrows the view to one sector, as selected from the
// sector chart.
func (s *Session) FocusCategory(category string) {
	s.SetCategory(category)
	s.logger.Debug("focused sector", zap.String("sector", category))
}

// SetRisk sets the risk tier filter ("" or engine.All clears it) and
// returns to page 1.
func (s *Session) SetRisk(risk string) {
	s.mu.Lock()
	s.state.Risk = normalizeChoice(risk)
	s.state.Page = 1
	s.mu.Unlock()
}

// SetSort changes the ordering. The current page is kept.
func (s *Session) SetSort(key engine.SortKey) {
	s.mu.Lock()
	s.state.Sort = key
	s.mu.Unlock()
}

// SetPage moves to page n, clamped to [1, maxPage].
func (s *Session) SetPage(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Page = engine.ClampPage(n, s.filteredCountLocked(), engine.PageSize)
	return s.state.Page
}

// NextPage advances one page. It is a no-op on the last page.
func (s *Session) NextPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Page < engine.MaxPage(s.filteredCountLocked(), engine.PageSize) {
		s.state.Page++
	}
	return s.state.Page
}

// PrevPage goes back one page. It is a no-op on page 1.
func (s *Session) PrevPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Page > 1 {
		s.state.Page--
	}
	return s.state.Page
}

// OnChange registers fn to run after asynchronous state changes
// (debounced search, reload). Only one hook is kept.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Close cancels pending debounced work.
func (s *Session) Close() {
	s.search.Stop()
}

// ============================================================================
// QUERIES
// ============================================================================

// State returns the current QueryState.
func (s *Session) State() engine.QueryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot derives the current view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Records returns a copy of the loaded records in load order.
func (s *Session) Records() []engine.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]engine.Record(nil), s.records...)
}

// Sectors returns the per-sector aggregate of the full record set.
func (s *Session) Sectors() []engine.SectorRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]engine.SectorRow{}, s.sectors...)
}

// Categories returns the distinct categories, sorted.
func (s *Session) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.categories...)
}

// Export renders the filtered and sorted view (all pages) as CSV and
// names the file after the active filters.
func (s *Session) Export() (name, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := engine.Derive(s.records, s.state, s.engineOptions()...)
	return view.Active.Filename(), engine.ExportView(view.Sorted)
}

// ── internals ─────────────────────────────────────────────────────────────────

func (s *Session) engineOptions() []engine.Option {
	return []engine.Option{engine.WithLocale(s.locale), engine.WithLogger(s.logger)}
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		State:   s.state,
		View:    engine.Derive(s.records, s.state, s.engineOptions()...),
		Sectors: append([]engine.SectorRow{}, s.sectors...),
		LoadErr: s.loadErr,
	}
}

func (s *Session) filteredCountLocked() int {
	return engine.Filter(engine.NewView(s.records), s.state).Len()
}

func (s *Session) notify() {
	s.mu.Lock()
	fn := s.onChange
	if fn == nil {
		s.mu.Unlock()
		return
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	fn(snap)
}

func normalizeChoice(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || strings.EqualFold(v, engine.All) {
		return engine.All
	}
	return v
}
