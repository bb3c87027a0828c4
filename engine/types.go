package engine

import (
	"fmt"
	"regexp"
	"strings"
)

// ============================================================================
// WARI ENGINE TYPES — Occupation records and query state
// ============================================================================
// Records are loaded once and never mutated. QueryState is owned by the
// caller (see package session) and passed by value into the pure stages.
// ============================================================================

// PageSize is the fixed number of records per page.
const PageSize = 50

// All is the filter value that disables the category or risk filter.
const All = "all"

// Conventional risk tiers. The set is open: any string is a valid tier.
const (
	RiskVeryLow  = "Very Low"
	RiskLow      = "Low"
	RiskMedium   = "Medium"
	RiskHigh     = "High"
	RiskVeryHigh = "Very High"
	RiskUnknown  = "Unknown"
)

// RiskTiers lists the conventional tiers from lowest to highest, then Unknown.
var RiskTiers = []string{RiskVeryLow, RiskLow, RiskMedium, RiskHigh, RiskVeryHigh, RiskUnknown}

// ============================================================================
// RECORD
// ============================================================================

// Record is one occupation entry.
//
// Numeric fields are always finite; string fields default to "" and
// RiskTier defaults to "Unknown". The loader enforces both.
type Record struct {
	Title           string  `json:"job"`
	Category        string  `json:"sector"`
	Score           float64 `json:"wari"`
	SecondaryScore  float64 `json:"alpha"`
	ShortTermImpact float64 `json:"decline_2030"`
	LongTermImpact  float64 `json:"decline_2040"`
	RiskTier        string  `json:"risk_level"`
	Notes           string  `json:"notes"`
}

// DeriveRiskTier maps a WARI score onto the conventional tiers.
// Thresholds: <35 Very Low, <45 Low, <60 Medium, <70 High, else Very High.
func DeriveRiskTier(score float64) string {
	switch {
	case score < 35:
		return RiskVeryLow
	case score < 45:
		return RiskLow
	case score < 60:
		return RiskMedium
	case score < 70:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}

// ============================================================================
// SORT KEY
// ============================================================================

// SortKey selects the comparator used by Sort.
type SortKey int

const (
	ScoreDesc SortKey = iota
	ScoreAsc
	TitleAlpha
	CategoryThenTitle
)

var sortKeyNames = map[SortKey]string{
	ScoreDesc:         "wari-desc",
	ScoreAsc:          "wari-asc",
	TitleAlpha:        "alpha",
	CategoryThenTitle: "sector",
}

// SortKeyNames returns the textual sort keys in declaration order.
func SortKeyNames() []string {
	return []string{"wari-desc", "wari-asc", "alpha", "sector"}
}

func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SortKey(%d)", int(k))
}

// ParseSortKey accepts the textual form ("wari-desc", "wari-asc", "alpha",
// "sector"), case-insensitively.
func ParseSortKey(s string) (SortKey, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for k, name := range sortKeyNames {
		if name == needle {
			return k, nil
		}
	}
	return ScoreDesc, fmt.Errorf("unknown sort key %q (want one of %s)", s, strings.Join(SortKeyNames(), ", "))
}

// MarshalText encodes the key by name.
func (k SortKey) MarshalText() ([]byte, error) {
	if _, ok := sortKeyNames[k]; !ok {
		return nil, fmt.Errorf("invalid sort key %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a key written by MarshalText.
func (k *SortKey) UnmarshalText(b []byte) error {
	parsed, err := ParseSortKey(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ============================================================================
// QUERY STATE
// ============================================================================

// QueryState is the single active set of user choices.
type QueryState struct {
	Search   string  `json:"search"`
	Category string  `json:"category"`
	Risk     string  `json:"risk"`
	Sort     SortKey `json:"sort"`
	Page     int     `json:"page"`
}

// DefaultQueryState returns the startup state: no search, all categories,
// all risk tiers, score descending, first page.
func DefaultQueryState() QueryState {
	return QueryState{
		Search:   "",
		Category: All,
		Risk:     All,
		Sort:     ScoreDesc,
		Page:     1,
	}
}

// Active reports which filters are in effect.
func (s QueryState) Active() ActiveFilters {
	a := ActiveFilters{Search: strings.TrimSpace(s.Search)}
	if s.Category != "" && s.Category != All {
		a.Category = s.Category
	}
	if s.Risk != "" && s.Risk != All {
		a.Risk = s.Risk
	}
	return a
}

// ActiveFilters holds the non-default filter values of a QueryState.
// Empty fields mean the filter is off.
type ActiveFilters struct {
	Category string `json:"category,omitempty"`
	Risk     string `json:"risk,omitempty"`
	Search   string `json:"search,omitempty"`
}

// IsEmpty returns true if no filter is active.
func (a ActiveFilters) IsEmpty() bool {
	return a.Category == "" && a.Risk == "" && a.Search == ""
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename builds the export file name: wari-data[-<sector>][-<risk>-risk][-filtered].csv
func (a ActiveFilters) Filename() string {
	var b strings.Builder
	b.WriteString("wari-data")
	if a.Category != "" {
		b.WriteString("-" + sanitizeName(a.Category))
	}
	if a.Risk != "" {
		b.WriteString("-" + sanitizeName(a.Risk) + "-risk")
	}
	if a.Search != "" {
		b.WriteString("-filtered")
	}
	b.WriteString(".csv")
	return b.String()
}

func sanitizeName(s string) string {
	return strings.ToLower(whitespaceRun.ReplaceAllString(s, "-"))
}

// ============================================================================
// DERIVED RESULTS
// ============================================================================

// PageResult is one page of an ordered view.
// StartIndex and EndIndex are 1-based inclusive display bounds.
type PageResult struct {
	Items       []Record `json:"items"`
	StartIndex  int      `json:"startIndex"`
	EndIndex    int      `json:"endIndex"`
	CurrentPage int      `json:"currentPage"`
	MaxPage     int      `json:"maxPage"`
	Total       int      `json:"total"`
}

// SectorRow is one aggregate row: mean score and member count of a category.
type SectorRow struct {
	Category string  `json:"sector"`
	Mean     float64 `json:"average"`
	Count    int     `json:"count"`
}

// DerivedView is everything the presentation needs for one QueryState.
type DerivedView struct {
	Sorted        View          `json:"-"`
	Page          PageResult    `json:"page"`
	TotalCount    int           `json:"totalCount"`
	FilteredCount int           `json:"filteredCount"`
	MaxPage       int           `json:"maxPage"`
	Active        ActiveFilters `json:"active"`
}

// Summary describes a whole record set.
type Summary struct {
	Total    int     `json:"total"`
	Sectors  int     `json:"sectors"`
	MinScore float64 `json:"minScore"`
	MaxScore float64 `json:"maxScore"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	YMax       float64       `json:"yMax,omitempty"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point. Key is the filter value a
// click on the point should apply.
type ChartPoint struct {
	Label   string   `json:"label"`
	Key     string   `json:"key,omitempty"`
	Value   float64  `json:"value"`
	Tooltip []string `json:"tooltip,omitempty"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Footer  string     `json:"footer,omitempty"`
	Empty   *EmptyHint `json:"empty,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number", "percent", "badge"
	Align string `json:"align"` // "left", "center", "right"
}

// EmptyHint is shown instead of rows when a table has none.
type EmptyHint struct {
	Heading string `json:"heading"`
	Message string `json:"message"`
}
