package schema

import (
	"strings"
)

// ============================================================================
// SCHEMA — Maps source field names onto the normalized occupation Record
// ============================================================================
// The loader uses the schema to find each Record field in a JSON object or
// a CSV header. Source keys are normalized with NormalizeKey before lookup,
// so "WARI Score", "wari_score" and "Wari-Score" resolve to the same field.
// ============================================================================

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`

	Dimensions []DimensionMeta `json:"dimensions"`
	Measures   []MeasureMeta   `json:"measures"`
}

// DimensionMeta describes a string field.
type DimensionMeta struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"displayName"`
	Aliases     []string `json:"aliases,omitempty"`
	Default     string   `json:"default,omitempty"`
	Filterable  bool     `json:"filterable"`
}

// MeasureMeta describes a numeric field.
type MeasureMeta struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"displayName"`
	Aliases     []string `json:"aliases,omitempty"`
	Unit        string   `json:"unit,omitempty"` // "points", "ratio", "percent"
	Decimals    int      `json:"decimals"`       // rounding applied on raw CSV import
}

// Field keys of the occupation dataset. They double as the JSON keys of the
// published records file.
const (
	KeyJob         = "job"
	KeySector      = "sector"
	KeyWARI        = "wari"
	KeyAlpha       = "alpha"
	KeyDecline2030 = "decline_2030"
	KeyDecline2040 = "decline_2040"
	KeyRiskLevel   = "risk_level"
	KeyNotes       = "notes"
)

// Occupations returns the schema of the WARI occupations dataset.
// Aliases cover the raw research export (ASRI naming, Demand_Decline_*
// columns) and the CSV written by the export stage.
func Occupations() Config {
	return Config{
		Name:        "occupations",
		Version:     "1",
		Description: "Workforce AI Risk Index per occupation",
		Dimensions: []DimensionMeta{
			{Key: KeyJob, DisplayName: "Job", Aliases: []string{"title", "occupation"}},
			{Key: KeySector, DisplayName: "Sector", Aliases: []string{"category"}, Filterable: true},
			{Key: KeyRiskLevel, DisplayName: "Risk Level", Aliases: []string{"risk", "risk_tier"}, Default: "Unknown", Filterable: true},
			{Key: KeyNotes, DisplayName: "Notes"},
		},
		Measures: []MeasureMeta{
			{Key: KeyWARI, DisplayName: "WARI Score", Aliases: []string{"asri", "wari_score", "score"}, Unit: "points", Decimals: 1},
			{Key: KeyAlpha, DisplayName: "Alpha", Unit: "ratio", Decimals: 3},
			{Key: KeyDecline2030, DisplayName: "2030 Decline (%)", Aliases: []string{"demand_decline_2030", "2030_decline_(%)", "2030_decline"}, Unit: "percent", Decimals: 1},
			{Key: KeyDecline2040, DisplayName: "2040 Decline (%)", Aliases: []string{"demand_decline_2040", "2040_decline_(%)", "2040_decline"}, Unit: "percent", Decimals: 1},
		},
	}
}

// Resolve maps a source field name to its schema key.
// measure reports whether the key names a numeric field.
func (c Config) Resolve(name string) (key string, measure bool, ok bool) {
	n := NormalizeKey(name)
	for _, d := range c.Dimensions {
		if d.Key == n || contains(d.Aliases, n) {
			return d.Key, false, true
		}
	}
	for _, m := range c.Measures {
		if m.Key == n || contains(m.Aliases, n) {
			return m.Key, true, true
		}
	}
	return "", false, false
}

// Dimension returns the dimension with the given key.
func (c Config) Dimension(key string) (DimensionMeta, bool) {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return d, true
		}
	}
	return DimensionMeta{}, false
}

// Measure returns the measure with the given key.
func (c Config) Measure(key string) (MeasureMeta, bool) {
	for _, m := range c.Measures {
		if m.Key == key {
			return m, true
		}
	}
	return MeasureMeta{}, false
}

// DimensionKeys returns all dimension keys.
func (c Config) DimensionKeys() []string {
	keys := make([]string, len(c.Dimensions))
	for i, d := range c.Dimensions {
		keys[i] = d.Key
	}
	return keys
}

// MeasureKeys returns all measure keys.
func (c Config) MeasureKeys() []string {
	keys := make([]string, len(c.Measures))
	for i, m := range c.Measures {
		keys[i] = m.Key
	}
	return keys
}

// NormalizeKey converts "Column Name" → "column_name".
func NormalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
