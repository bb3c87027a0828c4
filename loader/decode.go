package loader

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cast"

	"github.com/spektr-org/wari/engine"
	"github.com/spektr-org/wari/schema"
)

// ============================================================================
// DECODE — JSON document → []engine.Record
// ============================================================================
// The document is parsed once with ojg. An optional JSONPath selects the
// record objects (e.g. "$.occupations[*]"); without one the root must be an
// array. Every selected element is normalized against the occupations
// schema, so malformed fields degrade to defaults instead of failing.
// ============================================================================

// Decode parses a JSON document into records.
// Returned errors are *LoadError with KindParse or KindShape.
func Decode(data []byte, recordsPath string, deriveRisk bool) ([]engine.Record, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return nil, &LoadError{Kind: KindParse, Err: err}
	}

	items, err := selectItems(doc, recordsPath)
	if err != nil {
		return nil, &LoadError{Kind: KindShape, Err: err}
	}

	sch := schema.Occupations()
	records := make([]engine.Record, 0, len(items))
	for _, item := range items {
		obj, _ := item.(map[string]any)
		records = append(records, Normalize(obj, sch, deriveRisk))
	}
	return records, nil
}

func selectItems(doc any, recordsPath string) ([]any, error) {
	if strings.TrimSpace(recordsPath) == "" {
		arr, ok := doc.([]any)
		if !ok {
			return nil, fmt.Errorf("expected a JSON array of records, got %s", describe(doc))
		}
		return arr, nil
	}

	x, err := jp.ParseString(recordsPath)
	if err != nil {
		return nil, fmt.Errorf("invalid records path '%s': %w", recordsPath, err)
	}

	results := x.Get(doc)
	if len(results) == 0 {
		return nil, fmt.Errorf("records path '%s' matched nothing", recordsPath)
	}
	// "$.occupations" selects the array itself; "$.occupations[*]" its elements.
	if len(results) == 1 {
		if arr, ok := results[0].([]any); ok {
			return arr, nil
		}
	}
	return results, nil
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	default:
		return "a number"
	}
}

// ============================================================================
// NORMALIZE — Loose source values → typed Record fields
// ============================================================================

// Normalize maps one source object onto a Record. Keys are resolved through
// the schema, so aliases such as "ASRI" fill the score. Numeric fields that
// are missing, unparseable or non-finite become 0. String fields that are
// missing or empty take the schema default. A missing risk tier is derived
// from the score when deriveRisk is set.
func Normalize(obj map[string]any, sch schema.Config, deriveRisk bool) engine.Record {
	fields := make(map[string]any, len(obj))
	for name, v := range obj {
		key, _, ok := sch.Resolve(name)
		if !ok {
			continue
		}
		// The canonical name wins over an alias.
		if _, seen := fields[key]; seen && schema.NormalizeKey(name) != key {
			continue
		}
		fields[key] = v
	}

	rec := engine.Record{
		Title:           toText(fields[schema.KeyJob]),
		Category:        toText(fields[schema.KeySector]),
		Score:           toNumber(fields[schema.KeyWARI]),
		SecondaryScore:  toNumber(fields[schema.KeyAlpha]),
		ShortTermImpact: toNumber(fields[schema.KeyDecline2030]),
		LongTermImpact:  toNumber(fields[schema.KeyDecline2040]),
		RiskTier:        toText(fields[schema.KeyRiskLevel]),
		Notes:           toText(fields[schema.KeyNotes]),
	}

	if rec.RiskTier == "" {
		rec.RiskTier = engine.RiskUnknown
		if d, ok := sch.Dimension(schema.KeyRiskLevel); ok && d.Default != "" {
			rec.RiskTier = d.Default
		}
		if deriveRisk {
			rec.RiskTier = engine.DeriveRiskTier(rec.Score)
		}
	}
	return rec
}

// toText keeps strings, stringifies non-zero scalars and drops everything
// else (null, false, zero, objects, arrays).
func toText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return ""
	case map[string]any, []any:
		return ""
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || f == 0 || math.IsNaN(f) {
		return ""
	}
	return cast.ToString(v)
}

// toNumber converts a source value to a finite float.
// Strings are read by their leading numeric prefix ("12.5%" → 12.5).
func toNumber(v any) float64 {
	var f float64
	switch t := v.(type) {
	case nil, bool, map[string]any, []any:
		return 0
	case string:
		f = ParseFloatPrefix(t)
	default:
		n, err := cast.ToFloat64E(v)
		if err != nil {
			return 0
		}
		f = n
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

var numericPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?)`)

// ParseFloatPrefix reads the longest leading decimal literal of s after
// skipping leading whitespace. It returns NaN when there is none.
func ParseFloatPrefix(s string) float64 {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	m := numericPrefix.FindString(s)
	if m == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil && !isRangeErr(err) {
		return math.NaN()
	}
	return f
}

func isRangeErr(err error) bool {
	ne, ok := err.(*strconv.NumError)
	return ok && ne.Err == strconv.ErrRange
}
