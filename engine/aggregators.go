package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// ============================================================================
// AGGREGATORS — Per-sector means and whole-set summaries
// ============================================================================
// Aggregation always runs over the full record set, never the filtered view,
// so the sector chart stays fixed while the table is filtered.
// ============================================================================

// Aggregate groups records by exact Category and returns one row per
// category with the mean Score and member count, ordered by mean descending.
// Equal means keep first-seen order.
func Aggregate(records []Record) []SectorRow {
	if len(records) == 0 {
		return []SectorRow{}
	}

	type acc struct {
		sum   float64
		count int
	}
	grouped := make(map[string]*acc)
	order := make([]string, 0)

	for _, r := range records {
		a, exists := grouped[r.Category]
		if !exists {
			a = &acc{}
			grouped[r.Category] = a
			order = append(order, r.Category)
		}
		a.sum += r.Score
		a.count++
	}

	rows := make([]SectorRow, 0, len(order))
	for _, key := range order {
		a := grouped[key]
		rows = append(rows, SectorRow{
			Category: key,
			Mean:     a.sum / float64(a.count),
			Count:    a.count,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Mean > rows[j].Mean })
	return rows
}

// Categories returns the distinct categories of records in ascending byte
// order, for building a sector picker.
func Categories(records []Record) []string {
	seen := make(map[string]bool)
	var result []string
	for _, r := range records {
		if !seen[r.Category] {
			seen[r.Category] = true
			result = append(result, r.Category)
		}
	}
	sort.Strings(result)
	return result
}

// Summarize reports the size, sector count and score range of records.
func Summarize(records []Record) Summary {
	s := Summary{Total: len(records)}
	if len(records) == 0 {
		return s
	}
	s.MinScore = math.Inf(1)
	s.MaxScore = math.Inf(-1)
	sectors := make(map[string]bool)
	for _, r := range records {
		sectors[r.Category] = true
		if r.Score < s.MinScore {
			s.MinScore = r.Score
		}
		if r.Score > s.MaxScore {
			s.MaxScore = r.Score
		}
	}
	s.Sectors = len(sectors)
	return s
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatFixed1 renders v with exactly one decimal place.
//
// Rounding is half away from zero on v*10, so 1.25 → "1.3", -1.25 → "-1.3"
// and 1.24 → "1.2". Negative zero prints as "0.0".
func FormatFixed1(v float64) string {
	r := math.Round(v*10) / 10
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// RoundTo rounds v half away from zero to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}
