package engine

import (
	"strings"
)

// ============================================================================
// FILTERS — Search, category and risk predicates over a View
// ============================================================================
// Single-pass filter: checks all three predicates per record in one loop.
// Returns a sub-view (index list into the same source) in input order.
// ============================================================================

// Filter returns the records of view matching state's search, category and
// risk filters. Each predicate is vacuous in its default state.
// An empty result is a valid outcome.
func Filter(view View, state QueryState) View {
	search := strings.ToLower(strings.TrimSpace(state.Search))
	category := state.Category
	if category == "" {
		category = All
	}
	risk := state.Risk
	if risk == "" {
		risk = All
	}

	if search == "" && category == All && risk == All {
		return view
	}

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		r := view.At(i)
		if category != All && r.Category != category {
			continue
		}
		if risk != All && r.RiskTier != risk {
			continue
		}
		if search != "" && !matchesSearch(r, search) {
			continue
		}
		indices = append(indices, view.SourceIndex(i))
	}

	return newSubView(view, indices)
}

// FilterRecords is Filter over a plain slice, returning copies.
func FilterRecords(records []Record, state QueryState) []Record {
	return Filter(NewView(records), state).Records()
}

// matchesSearch expects needle already lowercased.
func matchesSearch(r Record, needle string) bool {
	return strings.Contains(strings.ToLower(r.Title), needle) ||
		strings.Contains(strings.ToLower(r.Category), needle)
}
