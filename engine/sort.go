package engine

import (
	"sort"

	"golang.org/x/text/collate"
)

// ============================================================================
// SORT — Orders a View by the selected SortKey
// ============================================================================
// Titles and sectors compare with a locale-aware collator, not byte order,
// so "émigré" sorts next to "emigrant" rather than after "zoologist".
// The sort is stable: records with equal keys keep their input order.
// ============================================================================

// Sort returns a new ordering of view by key. The input view is unchanged.
func Sort(view View, key SortKey, opts ...Option) View {
	cfg := applyOptions(opts)

	indices := make([]int, len(view.indices))
	copy(indices, view.indices)
	src := view.source

	var less func(a, b Record) bool
	switch key {
	case ScoreAsc:
		less = func(a, b Record) bool { return a.Score < b.Score }
	case TitleAlpha:
		// collate.Collator is not safe for concurrent use; one per call.
		col := collate.New(cfg.Locale)
		less = func(a, b Record) bool { return col.CompareString(a.Title, b.Title) < 0 }
	case CategoryThenTitle:
		col := collate.New(cfg.Locale)
		less = func(a, b Record) bool {
			if c := col.CompareString(a.Category, b.Category); c != 0 {
				return c < 0
			}
			return col.CompareString(a.Title, b.Title) < 0
		}
	default:
		less = func(a, b Record) bool { return a.Score > b.Score }
	}

	sort.SliceStable(indices, func(i, j int) bool {
		return less(src[indices[i]], src[indices[j]])
	})

	return newSubView(view, indices)
}

// SortRecords is Sort over a plain slice, returning copies.
func SortRecords(records []Record, key SortKey, opts ...Option) []Record {
	return Sort(NewView(records), key, opts...).Records()
}
