package engine

import (
	"go.uber.org/zap"
)

// ============================================================================
// EXECUTOR — Filter → Sort → Paginate for one QueryState
// ============================================================================
// Entry point: Derive(records, state, opts...)
//
// Pipeline:
//   1. Filter the full record set → sub-view
//   2. Sort the filtered view
//   3. Slice out the requested page
//
// Derive is pure: same records and state, same DerivedView. It neither
// clamps nor stores state; the caller owns both.
// ============================================================================

// Derive computes the view the presentation renders for state.
func Derive(records []Record, state QueryState, opts ...Option) DerivedView {
	cfg := applyOptions(opts)

	all := NewView(records)
	filtered := Filter(all, state)
	sorted := Sort(filtered, state.Sort, opts...)
	page := Paginate(sorted, state.Page, PageSize)

	cfg.Logger.Debug("derived view",
		zap.Int("total", all.Len()),
		zap.Int("filtered", filtered.Len()),
		zap.Stringer("sort", state.Sort),
		zap.Int("page", page.CurrentPage),
		zap.Int("max_page", page.MaxPage),
	)

	return DerivedView{
		Sorted:        sorted,
		Page:          page,
		TotalCount:    all.Len(),
		FilteredCount: filtered.Len(),
		MaxPage:       page.MaxPage,
		Active:        state.Active(),
	}
}
