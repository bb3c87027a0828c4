package engine

// ============================================================================
// VIEW — Zero-copy ordered subset of a record slice
// ============================================================================
// A View never owns records. It holds the source slice plus an index list,
// so filtering and sorting shuffle ints, not structs, and every element of
// a derived view can be traced back to its position in the loaded data.
// ============================================================================

// View is an ordered selection of records from a source slice.
// The zero value is an empty view.
type View struct {
	source  []Record
	indices []int
}

// NewView wraps records in their load order.
func NewView(records []Record) View {
	indices := make([]int, len(records))
	for i := range indices {
		indices[i] = i
	}
	return View{source: records, indices: indices}
}

func newSubView(parent View, indices []int) View {
	return View{source: parent.source, indices: indices}
}

// Len returns the number of records in the view.
func (v View) Len() int { return len(v.indices) }

// At returns the i-th record of the view.
func (v View) At(i int) Record {
	return v.source[v.indices[i]]
}

// SourceIndex returns the position of the i-th record in the source slice.
func (v View) SourceIndex(i int) int {
	return v.indices[i]
}

// Slice returns the sub-view [from, to), clipped to the view bounds.
func (v View) Slice(from, to int) View {
	n := len(v.indices)
	if from < 0 {
		from = 0
	}
	if to > n {
		to = n
	}
	if from >= to {
		return View{source: v.source}
	}
	return newSubView(v, v.indices[from:to])
}

// Records copies the view out into a new slice.
func (v View) Records() []Record {
	out := make([]Record, len(v.indices))
	for i, idx := range v.indices {
		out[i] = v.source[idx]
	}
	return out
}
