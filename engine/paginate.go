package engine

// Paginate slices view into pages of pageSize and returns page number page.
//
// MaxPage is at least 1, even for an empty view. A page outside
// [1, MaxPage] yields no items; callers are expected to clamp first.
// A non-positive pageSize falls back to PageSize.
func Paginate(view View, page, pageSize int) PageResult {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	n := view.Len()

	res := PageResult{
		CurrentPage: page,
		MaxPage:     MaxPage(n, pageSize),
		Total:       n,
	}

	switch {
	case page < 1:
		res.Items = []Record{}
		return res
	case page > res.MaxPage:
		// page*pageSize may overflow past MaxPage.
		res.StartIndex, res.EndIndex = n, n
		res.Items = []Record{}
		return res
	}
	res.StartIndex = clampInt((page-1)*pageSize+1, 0, n)
	res.EndIndex = clampInt(page*pageSize, 0, n)
	res.Items = view.Slice((page-1)*pageSize, page*pageSize).Records()
	return res
}

// MaxPage returns ceil(count/pageSize), never less than 1.
func MaxPage(count, pageSize int) int {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage bounds page to [1, MaxPage(count, pageSize)].
func ClampPage(page, count, pageSize int) int {
	return clampInt(page, 1, MaxPage(count, pageSize))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
