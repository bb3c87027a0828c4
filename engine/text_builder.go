package engine

import (
	"fmt"
)

// ============================================================================
// TEXT BUILDER — Count and pagination captions
// ============================================================================

// ResultsCount renders "<filtered> of <total> occupations".
func ResultsCount(filtered, total int) string {
	return fmt.Sprintf("%s of %s occupations", FormatInt(filtered), FormatInt(total))
}

// PaginationInfo renders "Showing a-b of n occupations (Page p of m)".
func PaginationInfo(page PageResult) string {
	return fmt.Sprintf("Showing %d-%d of %s occupations (Page %d of %d)",
		page.StartIndex, page.EndIndex, FormatInt(page.Total), page.CurrentPage, page.MaxPage)
}

// DescribeSummary renders a one-line overview of a record set.
func DescribeSummary(s Summary) string {
	if s.Total == 0 {
		return "No occupations loaded."
	}
	return fmt.Sprintf("%s occupations across %d sectors, WARI range %s - %s",
		FormatInt(s.Total), s.Sectors, FormatFixed1(s.MinScore), FormatFixed1(s.MaxScore))
}
