package engine

import (
	"fmt"
)

// ============================================================================
// TABLE BUILDER — Produces TableData for the occupation and sector tables
// ============================================================================

// BuildPageTable renders one page of occupations. An empty page carries an
// EmptyHint instead of rows.
func BuildPageTable(page PageResult) *TableData {
	table := &TableData{
		Title: "Occupations",
		Columns: []Column{
			{Key: "job", Label: "Job", Type: "text", Align: "left"},
			{Key: "sector", Label: "Sector", Type: "text", Align: "left"},
			{Key: "wari", Label: "WARI Score", Type: "number", Align: "right"},
			{Key: "decline_2030", Label: "2030 Decline", Type: "percent", Align: "right"},
			{Key: "risk_level", Label: "Risk Level", Type: "badge", Align: "center"},
		},
		Rows: [][]string{},
	}

	if page.Total == 0 {
		table.Empty = &EmptyHint{
			Heading: "No occupations found",
			Message: "Try adjusting your search criteria or filters.",
		}
		return table
	}

	for _, r := range page.Items {
		table.Rows = append(table.Rows, []string{
			r.Title,
			r.Category,
			FormatFixed1(r.Score),
			FormatFixed1(r.ShortTermImpact) + "%",
			r.RiskTier,
		})
	}
	table.Footer = PaginationInfo(page)
	return table
}

// BuildSectorTable renders aggregate rows.
func BuildSectorTable(rows []SectorRow) *TableData {
	table := &TableData{
		Title: "Average WARI Score by Sector",
		Columns: []Column{
			{Key: "sector", Label: "Sector", Type: "text", Align: "left"},
			{Key: "average", Label: "Average WARI", Type: "number", Align: "right"},
			{Key: "count", Label: "Occupations", Type: "number", Align: "right"},
		},
		Rows: make([][]string, 0, len(rows)),
	}

	if len(rows) == 0 {
		table.Empty = &EmptyHint{
			Heading: "No sectors",
			Message: "The record set is empty.",
		}
		return table
	}

	var total int
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			row.Category,
			FormatFixed1(row.Mean),
			fmt.Sprintf("%d", row.Count),
		})
		total += row.Count
	}
	table.Footer = fmt.Sprintf("%d sectors, %s occupations", len(rows), FormatInt(total))
	return table
}

// RiskBadgeClass maps a risk tier to its badge style class. Tiers outside
// the conventional set share the medium badge.
func RiskBadgeClass(tier string) string {
	switch tier {
	case RiskVeryLow:
		return "risk-very-low"
	case RiskLow:
		return "risk-low"
	case RiskMedium:
		return "risk-medium"
	case RiskHigh:
		return "risk-high"
	case RiskVeryHigh:
		return "risk-very-high"
	default:
		return "risk-medium"
	}
}
