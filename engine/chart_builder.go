package engine

import (
	"fmt"
)

// ============================================================================
// CHART BUILDER — Produces the sector ChartConfig from aggregate rows
// ============================================================================

// Default color palette for chart bars.
var defaultColors = []string{
	"#1FB8CD", "#FFC185", "#B4413C", "#ECEBD5",
	"#5D878F", "#DB4545", "#D2BA4C", "#964325",
}

// SectorChartYMax is the fixed upper bound of the sector chart's value axis.
const SectorChartYMax = 80

// BuildSectorChart produces a bar chart of average WARI per sector.
// Returns nil when there are no rows.
func BuildSectorChart(rows []SectorRow) *ChartConfig {
	if len(rows) == 0 {
		return nil
	}

	points := make([]ChartPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, ChartPoint{
			Label: row.Category,
			Key:   row.Category,
			Value: RoundTo(row.Mean, 2),
			Tooltip: []string{
				fmt.Sprintf("Average WARI: %s", FormatFixed1(row.Mean)),
				fmt.Sprintf("Occupations: %d", row.Count),
			},
		})
	}

	return &ChartConfig{
		ChartType:  "bar",
		Title:      "Average WARI Score by Sector",
		XAxis:      "Sector",
		YAxis:      "Average WARI Score",
		YMax:       SectorChartYMax,
		ShowLegend: false,
		ShowGrid:   true,
		Series: []ChartSeries{{
			Name: "Average WARI Score",
			Data: points,
		}},
		Colors: assignColors(len(points)),
	}
}

func assignColors(count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = defaultColors[i%len(defaultColors)]
	}
	return colors
}
