package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/spektr-org/wari/engine"
)

// renderTableData writes an engine table as a terminal table or markdown.
// Badge columns are coloured in table mode only.
func renderTableData(w io.Writer, data *engine.TableData, format string) {
	if data.Empty != nil {
		_, _ = fmt.Fprintln(w, titleStyle.Render(data.Empty.Heading))
		_, _ = fmt.Fprintln(w, mutedStyle.Render(data.Empty.Message))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(data.Columns))
	configs := make([]table.ColumnConfig, len(data.Columns))
	for i, col := range data.Columns {
		header[i] = col.Label
		configs[i] = table.ColumnConfig{Number: i + 1, Align: alignment(col.Align)}
	}
	t.AppendHeader(header)
	t.SetColumnConfigs(configs)

	markdown := format == "markdown" || format == "md"
	for _, cells := range data.Rows {
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			if !markdown && i < len(data.Columns) && data.Columns[i].Type == "badge" {
				row[i] = renderBadge(cell)
				continue
			}
			row[i] = cell
		}
		t.AppendRow(row)
	}

	if markdown {
		t.RenderMarkdown()
		if data.Footer != "" {
			_, _ = fmt.Fprintf(w, "\n_%s_\n", data.Footer)
		}
		return
	}

	t.Render()
	if data.Footer != "" {
		_, _ = fmt.Fprintln(w, mutedStyle.Render(data.Footer))
	}
}

func alignment(a string) text.Align {
	switch a {
	case "right":
		return text.AlignRight
	case "center":
		return text.AlignCenter
	default:
		return text.AlignLeft
	}
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderBars draws one horizontal bar per chart point, scaled to the
// chart's YMax.
func renderBars(w io.Writer, chart *engine.ChartConfig, width int) {
	if chart == nil || len(chart.Series) == 0 {
		return
	}
	points := chart.Series[0].Data

	labelWidth := 0
	for _, p := range points {
		if n := text.RuneWidthWithoutEscSequences(p.Label); n > labelWidth {
			labelWidth = n
		}
	}

	_, _ = fmt.Fprintln(w, titleStyle.Render(chart.Title))
	for i, p := range points {
		n := 0
		if chart.YMax > 0 {
			n = int(p.Value / chart.YMax * float64(width))
		}
		n = max(0, min(n, width))
		color := ""
		if i < len(chart.Colors) {
			color = chart.Colors[i]
		}
		bar := barStyle(color).Render(strings.Repeat("█", n))
		_, _ = fmt.Fprintf(w, "%s  %s %s\n", text.Pad(p.Label, labelWidth, ' '), bar, engine.FormatFixed1(p.Value))
	}
}
