package engine

import (
	"strings"
)

// ============================================================================
// EXPORT — Current view as a quoted CSV document
// ============================================================================
// Every field is quoted, embedded quotes doubled, rows joined by "\n" with
// no trailing newline. encoding/csv only quotes when it must, so the
// writer is done by hand.
// ============================================================================

// ExportHeader is the fixed header row of ExportCSV.
var ExportHeader = []string{"Job", "Sector", "WARI Score", "2030 Decline (%)", "Risk Level", "Notes"}

// ExportCSV serializes records (normally the filtered and sorted view) to
// CSV. Scores use FormatFixed1.
func ExportCSV(records []Record) string {
	var b strings.Builder
	writeQuotedRow(&b, ExportHeader)
	for _, r := range records {
		b.WriteByte('\n')
		writeQuotedRow(&b, []string{
			r.Title,
			r.Category,
			FormatFixed1(r.Score),
			FormatFixed1(r.ShortTermImpact),
			r.RiskTier,
			r.Notes,
		})
	}
	return b.String()
}

// ExportView is ExportCSV over a View.
func ExportView(view View) string {
	return ExportCSV(view.Records())
}

func writeQuotedRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}
