package engine

// ── Test Data ─────────────────────────────────────────────────────────────────

func sampleRecords() []Record {
	return []Record{
		{Title: "Data Entry Clerk", Category: "Finance & Business Services", Score: 74.2, SecondaryScore: 0.74, ShortTermImpact: 19.3, LongTermImpact: 68.4, RiskTier: RiskVeryHigh, Notes: "Near-complete automation expected by 2030"},
		{Title: "Software Developer", Category: "Technology & Engineering", Score: 59.4, SecondaryScore: 0.59, ShortTermImpact: 15.4, LongTermImpact: 54.7, RiskTier: RiskMedium, Notes: "AI coding assistants enhancing productivity; core logic remains human"},
		{Title: "Registered Nurse", Category: "Healthcare & Social", Score: 38.9, SecondaryScore: 0.39, ShortTermImpact: 10.1, LongTermImpact: 35.8, RiskTier: RiskLow, Notes: "Patient care coordination and emotional support remain human-centered"},
		{Title: "Primary School Teacher", Category: "Education", Score: 41.5, SecondaryScore: 0.42, ShortTermImpact: 10.8, LongTermImpact: 38.2, RiskTier: RiskLow, Notes: "AI tutoring supplements but cannot replace human mentorship"},
		{Title: "Bookkeeper", Category: "Finance & Business Services", Score: 71.0, ShortTermImpact: 18.0, RiskTier: RiskVeryHigh},
		{Title: "Network Engineer", Category: "Technology & Engineering", Score: 48.3, ShortTermImpact: 12.0, RiskTier: RiskMedium},
	}
}

func titles(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Title
	}
	return out
}

func viewTitles(v View) []string {
	return titles(v.Records())
}

func numbered(n int) []Record {
	out := make([]Record, n)
	for i := range out {
		out[i] = Record{Title: string(rune('a' + i)), Score: float64(i)}
	}
	return out
}
