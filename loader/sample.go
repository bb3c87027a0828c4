package loader

import (
	"github.com/spektr-org/wari/engine"
)

// SampleRecords returns the embedded fallback collection used when the
// configured source cannot be loaded. Each call returns a fresh slice.
func SampleRecords() []engine.Record {
	return []engine.Record{
		{
			Title: "Data Entry Clerk", Category: "Finance & Business Services",
			Score: 74.2, SecondaryScore: 0.74, ShortTermImpact: 19.3, LongTermImpact: 68.4,
			RiskTier: engine.RiskVeryHigh, Notes: "Near-complete automation expected by 2030",
		},
		{
			Title: "Software Developer", Category: "Technology & Engineering",
			Score: 59.4, SecondaryScore: 0.59, ShortTermImpact: 15.4, LongTermImpact: 54.7,
			RiskTier: engine.RiskMedium, Notes: "AI coding assistants enhancing productivity; core logic remains human",
		},
		{
			Title: "Registered Nurse", Category: "Healthcare & Social",
			Score: 38.9, SecondaryScore: 0.39, ShortTermImpact: 10.1, LongTermImpact: 35.8,
			RiskTier: engine.RiskLow, Notes: "Patient care coordination and emotional support remain human-centered",
		},
		{
			Title: "Primary School Teacher", Category: "Education",
			Score: 41.5, SecondaryScore: 0.42, ShortTermImpact: 10.8, LongTermImpact: 38.2,
			RiskTier: engine.RiskLow, Notes: "AI tutoring supplements but cannot replace human mentorship",
		},
	}
}
