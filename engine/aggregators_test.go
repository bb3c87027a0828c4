package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// AGGREGATION TESTS
// ============================================================================

func TestAggregateExample(t *testing.T) {
	records := []Record{
		{Title: "A", Category: "X", Score: 10},
		{Title: "B", Category: "X", Score: 20},
		{Title: "C", Category: "Y", Score: 5},
	}

	got := Aggregate(records)
	assert.Equal(t, []SectorRow{
		{Category: "X", Mean: 15, Count: 2},
		{Category: "Y", Mean: 5, Count: 1},
	}, got)
}

func TestAggregateRowCountsMatchRecordSet(t *testing.T) {
	records := sampleRecords()
	rows := Aggregate(records)

	assert.Len(t, rows, len(Categories(records)))

	var total int
	for _, row := range rows {
		total += row.Count
	}
	assert.Equal(t, len(records), total)

	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].Mean, rows[i].Mean)
	}
}

func TestAggregateIsCaseSensitive(t *testing.T) {
	rows := Aggregate([]Record{
		{Category: "Health", Score: 10},
		{Category: "health", Score: 30},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "health", rows[0].Category)
}

func TestAggregateTiesKeepFirstSeenOrder(t *testing.T) {
	rows := Aggregate([]Record{
		{Category: "B", Score: 40},
		{Category: "A", Score: 40},
		{Category: "C", Score: 90},
	})
	assert.Equal(t, []string{"C", "B", "A"}, []string{rows[0].Category, rows[1].Category, rows[2].Category})
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}

func TestCategoriesSortedDistinct(t *testing.T) {
	assert.Equal(t, []string{
		"Education",
		"Finance & Business Services",
		"Healthcare & Social",
		"Technology & Engineering",
	}, Categories(sampleRecords()))
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords())
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 4, s.Sectors)
	assert.Equal(t, 38.9, s.MinScore)
	assert.Equal(t, 74.2, s.MaxScore)

	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestFormatFixed1Rounding(t *testing.T) {
	for _, tc := range []struct {
		in   float64
		want string
	}{
		{1.25, "1.3"},
		{1.24, "1.2"},
		{1.35, "1.4"},
		{-1.25, "-1.3"},
		{0.05, "0.1"},
		{-0.04, "0.0"},
		{74.2, "74.2"},
		{0, "0.0"},
		{100, "100.0"},
	} {
		assert.Equal(t, tc.want, FormatFixed1(tc.in), "FormatFixed1(%v)", tc.in)
	}
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", FormatInt(0))
	assert.Equal(t, "999", FormatInt(999))
	assert.Equal(t, "1,000", FormatInt(1000))
	assert.Equal(t, "-12,345,678", FormatInt(-12345678))
}

func TestDeriveRiskTier(t *testing.T) {
	assert.Equal(t, RiskVeryLow, DeriveRiskTier(34.9))
	assert.Equal(t, RiskLow, DeriveRiskTier(35))
	assert.Equal(t, RiskMedium, DeriveRiskTier(45))
	assert.Equal(t, RiskHigh, DeriveRiskTier(60))
	assert.Equal(t, RiskVeryHigh, DeriveRiskTier(70))
}
