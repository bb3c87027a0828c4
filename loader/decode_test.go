package loader

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spektr-org/wari/engine"
	"github.com/spektr-org/wari/schema"
)

func TestDecodeRecordsPath(t *testing.T) {
	doc := []byte(`{"meta": {"version": 2}, "occupations": [{"job": "A", "wari": 1}, {"job": "B", "wari": 2}]}`)

	for _, path := range []string{"$.occupations[*]", "$.occupations"} {
		records, err := Decode(doc, path, false)
		require.NoError(t, err, path)
		assert.Equal(t, []string{"A", "B"}, []string{records[0].Title, records[1].Title}, path)
	}

	_, err := Decode(doc, "$.missing[*]", false)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, KindShape, le.Kind)
}

func TestDecodeRootMustBeArray(t *testing.T) {
	_, err := Decode([]byte(`"hello"`), "", false)
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, KindShape, le.Kind)
	assert.Contains(t, err.Error(), "a string")

	records, err := Decode([]byte(`[]`), "", false)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeNonObjectElementsBecomeDefaults(t *testing.T) {
	records, err := Decode([]byte(`[42, null, "x"]`), "", false)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, r := range records {
		assert.Equal(t, engine.Record{RiskTier: engine.RiskUnknown}, r)
	}
}

func TestNormalizeCoercion(t *testing.T) {
	sch := schema.Occupations()

	rec := Normalize(map[string]any{
		"job":          "Analyst",
		"sector":       nil,
		"wari":         "12.5abc",
		"alpha":        true,
		"decline_2030": "  7e1%",
		"decline_2040": "abc",
		"risk_level":   "",
		"notes":        int64(5),
		"salary":       90000,
	}, sch, false)

	assert.Equal(t, engine.Record{
		Title:           "Analyst",
		Category:        "",
		Score:           12.5,
		SecondaryScore:  0,
		ShortTermImpact: 70,
		LongTermImpact:  0,
		RiskTier:        engine.RiskUnknown,
		Notes:           "5",
	}, rec)
}

func TestNormalizeNonFiniteBecomesZero(t *testing.T) {
	sch := schema.Occupations()
	rec := Normalize(map[string]any{
		"wari":         "Infinity",
		"alpha":        math.Inf(-1),
		"decline_2030": math.NaN(),
		"decline_2040": "1e999",
	}, sch, false)

	assert.Zero(t, rec.Score)
	assert.Zero(t, rec.SecondaryScore)
	assert.Zero(t, rec.ShortTermImpact)
	assert.Zero(t, rec.LongTermImpact)
}

func TestNormalizeAliasesAndDerivedRisk(t *testing.T) {
	sch := schema.Occupations()

	rec := Normalize(map[string]any{"Job": "Cashier", "ASRI": 71.3}, sch, true)
	assert.Equal(t, "Cashier", rec.Title)
	assert.Equal(t, 71.3, rec.Score)
	assert.Equal(t, engine.RiskVeryHigh, rec.RiskTier)

	rec = Normalize(map[string]any{"wari": 10.0, "asri": 90.0}, sch, false)
	assert.Equal(t, 10.0, rec.Score, "canonical key wins over alias")
	assert.Equal(t, engine.RiskUnknown, rec.RiskTier)

	rec = Normalize(map[string]any{"wari": 10.0, "risk_level": "Custom"}, sch, true)
	assert.Equal(t, "Custom", rec.RiskTier, "explicit tier is kept")
}

func TestParseFloatPrefix(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"  -3.5kg", -3.5},
		{".5", 0.5},
		{"1.", 1},
		{"2e3x", 2000},
		{"1e", 1},
		{"+7", 7},
	} {
		assert.Equal(t, tc.want, ParseFloatPrefix(tc.in), tc.in)
	}

	assert.True(t, math.IsNaN(ParseFloatPrefix("abc")))
	assert.True(t, math.IsNaN(ParseFloatPrefix("")))
	assert.True(t, math.IsInf(ParseFloatPrefix("-Infinity"), -1))
}

func TestParseCSVDerivesRiskAndRounds(t *testing.T) {
	data := []byte("Job,Sector,WARI,Alpha,Demand_Decline_2030,Demand_Decline_2040,Notes\n" +
		"Translator,Media,34.96,0.34961,8.94,31.25,\n" +
		"Baker,Food,44.99,0.45,11,39,Artisanal demand\n")

	records, err := ParseCSV(data, schema.Occupations())
	require.NoError(t, err)
	require.Len(t, records, 2)

	// 34.96 rounds to 35.0 but the tier comes from the raw score.
	assert.Equal(t, 35.0, records[0].Score)
	assert.Equal(t, engine.RiskVeryLow, records[0].RiskTier)
	assert.Equal(t, 0.35, records[0].SecondaryScore)
	assert.Equal(t, 8.9, records[0].ShortTermImpact)
	assert.Equal(t, engine.RiskLow, records[1].RiskTier)
}

func TestParseCSVReadsExportedFile(t *testing.T) {
	exported := engine.ExportCSV(SampleRecords())

	records, err := ParseCSV([]byte(exported), schema.Occupations())
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "Registered Nurse", records[2].Title)
	assert.Equal(t, engine.RiskLow, records[2].RiskTier)
	assert.Equal(t, 10.1, records[2].ShortTermImpact)
}

func TestParseCSVLogsSkippedRows(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	data := []byte("Job,Sector,WARI\n" +
		"Clerk,Finance,74.2\n" +
		"Bad \"Job,Tech,50\n" +
		"Nurse,Health,38.9\n")

	records, err := ParseCSV(data, schema.Occupations(), WithLogger(zap.New(core)))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Nurse", records[1].Title)

	entries := logs.FilterMessage("skipped malformed CSV rows").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["skipped"])
	assert.Equal(t, int64(2), entries[0].ContextMap()["parsed"])
}

func TestParseCSVCleanInputLogsNothing(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	_, err := ParseCSV([]byte("Job,WARI\nA,1\n"), schema.Occupations(), WithLogger(zap.New(core)))
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}

func TestParseCSVRequiresScoreColumn(t *testing.T) {
	_, err := ParseCSV([]byte("Job,Sector\nA,B\n"), schema.Occupations())
	assert.Error(t, err)

	_, err = ParseCSV(nil, schema.Occupations())
	assert.Error(t, err)
}
