package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/spektr-org/wari/engine"
)

const twoRecords = `[
  {"job": "Courier", "sector": "Logistics", "wari": 52.5, "alpha": 0.5, "decline_2030": 12, "decline_2040": 40.25, "risk_level": "Medium", "notes": "Routing automated"},
  {"job": "Welder", "sector": "Manufacturing", "wari": "33.1", "risk_level": "Very Low"}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadFromFile(t *testing.T) {
	p := writeFile(t, "occupations.json", twoRecords)

	records, err := Load(context.Background(), Source{Location: p}, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, engine.Record{
		Title: "Courier", Category: "Logistics", Score: 52.5, SecondaryScore: 0.5,
		ShortTermImpact: 12, LongTermImpact: 40.25, RiskTier: engine.RiskMedium, Notes: "Routing automated",
	}, records[0])
	assert.Equal(t, 33.1, records[1].Score)
	assert.Equal(t, "", records[1].Notes)
}

func TestLoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(twoRecords))
	}))
	defer srv.Close()

	records, err := Load(context.Background(), Source{Location: srv.URL + "/data.json"}, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), Source{Location: srv.URL})
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, KindStatus, le.Kind)
	assert.Equal(t, http.StatusNotFound, le.StatusCode)
	assert.Equal(t, srv.URL, le.Location)
	assert.False(t, le.Retryable())
	assert.Contains(t, err.Error(), "404")
}

func TestLoadTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := Load(context.Background(), Source{Location: srv.URL, Timeout: 50 * time.Millisecond})
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, KindFetch, le.Kind)
	assert.True(t, le.Retryable())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), Source{Location: filepath.Join(t.TempDir(), "nope.json")})
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, KindFetch, le.Kind)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, err = Load(context.Background(), Source{})
	require.ErrorAs(t, err, &le)
	assert.Equal(t, KindFetch, le.Kind)
}

func TestLoadMalformedAndWrongShape(t *testing.T) {
	_, err := Load(context.Background(), Source{Location: writeFile(t, "bad.json", `[{"job":`)})
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, KindParse, le.Kind)
	assert.NotEmpty(t, le.Location)

	_, err = Load(context.Background(), Source{Location: writeFile(t, "obj.json", `{"job": "x"}`)})
	require.ErrorAs(t, err, &le)
	assert.Equal(t, KindShape, le.Kind)
}

func TestLoadWithFallbackReturnsSampleAndError(t *testing.T) {
	records, err := LoadWithFallback(context.Background(), Source{Location: filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)
	assert.Equal(t, SampleRecords(), records)
	assert.Len(t, records, 4)

	records, err = LoadWithFallback(context.Background(), Source{Location: writeFile(t, "ok.json", twoRecords)})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestLoadCSVLocation(t *testing.T) {
	p := writeFile(t, "occupations_asri.csv",
		"Job,Sector,ASRI,Alpha,Demand_Decline_2030,Demand_Decline_2040,Notes\n"+
			"Paralegal,Legal,66.66,0.66666,17.04,60.96,\"Drafting, review\"\n")

	records, err := Load(context.Background(), Source{Location: p})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 66.7, records[0].Score)
	assert.Equal(t, 0.667, records[0].SecondaryScore)
	assert.Equal(t, engine.RiskHigh, records[0].RiskTier)
	assert.Equal(t, "Drafting, review", records[0].Notes)
}

func TestSourceKind(t *testing.T) {
	assert.True(t, Source{Location: "https://example.com/a.json"}.IsRemote())
	assert.False(t, Source{Location: "data/a.json"}.IsRemote())
	assert.True(t, Source{Location: "https://example.com/a.CSV?x=1"}.IsCSV())
	assert.False(t, Source{Location: "a.json"}.IsCSV())
}

func TestSampleRecordsAreFresh(t *testing.T) {
	a := SampleRecords()
	a[0].Title = "changed"
	assert.Equal(t, "Data Entry Clerk", SampleRecords()[0].Title)
}
