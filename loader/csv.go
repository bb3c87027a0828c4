package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/spektr-org/wari/engine"
	"github.com/spektr-org/wari/schema"
)

// ============================================================================
// CSV IMPORT — Raw research export → []engine.Record
// ============================================================================
// Accepts the occupations CSV as produced by the research pipeline
// (Job, Sector, ASRI|WARI, Alpha, Demand_Decline_2030, Demand_Decline_2040,
// Notes) as well as the file written by the export stage. Measures are
// rounded to the schema's decimals. Rows without a risk tier get one
// derived from the unrounded score.
// ============================================================================

// ParseCSV parses CSV bytes into Records using sch for column mapping.
// Unmapped columns are skipped. Rows that fail to parse are skipped and
// counted in a warning on the WithLogger logger.
func ParseCSV(data []byte, sch schema.Config, opts ...Option) ([]engine.Record, error) {
	logger := applyOptions(opts).logger
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	type colMapping struct {
		key    string
		mapped bool
	}

	mappings := make([]colMapping, len(headers))
	var hasScore bool
	for i, h := range headers {
		key, _, ok := sch.Resolve(strings.TrimPrefix(h, "\ufeff"))
		if !ok {
			continue
		}
		mappings[i] = colMapping{key: key, mapped: true}
		hasScore = hasScore || key == schema.KeyWARI
	}
	if !hasScore {
		return nil, fmt.Errorf("CSV has no score column (expected one of WARI, ASRI)")
	}

	records := []engine.Record{}
	skipped := 0
	var firstErr error
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			skipped++
			continue
		}

		values := make(map[string]any, len(row))
		for i, val := range row {
			if i >= len(mappings) || !mappings[i].mapped {
				continue
			}
			values[mappings[i].key] = strings.TrimSpace(val)
		}

		rec := Normalize(values, sch, true)
		for _, m := range sch.Measures {
			roundMeasure(&rec, m)
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		logger.Warn("skipped malformed CSV rows",
			zap.Int("skipped", skipped),
			zap.Int("parsed", len(records)),
			zap.Error(firstErr),
		)
	}
	return records, nil
}

func roundMeasure(rec *engine.Record, m schema.MeasureMeta) {
	switch m.Key {
	case schema.KeyWARI:
		rec.Score = engine.RoundTo(rec.Score, m.Decimals)
	case schema.KeyAlpha:
		rec.SecondaryScore = engine.RoundTo(rec.SecondaryScore, m.Decimals)
	case schema.KeyDecline2030:
		rec.ShortTermImpact = engine.RoundTo(rec.ShortTermImpact, m.Decimals)
	case schema.KeyDecline2040:
		rec.LongTermImpact = engine.RoundTo(rec.LongTermImpact, m.Decimals)
	}
}
