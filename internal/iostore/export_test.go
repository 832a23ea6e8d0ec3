package iostore

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRuns(t *testing.T) {
	store := newSQLiteStore(t)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(start, map[string]any{"generate": 2})
	require.NoError(t, err)
	require.NoError(t, store.RecordPersonScores(runID, sampleScores(runID, start)))
	require.NoError(t, store.EndRun(runID, start.Add(time.Second), 2, 0))

	out := filepath.Join(t.TempDir(), "export")
	var buf bytes.Buffer
	require.NoError(t, ExportRuns(&buf, store, out))

	assert.FileExists(t, out+".runs.parquet")
	assert.FileExists(t, out+".person_scores.parquet")
	assert.Contains(t, buf.String(), "Exported 1 runs to:")
	assert.Contains(t, buf.String(), "Exported 2 person scores to:")
}

func TestExportRuns_Errors(t *testing.T) {
	var buf bytes.Buffer

	err := ExportRuns(&buf, newSQLiteStore(t), "")
	assert.ErrorContains(t, err, "--output-file is required")

	err = ExportRuns(&buf, nil, "out")
	assert.ErrorContains(t, err, "run tracking is disabled")

	err = ExportRuns(&buf, newSQLiteStore(t), filepath.Join(t.TempDir(), "out"))
	assert.ErrorContains(t, err, "no recorded runs")

	failing := &contract.MockRunStore{}
	failing.On("GetStatus").Return(schema.StoreStatus{}, errors.New("boom"))
	err = ExportRuns(&buf, failing, "out")
	assert.ErrorContains(t, err, "boom")
	failing.AssertExpectations(t)
}

func TestPrintStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintStatus(&buf, schema.StoreStatus{Backend: "none"})
	assert.Equal(t, "Run Store Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	PrintStatus(&buf, schema.StoreStatus{
		Backend:           "sqlite",
		Connected:         true,
		TotalRuns:         2,
		LastRunID:         2,
		TotalPeopleScored: 40,
		TableSizes:        map[string]int64{runsTable: 2, personScoresTable: 40},
	})
	out := buf.String()
	assert.Contains(t, out, "Total Runs: 2")
	assert.Contains(t, out, "Total People Scored: 40")
	assert.Contains(t, out, "  readiness_person_scores: 40 rows")
}
