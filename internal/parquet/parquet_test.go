package parquet

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/readiness/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func sampleRunRecords() []schema.RunRecord {
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	duration := int32(1500)
	params := `{"as_of":"2025-06-01T00:00:00Z","workers":4}`
	return []schema.RunRecord{
		{
			RunID:         1,
			RunUUID:       "0f8e4a51-7a0c-4f47-8d4c-52b1c2d3e4f5",
			StartTime:     start,
			EndTime:       &end,
			RunDurationMs: &duration,
			TotalPeople:   120,
			TotalFailures: 3,
			ConfigParams:  &params,
		},
		{
			RunID:     2,
			RunUUID:   "6a2b3c4d-1111-4222-8333-944455556666",
			StartTime: start.Add(time.Hour),
		},
	}
}

func samplePersonScoreRecords() []schema.PersonScoreRecord {
	at := time.Date(2025, 6, 1, 9, 0, 1, 0, time.UTC)
	return []schema.PersonScoreRecord{
		{
			RunID:                1,
			PersonID:             "p-001",
			DepartmentID:         "engineering",
			Role:                 "Manager",
			OverallScore:         82.4,
			PersonalityScore:     fptr(78),
			CognitiveScore:       fptr(88.5),
			MotivationalScore:    fptr(80),
			BehavioralScore:      81.2,
			DataCompleteness:     1,
			PredictiveConfidence: 95,
			ReadinessLabel:       schema.ReadyLabel,
			ScoredAt:             at,
		},
		{
			RunID:                1,
			PersonID:             "p-002",
			DepartmentID:         "finance",
			OverallScore:         47,
			BehavioralScore:      47,
			DataCompleteness:     0.25,
			PredictiveConfidence: 47.5,
			ReadinessLabel:       schema.EmergingLabel,
			ScoredAt:             at,
		},
	}
}

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[T](file)
	defer reader.Close()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestRunStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(Run))
	require.NotNil(t, s)

	for _, colName := range []string{
		"run_id", "run_uuid", "start_time", "end_time",
		"run_duration_ms", "total_people", "total_failures", "config_params",
	} {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col)
	}
}

func TestPersonScoreStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(PersonScore))
	require.NotNil(t, s)

	expectedColumns := []string{
		"run_id",
		"person_id",
		"department_id",
		"role",
		"overall_score",
		"personality_score",
		"cognitive_score",
		"motivational_score",
		"behavioral_score",
		"data_completeness",
		"predictive_confidence",
		"readiness_label",
		"scored_at",
	}
	for _, colName := range expectedColumns {
		_, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
	}

	for _, colName := range []string{"personality_score", "cognitive_score", "motivational_score"} {
		col, _ := s.Lookup(colName)
		assert.True(t, col.Node.Optional(), "%s should be optional", colName)
	}
	col, _ := s.Lookup("behavioral_score")
	assert.False(t, col.Node.Optional(), "behavioral_score is always computed")
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := ConvertRunRecords(sampleRunRecords())

	require.NoError(t, WriteRunsParquet(data, outputPath))

	got := readAll[Run](t, outputPath)
	require.Len(t, got, len(data))

	assert.Equal(t, int64(1), got[0].RunID)
	assert.Equal(t, data[0].RunUUID, got[0].RunUUID)
	assert.Equal(t, int32(120), got[0].TotalPeople)
	assert.Equal(t, int32(3), got[0].TotalFailures)
	require.NotNil(t, got[0].EndTime)
	assert.WithinDuration(t, *data[0].EndTime, *got[0].EndTime, time.Nanosecond)
	require.NotNil(t, got[0].RunDurationMs)
	assert.Equal(t, int32(1500), *got[0].RunDurationMs)
	require.NotNil(t, got[0].ConfigParams)
	assert.Equal(t, *data[0].ConfigParams, *got[0].ConfigParams)

	// Unfinished run keeps its nullable fields empty
	assert.Nil(t, got[1].EndTime)
	assert.Nil(t, got[1].RunDurationMs)
	assert.Nil(t, got[1].ConfigParams)
	assert.WithinDuration(t, data[1].StartTime, got[1].StartTime, time.Nanosecond)
}

func TestWritePersonScoresParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "person_scores.parquet")
	data := ConvertPersonScoreRecords(samplePersonScoreRecords())

	require.NoError(t, WritePersonScoresParquet(data, outputPath))

	got := readAll[PersonScore](t, outputPath)
	require.Len(t, got, 2)

	full := got[0]
	assert.Equal(t, "p-001", full.PersonID)
	assert.Equal(t, "Manager", full.Role)
	assert.InDelta(t, 82.4, full.OverallScore, 1e-9)
	require.NotNil(t, full.PersonalityScore)
	assert.InDelta(t, 78, *full.PersonalityScore, 1e-9)
	require.NotNil(t, full.CognitiveScore)
	assert.InDelta(t, 88.5, *full.CognitiveScore, 1e-9)
	assert.Equal(t, schema.ReadyLabel, full.ReadinessLabel)

	sparse := got[1]
	assert.Nil(t, sparse.PersonalityScore, "absent components stay null")
	assert.Nil(t, sparse.CognitiveScore)
	assert.Nil(t, sparse.MotivationalScore)
	assert.InDelta(t, 47, sparse.BehavioralScore, 1e-9)
	assert.InDelta(t, 0.25, sparse.DataCompleteness, 1e-9)
	assert.WithinDuration(t, data[1].ScoredAt, sparse.ScoredAt, time.Nanosecond)
}

func TestWriteToBuffer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ConvertPersonScoreRecords(samplePersonScoreRecords())))
	assert.Equal(t, "PAR1", buf.String()[:4])
}

func TestWriteEmptyData(t *testing.T) {
	tests := []struct {
		name  string
		write func(path string) error
	}{
		{"runs", func(path string) error { return WriteRunsParquet([]Run{}, path) }},
		{"person scores", func(path string) error { return WritePersonScoresParquet([]PersonScore{}, path) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputPath := filepath.Join(t.TempDir(), "empty.parquet")
			require.NoError(t, tt.write(outputPath))

			info, err := os.Stat(outputPath)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
		})
	}
}

func TestWriteInvalidPath(t *testing.T) {
	err := WriteRunsParquet(ConvertRunRecords(sampleRunRecords()), "/nonexistent/directory/output.parquet")
	require.Error(t, err)

	err = WritePersonScoresParquet(ConvertPersonScoreRecords(samplePersonScoreRecords()), "/nonexistent/directory/output.parquet")
	require.Error(t, err)
}

func TestConvertRecordsEmpty(t *testing.T) {
	assert.Empty(t, ConvertRunRecords(nil))
	assert.Empty(t, ConvertPersonScoreRecords(nil))
}
