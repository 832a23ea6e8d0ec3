// Package parquet provides data structures and functions for exporting readiness
// runs and person scores to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/readiness/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single scoring run with metadata.
// This struct maps to the readiness_runs database table.
type Run struct {
	// RunID is the store identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique identifier for this run
	RunUUID string `parquet:"run_uuid,snappy"`

	// StartTime is when scoring began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when scoring completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	TotalPeople   int32 `parquet:"total_people,snappy"`
	TotalFailures int32 `parquet:"total_failures,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// PersonScore is one scored person in a run.
// This struct maps to the readiness_person_scores database table.
// Components that were not computed are null, never 0.
type PersonScore struct {
	RunID        int64  `parquet:"run_id,snappy"`
	PersonID     string `parquet:"person_id,snappy"`
	DepartmentID string `parquet:"department_id,snappy"`
	Role         string `parquet:"role,snappy"`

	OverallScore      float64  `parquet:"overall_score,snappy"`
	PersonalityScore  *float64 `parquet:"personality_score,optional,snappy"`
	CognitiveScore    *float64 `parquet:"cognitive_score,optional,snappy"`
	MotivationalScore *float64 `parquet:"motivational_score,optional,snappy"`
	BehavioralScore   float64  `parquet:"behavioral_score,snappy"`

	// DataCompleteness is the share of enrichment profiles present (0.25 to 1.0)
	DataCompleteness     float64 `parquet:"data_completeness,snappy"`
	PredictiveConfidence float64 `parquet:"predictive_confidence,snappy"`

	ReadinessLabel string    `parquet:"readiness_label,snappy"`
	ScoredAt       time.Time `parquet:"scored_at,snappy"`
}

// Write encodes rows of any Parquet-tagged struct to w.
func Write[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeFile creates outputPath and writes data to it.
func writeFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return Write(file, data)
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeFile(data, outputPath)
}

// WritePersonScoresParquet writes a slice of PersonScore structs to a Parquet file.
func WritePersonScoresParquet(data []PersonScore, outputPath string) error {
	return writeFile(data, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			RunUUID:       record.RunUUID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalPeople:   record.TotalPeople,
			TotalFailures: record.TotalFailures,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertPersonScoreRecords converts schema.PersonScoreRecord to PersonScore for Parquet export.
func ConvertPersonScoreRecords(records []schema.PersonScoreRecord) []PersonScore {
	result := make([]PersonScore, len(records))
	for i, record := range records {
		result[i] = PersonScore{
			RunID:                record.RunID,
			PersonID:             record.PersonID,
			DepartmentID:         record.DepartmentID,
			Role:                 record.Role,
			OverallScore:         record.OverallScore,
			PersonalityScore:     record.PersonalityScore,
			CognitiveScore:       record.CognitiveScore,
			MotivationalScore:    record.MotivationalScore,
			BehavioralScore:      record.BehavioralScore,
			DataCompleteness:     record.DataCompleteness,
			PredictiveConfidence: record.PredictiveConfidence,
			ReadinessLabel:       record.ReadinessLabel,
			ScoredAt:             record.ScoredAt,
		}
	}
	return result
}
