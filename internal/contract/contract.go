// Package contract provides interfaces and shared utilities for the readiness CLI's internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/readiness/schema"
)

// RunStore defines the operations for tracking scoring runs and the scores they produced.
// This allows the core orchestration to be tested without a database.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalPeople, totalFailures int) error

	// RecordPersonScores stores the per-person results of a run
	RecordPersonScores(runID int64, records []schema.PersonScoreRecord) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.StoreStatus, error)

	// GetAllRuns retrieves every recorded run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllPersonScores retrieves every recorded person score
	GetAllPersonScores() ([]schema.PersonScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}
