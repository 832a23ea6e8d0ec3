package schema

import "time"

// RunRecord represents a row from the readiness_runs table.
type RunRecord struct {
	RunID         int64
	RunUUID       string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalPeople   int32
	TotalFailures int32
	ConfigParams  *string
}

// PersonScoreRecord represents a row from the readiness_person_scores table.
// Component scores that were not computed are nil.
type PersonScoreRecord struct {
	RunID                int64
	PersonID             string
	DepartmentID         string
	Role                 string
	OverallScore         float64
	PersonalityScore     *float64
	CognitiveScore       *float64
	MotivationalScore    *float64
	BehavioralScore      float64
	DataCompleteness     float64
	PredictiveConfidence float64
	ReadinessLabel       string
	ScoredAt             time.Time
}

// NewPersonScoreRecord flattens a ReadinessResult into a store row.
func NewPersonScoreRecord(runID int64, r ReadinessResult, scoredAt time.Time) PersonScoreRecord {
	return PersonScoreRecord{
		RunID:                runID,
		PersonID:             r.PersonID,
		DepartmentID:         r.DepartmentID,
		Role:                 r.Role,
		OverallScore:         r.OverallScore,
		PersonalityScore:     r.Components.Personality.Ptr(),
		CognitiveScore:       r.Components.Cognitive.Ptr(),
		MotivationalScore:    r.Components.Motivational.Ptr(),
		BehavioralScore:      r.Components.Behavioral.Value,
		DataCompleteness:     r.DataCompleteness,
		PredictiveConfidence: r.PredictiveConfidence,
		ReadinessLabel:       GetPlainLabel(r.OverallScore),
		ScoredAt:             scoredAt,
	}
}
