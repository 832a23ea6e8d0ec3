package schema

import "time"

// ComponentRollup is the mean of one component over the people where it was computed.
type ComponentRollup struct {
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// RollupResult aggregates per-person results for a department or the whole organization.
// It is recomputed from person results on every call and carries no independent state.
type RollupResult struct {
	ID                 string                           `json:"id"`
	PersonCount        int                              `json:"person_count"`
	OverallScore       float64                          `json:"overall_score"`
	ReadyCount         int                              `json:"ready_count"`
	MeanCompleteness   float64                          `json:"mean_completeness"`
	MeanConfidence     float64                          `json:"mean_confidence"`
	Components         map[ComponentKey]ComponentRollup `json:"components"`
	CompletenessCounts map[string]int                   `json:"completeness_counts"`
	TopPerson          string                           `json:"top_person,omitempty"`
	TopScore           float64                          `json:"top_score"`
}

// PersonFailure is a person that could not be scored because its input was invalid.
type PersonFailure struct {
	Index    int    `json:"index"`
	PersonID string `json:"person_id"`
	Error    string `json:"error"`
}

// PopulationReport is the outcome of scoring a whole population.
type PopulationReport struct {
	AsOf         time.Time         `json:"as_of"`
	People       []ReadinessResult `json:"people"`
	Failures     []PersonFailure   `json:"failures"`
	Departments  []RollupResult    `json:"departments"`
	Organization RollupResult      `json:"organization"`
}
