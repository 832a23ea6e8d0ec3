package schema

// ComparisonDetail holds one person's before and after scores and their deltas.
type ComparisonDetail struct {
	PersonID          string                   `json:"person_id"`          // Person identifier shared by both snapshots
	DepartmentID      string                   `json:"department_id"`      // Department as of the latest snapshot
	BeforeScore       float64                  `json:"before_score"`       // Overall score from the base snapshot
	AfterScore        float64                  `json:"after_score"`        // Overall score from the target snapshot
	Delta             float64                  `json:"delta"`              // AfterScore - BeforeScore (positive means more ready)
	DeltaCompleteness float64                  `json:"delta_completeness"` // Change in data completeness
	DeltaComponents   map[ComponentKey]float64 `json:"delta_components"`   // Deltas for components computed in both snapshots
	Status            Status                   `json:"status"`             // new, active or removed
	BeforeLabel       string                   `json:"before_label"`       // Readiness band before
	AfterLabel        string                   `json:"after_label"`        // Readiness band after
}

// ComparisonSummary has high-level deltas and counts.
type ComparisonSummary struct {
	NetScoreDelta    float64 `json:"net_score_delta"`
	TotalNewPeople   int     `json:"total_new_people"`
	TotalRemoved     int     `json:"total_removed"`
	TotalImproved    int     `json:"total_improved"`
	TotalDeclined    int     `json:"total_declined"`
	TotalBandChanges int     `json:"total_band_changes"`
	BeforeOverall    float64 `json:"before_overall"`
	AfterOverall     float64 `json:"after_overall"`
}

// ComparisonResult holds the comparison details and summary.
type ComparisonResult struct {
	Details []ComparisonDetail `json:"details"`
	Summary ComparisonSummary  `json:"summary"`
}
