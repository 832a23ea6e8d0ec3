package schema

// CheckResult holds the results of a program-readiness check.
type CheckResult struct {
	Passed         bool                      `json:"passed"`
	Violations     []CheckViolation          `json:"violations"`
	TotalPeople    int                       `json:"total_people"`
	TotalFailures  int                       `json:"total_failures"`
	CheckedKeys    []ComponentKey            `json:"checked_keys"`
	Thresholds     map[ComponentKey]float64  `json:"thresholds"`
	MinScores      map[ComponentKey]float64  `json:"min_scores"`
	MinScorePeople map[ComponentKey][]string `json:"min_score_people"`
	AvgScores      map[ComponentKey]float64  `json:"avg_scores"` // Average over people where the key was computed
}

// CheckViolation represents a person below a readiness threshold.
type CheckViolation struct {
	PersonID     string       `json:"person_id"`
	DepartmentID string       `json:"department_id"`
	Key          ComponentKey `json:"key"`
	Score        float64      `json:"score"`
	Threshold    float64      `json:"threshold"`
}
