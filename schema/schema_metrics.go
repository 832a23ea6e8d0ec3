package schema

// MetricsComponent describes a readiness component for display purposes.
type MetricsComponent struct {
	Name    string             `json:"name"`
	Purpose string             `json:"purpose"`
	Factors []string           `json:"factors"`
	Weight  float64            `json:"weight"`
	Terms   map[string]float64 `json:"terms,omitempty"`
	Formula string             `json:"formula"`
}

// MetricsRenderModel contains all processed data needed for displaying scoring definitions.
type MetricsRenderModel struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Components  []MetricsComponent `json:"components"`
	Aggregation map[string]string  `json:"aggregation"`
	Tuning      map[string]float64 `json:"tuning"`
}
