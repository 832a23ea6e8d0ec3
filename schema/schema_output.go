package schema

import (
	"encoding/json"
	"math"
)

// Readiness band labels.
const (
	ReadyLabel      = "Ready"
	DevelopingLabel = "Developing"
	EmergingLabel   = "Emerging"
	NotReadyLabel   = "Not Ready"
)

// ComponentScore is a component result that is either computed or absent.
// An absent score is encoded as JSON null, never as 0.
type ComponentScore struct {
	Value    float64
	Computed bool
}

// Computed wraps a computed component value.
func Computed(v float64) ComponentScore {
	return ComponentScore{Value: v, Computed: true}
}

// MarshalJSON encodes an absent component as null.
func (c ComponentScore) MarshalJSON() ([]byte, error) {
	if !c.Computed {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}

// UnmarshalJSON decodes null as an absent component.
func (c *ComponentScore) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = ComponentScore{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Computed(v)
	return nil
}

// ComponentScores holds the four component results for one person.
type ComponentScores struct {
	Personality  ComponentScore `json:"personality"`
	Cognitive    ComponentScore `json:"cognitive"`
	Motivational ComponentScore `json:"motivational"`
	Behavioral   ComponentScore `json:"behavioral"`
}

// Get returns the score for a component key.
func (c ComponentScores) Get(key ComponentKey) ComponentScore {
	switch key {
	case PersonalityComponent:
		return c.Personality
	case CognitiveComponent:
		return c.Cognitive
	case MotivationalComponent:
		return c.Motivational
	case BehavioralComponent:
		return c.Behavioral
	default:
		return ComponentScore{}
	}
}

// AsMap returns the computed components keyed by component.
func (c ComponentScores) AsMap() map[ComponentKey]float64 {
	out := make(map[ComponentKey]float64, len(AllComponents))
	for _, key := range AllComponents {
		if s := c.Get(key); s.Computed {
			out[key] = s.Value
		}
	}
	return out
}

// ReadinessResult is the scored outcome for one person.
type ReadinessResult struct {
	PersonID             string                   `json:"person_id"`
	Name                 string                   `json:"name,omitempty"`
	DepartmentID         string                   `json:"department_id"`
	Role                 string                   `json:"role"`
	OverallScore         float64                  `json:"overall_score"`
	Components           ComponentScores          `json:"components"`
	DataCompleteness     float64                  `json:"data_completeness"`
	PredictiveConfidence float64                  `json:"predictive_confidence"`
	Insights             []string                 `json:"insights"`
	Recommendations      []string                 `json:"recommendations"`
	Breakdown            map[ComponentKey]float64 `json:"breakdown,omitempty"` // Weighted contribution per component
}

// EnrichedReadinessResult adds presentation data to a ReadinessResult.
type EnrichedReadinessResult struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	ReadinessResult
}

// GetPlainLabel returns the readiness band for a score.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return ReadyLabel
	case score >= 60:
		return DevelopingLabel
	case score >= 40:
		return EmergingLabel
	default:
		return NotReadyLabel
	}
}

// EnrichPeople adds rank and label to a list of person results.
func EnrichPeople(results []ReadinessResult) []EnrichedReadinessResult {
	output := make([]EnrichedReadinessResult, len(results))
	for i, r := range results {
		output[i] = EnrichedReadinessResult{
			Rank:            i + 1,
			Label:           GetPlainLabel(r.OverallScore),
			ReadinessResult: r,
		}
	}
	return output
}

// EnrichedRollup adds presentation data to a RollupResult.
type EnrichedRollup struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	RollupResult
}

// EnrichRollups adds rank and label to a list of department rollups.
func EnrichRollups(rollups []RollupResult) []EnrichedRollup {
	output := make([]EnrichedRollup, len(rollups))
	for i, r := range rollups {
		output[i] = EnrichedRollup{
			Rank:         i + 1,
			Label:        GetPlainLabel(r.OverallScore),
			RollupResult: r,
		}
	}
	return output
}

// Round rounds v to the given number of decimal places.
func Round(v float64, precision int) float64 {
	p := math.Pow10(precision)
	return math.Round(v*p) / p
}

// Ptr returns the value as a pointer, or nil when not computed.
func (c ComponentScore) Ptr() *float64 {
	if !c.Computed {
		return nil
	}
	v := c.Value
	return &v
}
