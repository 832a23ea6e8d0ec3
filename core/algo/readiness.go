package algo

import (
	"time"

	"github.com/huangsam/readiness/schema"
)

// ScorePerson runs every applicable component scorer for one person and
// combines them into a ReadinessResult. asOf anchors all recency calculations.
func ScorePerson(data schema.PsychometricUserData, asOf time.Time, params Params) schema.ReadinessResult {
	rec := data.Record
	result := schema.ReadinessResult{
		PersonID:     rec.PersonID,
		Name:         rec.Name,
		DepartmentID: rec.DepartmentID,
		Role:         rec.Role,
	}

	if p, ok := data.Personality.Get(); ok {
		result.Components.Personality = schema.Computed(PersonalityAlignment(p, rec.Role, params))
	}
	if c, ok := data.Cognitive.Get(); ok {
		result.Components.Cognitive = schema.Computed(CognitiveReadiness(c, asOf, params))
	}
	if v, ok := data.VisionBoard.Get(); ok {
		result.Components.Motivational = schema.Computed(MotivationalAlignment(v, asOf, params))
	}
	result.Components.Behavioral = schema.Computed(BehavioralPredictors(rec, data.Personality, data.Cognitive, params))

	result.OverallScore, result.Breakdown = Overall(result.Components, params.Weights)
	result.DataCompleteness = Completeness(data)
	result.PredictiveConfidence = Confidence(result.DataCompleteness, result.Components)
	result.Insights, result.Recommendations = Evaluate(DefaultRules, RuleContext{
		Data:   data,
		Result: result,
		AsOf:   asOf,
		Params: params,
	})

	return result
}

// Overall blends the computed components using weights renormalized over
// the components that are present. The breakdown holds each component's
// weighted contribution to the overall score. When no computed component
// carries weight, a computed behavioral score stands in as the overall score.
func Overall(c schema.ComponentScores, weights map[schema.ComponentKey]float64) (float64, map[schema.ComponentKey]float64) {
	terms := make([]Term, len(schema.AllComponents))
	for i, key := range schema.AllComponents {
		s := c.Get(key)
		terms[i] = Term{Name: string(key), Weight: weights[key], Value: s.Value, Present: s.Computed}
	}
	score, contributions, ok := Blend(terms)
	breakdown := make(map[schema.ComponentKey]float64, len(terms))
	if !ok {
		if c.Behavioral.Computed {
			breakdown[schema.BehavioralComponent] = c.Behavioral.Value
			return clampScore(c.Behavioral.Value), breakdown
		}
		return 0, breakdown
	}
	for i, key := range schema.AllComponents {
		if terms[i].Present && terms[i].Weight > 0 {
			breakdown[key] = contributions[i]
		}
	}
	return clampScore(score), breakdown
}

// Completeness is the fraction of the four data sources present.
// The learning record always counts, so the result is one of 0.25, 0.5, 0.75 or 1.
func Completeness(data schema.PsychometricUserData) float64 {
	return float64(1+data.EnrichmentCount()) / 4
}
