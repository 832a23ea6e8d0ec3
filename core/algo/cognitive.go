package algo

import (
	"time"

	"github.com/huangsam/readiness/schema"
)

// complexityScores maps a complexity preference to its compatibility score.
var complexityScores = map[schema.ComplexityPreference]float64{
	schema.HighComplexity:   85,
	schema.MediumComplexity: 70,
	schema.LowComplexity:    55,
}

// CognitiveReadiness scores gamified cognitive telemetry, scaled by how recently
// the person played.
func CognitiveReadiness(c schema.CognitiveProfile, asOf time.Time, params Params) float64 {
	base, _, _ := Blend([]Term{
		{Name: "cognitive", Weight: 0.45, Value: c.Cognitive.Mean(), Present: true},
		{Name: "behavioral", Weight: 0.25, Value: c.Behavioral.Mean(), Present: true},
		{Name: "preferences", Weight: 0.15, Value: preferenceCompatibility(c.Preferences), Present: true},
		{Name: "completion", Weight: 0.15, Value: c.Sessions.CompletionRate, Present: true},
	})
	return clampScore(base * EngagementFactor(c.Sessions.LastPlayed, asOf, params))
}

// EngagementFactor interpolates between EngagementMin and EngagementMax
// using the cognitive recency curve.
func EngagementFactor(lastPlayed, asOf time.Time, params Params) float64 {
	f := params.CognitiveRecency.At(DaysSince(asOf, lastPlayed))
	return params.EngagementMin + (params.EngagementMax-params.EngagementMin)*f
}

// preferenceCompatibility blends the complexity preference with the other preferences.
// An unrecognized complexity preference counts as medium.
func preferenceCompatibility(p schema.LearningPreferences) float64 {
	cs, ok := complexityScores[p.ComplexityPreference]
	if !ok {
		cs = complexityScores[schema.MediumComplexity]
	}
	return 0.5*cs + 0.5*mean(p.FeedbackSensitivity, p.AutonomyPreference, p.SocialLearningPreference)
}
