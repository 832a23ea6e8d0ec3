package algo

import (
	"math"

	"github.com/huangsam/readiness/schema"
)

// Behavioral term weights before renormalization.
const (
	completionWeight     = 0.20
	assessmentWeight     = 0.20
	goalCompletionWeight = 0.15
	performanceWeight    = 0.25
	certificationWeight  = 0.05
	personalityWeight    = 0.10
	cognitiveWeight      = 0.05
)

// BehavioralPredictors scores observed learning and performance outcomes.
// Only the learning record is required; personality and cognitive terms join the
// blend when their profiles are present.
func BehavioralPredictors(rec schema.LearningRecord, personality schema.Optional[schema.PersonalityProfile], cognitive schema.Optional[schema.CognitiveProfile], params Params) float64 {
	terms := []Term{
		{Name: "completion", Weight: completionWeight, Value: rec.AverageCompletion, Present: true},
		{Name: "assessment", Weight: assessmentWeight, Value: rec.AverageAssessmentScore, Present: true},
		{Name: "goal_completion", Weight: goalCompletionWeight, Value: rec.GoalCompletionRate, Present: true},
		{Name: "performance", Weight: performanceWeight, Value: normalizedRating(rec.PerformanceRating, params), Present: true},
	}

	if rec.CertificationsRequired > 0 {
		progress := math.Min(1, float64(rec.CertificationsEarned)/float64(rec.CertificationsRequired)) * 100
		terms = append(terms, Term{Name: "certification", Weight: certificationWeight, Value: progress, Present: true})
	}
	if p, ok := personality.Get(); ok {
		terms = append(terms, Term{Name: "personality", Weight: personalityWeight, Value: p.DerivedMean(), Present: true})
	}
	if c, ok := cognitive.Get(); ok {
		v := mean(c.Cognitive.Persistence, c.Cognitive.DecisionQuality, c.Cognitive.AdaptabilityIndex)
		terms = append(terms, Term{Name: "cognitive", Weight: cognitiveWeight, Value: v, Present: true})
	}

	base, _, _ := Blend(terms)
	return clampScore(base + HighPerformerBonus(rec.PerformanceRating, params))
}

// HighPerformerBonus rewards ratings above the high-performer threshold.
func HighPerformerBonus(rating float64, params Params) float64 {
	if rating <= params.HighPerformerThreshold {
		return 0
	}
	return math.Min(params.HighPerformerCap, (rating-params.HighPerformerThreshold)*params.HighPerformerRate)
}

// normalizedRating maps a rating on the configured scale to [0, 100].
func normalizedRating(rating float64, params Params) float64 {
	if params.RatingScale <= 0 {
		return 0
	}
	return clampScore(rating / params.RatingScale * 100)
}
