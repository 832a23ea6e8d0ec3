package algo

import (
	"math"
	"time"

	"github.com/huangsam/readiness/schema"
)

// MotivationalAlignment scores a vision board from goal alignment, motivation and
// engagement predictors, plus a bonus for recent updates.
func MotivationalAlignment(v schema.VisionBoard, asOf time.Time, params Params) float64 {
	breadth := 0.0
	if params.GoalBreadthTarget > 0 {
		breadth = math.Min(1, float64(v.Goals.TotalGoals())/params.GoalBreadthTarget) * 100
	}
	goals := mean(breadth, v.Goals.AlignmentWithOrgVision, v.Goals.GoalSpecificity, v.Goals.TimelineRealism)

	e := v.Engagement
	engagement := mean(e.LikelyEngagement, 100-e.RetentionRisk, e.PromotionReadiness, e.LearningVelocity, e.LeadershipAspiration)

	base, _, _ := Blend([]Term{
		{Name: "goals", Weight: 0.30, Value: goals, Present: true},
		{Name: "motivation", Weight: 0.35, Value: v.Motivation.Mean(), Present: true},
		{Name: "engagement", Weight: 0.35, Value: engagement, Present: true},
	})

	return clampScore(base + RecencyBonus(v, asOf, params))
}

// RecencyBonus is the motivational bonus for a recently touched vision board.
// A board without timestamps earns nothing.
func RecencyBonus(v schema.VisionBoard, asOf time.Time, params Params) float64 {
	touched := v.LastTouched()
	if touched.IsZero() {
		return 0
	}
	return params.MotivationalBonus * params.MotivationalRecency.At(DaysSince(asOf, touched))
}
