// Package algo has the pure scoring engine: component scorers, the per-person
// aggregator and ranking. Nothing here performs I/O or reads the clock.
package algo

import (
	"maps"

	"github.com/huangsam/readiness/schema"
)

// Params holds every tunable constant used by the scorers.
// DefaultParams returns the documented defaults; callers override any subset.
type Params struct {
	// Personality
	DefaultRoleScore float64 // Returned for roles outside the role table
	DerivedWatermark float64 // Derived characteristics above this earn a bonus
	DerivedBonusRate float64 // Bonus points per point above the watermark
	DerivedBonusCap  float64 // Max bonus per derived characteristic

	// Cognitive
	EngagementMax    float64 // Engagement factor for recent activity
	EngagementMin    float64 // Engagement factor for stale or unknown activity
	CognitiveRecency DecayCurve

	// Motivational
	GoalBreadthTarget   float64 // Goal count that earns full breadth credit
	MotivationalBonus   float64 // Max recency bonus in points
	MotivationalRecency DecayCurve

	// Behavioral
	RatingScale            float64
	HighPerformerThreshold float64 // Rating above which the bonus applies
	HighPerformerRate      float64 // Bonus points per rating point above the threshold
	HighPerformerCap       float64

	// Insights
	CognitiveStaleDays   float64
	VisionBoardStaleDays float64

	// Weights for the overall score, renormalized over computed components.
	Weights map[schema.ComponentKey]float64
}

// DefaultParams returns the default tuning.
func DefaultParams() Params {
	return Params{
		DefaultRoleScore: 75,
		DerivedWatermark: 75,
		DerivedBonusRate: 0.25,
		DerivedBonusCap:  5,

		EngagementMax: 1.05,
		EngagementMin: 0.70,
		CognitiveRecency: DecayCurve{
			Window: 7,
			Scale:  30,
			Shape:  ExponentialDecay,
		},

		GoalBreadthTarget: 10,
		MotivationalBonus: 5,
		MotivationalRecency: DecayCurve{
			Window: 14,
			Scale:  60,
			Shape:  LinearDecay,
		},

		RatingScale:            5,
		HighPerformerThreshold: 4.0,
		HighPerformerRate:      10,
		HighPerformerCap:       8,

		CognitiveStaleDays:   90,
		VisionBoardStaleDays: 180,

		Weights: schema.GetDefaultWeights(),
	}
}

// Clone returns a copy that does not share the weights map.
func (p Params) Clone() Params {
	clone := p
	if p.Weights != nil {
		clone.Weights = make(map[schema.ComponentKey]float64, len(p.Weights))
		maps.Copy(clone.Weights, p.Weights)
	}
	return clone
}

// Tuning returns the scalar parameters keyed by their config name.
func (p Params) Tuning() map[string]float64 {
	return map[string]float64{
		"default_role_score":       p.DefaultRoleScore,
		"derived_watermark":        p.DerivedWatermark,
		"derived_bonus_rate":       p.DerivedBonusRate,
		"derived_bonus_cap":        p.DerivedBonusCap,
		"engagement_max":           p.EngagementMax,
		"engagement_min":           p.EngagementMin,
		"cognitive_window_days":    p.CognitiveRecency.Window,
		"cognitive_half_life_days": p.CognitiveRecency.Scale,
		"cognitive_floor":          p.CognitiveRecency.Floor,
		"goal_breadth_target":      p.GoalBreadthTarget,
		"motivational_bonus":       p.MotivationalBonus,
		"motivational_window_days": p.MotivationalRecency.Window,
		"motivational_decay_days":  p.MotivationalRecency.Scale,
		"motivational_floor":       p.MotivationalRecency.Floor,
		"rating_scale":             p.RatingScale,
		"high_performer_threshold": p.HighPerformerThreshold,
		"high_performer_rate":      p.HighPerformerRate,
		"high_performer_cap":       p.HighPerformerCap,
		"cognitive_stale_days":     p.CognitiveStaleDays,
		"vision_board_stale_days":  p.VisionBoardStaleDays,
	}
}
