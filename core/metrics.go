package core

import (
	"fmt"

	"github.com/huangsam/readiness/core/algo"
	"github.com/huangsam/readiness/schema"
)

// BuildMetricsModel describes the components, formulas and tuning in use.
func BuildMetricsModel(params algo.Params) schema.MetricsRenderModel {
	w := params.Weights
	return schema.MetricsRenderModel{
		Title:       "Readiness Scoring Components",
		Description: "Each component is computed only when its profile is present. Behavioral is always computed from the learning record.",
		Components: []schema.MetricsComponent{
			{
				Name:    string(schema.PersonalityComponent),
				Purpose: "Fit between Big Five traits and the demands of the person's role.",
				Factors: []string{"openness", "conscientiousness", "extraversion", "agreeableness", "stability", "derived bonus"},
				Weight:  w[schema.PersonalityComponent],
				Formula: fmt.Sprintf("role-weighted traits + emphasis * min(%.1f, (derived - %.0f) * %.2f); unknown role = %.0f",
					params.DerivedBonusCap, params.DerivedWatermark, params.DerivedBonusRate, params.DefaultRoleScore),
			},
			{
				Name:    string(schema.CognitiveComponent),
				Purpose: "Observed problem solving and learning behavior during gamified sessions.",
				Factors: []string{"cognitive", "behavioral", "preferences", "completion", "engagement factor"},
				Weight:  w[schema.CognitiveComponent],
				Terms:   map[string]float64{"cognitive": 0.45, "behavioral": 0.25, "preferences": 0.15, "completion": 0.15},
				Formula: fmt.Sprintf("blend * [%.2f..%.2f] by days since last played (window %.0fd, half-life %.0fd)",
					params.EngagementMin, params.EngagementMax, params.CognitiveRecency.Window, params.CognitiveRecency.Scale),
			},
			{
				Name:    string(schema.MotivationalComponent),
				Purpose: "Goal alignment, motivation and engagement outlook from the vision board.",
				Factors: []string{"goals", "motivation", "engagement", "recency bonus"},
				Weight:  w[schema.MotivationalComponent],
				Terms:   map[string]float64{"goals": 0.30, "motivation": 0.35, "engagement": 0.35},
				Formula: fmt.Sprintf("min(100, blend + %.1f * recency) with recency flat for %.0fd then linear to 0 over %.0fd",
					params.MotivationalBonus, params.MotivationalRecency.Window, params.MotivationalRecency.Scale),
			},
			{
				Name:    string(schema.BehavioralComponent),
				Purpose: "Track record from learning and performance data, enriched when profiles exist.",
				Factors: []string{"completion", "assessment", "goal_completion", "performance", "certification", "personality", "cognitive"},
				Weight:  w[schema.BehavioralComponent],
				Terms: map[string]float64{
					"completion": 0.20, "assessment": 0.20, "goal_completion": 0.15, "performance": 0.25,
					"certification": 0.05, "personality": 0.10, "cognitive": 0.05,
				},
				Formula: fmt.Sprintf("renormalized blend of present terms + min(%.1f, (rating - %.1f) * %.0f)",
					params.HighPerformerCap, params.HighPerformerThreshold, params.HighPerformerRate),
			},
		},
		Aggregation: map[string]string{
			"overall":      "weighted mean of computed components, weights renormalized over what is present",
			"completeness": "(1 + enrichment profiles present) / 4",
			"confidence":   "100 * (0.3 + 0.7 * completeness) * (1 - 0.4 * stddev(components) / 50)",
			"rollup":       "arithmetic means over scored people; component means only over people where computed",
		},
		Tuning: params.Tuning(),
	}
}
