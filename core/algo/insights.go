package algo

import (
	"fmt"
	"time"

	"github.com/huangsam/readiness/schema"
)

// RuleContext is what a rule sees when it is evaluated.
type RuleContext struct {
	Data   schema.PsychometricUserData
	Result schema.ReadinessResult
	AsOf   time.Time
	Params Params
}

// Rule pairs a predicate with the insight and recommendation it produces.
// Either text func may be nil.
type Rule struct {
	Name           string
	When           func(RuleContext) bool
	Insight        func(RuleContext) string
	Recommendation func(RuleContext) string
}

// Evaluate runs rules in order and collects the text of every rule that fires.
func Evaluate(rules []Rule, rc RuleContext) (insights []string, recommendations []string) {
	insights = []string{}
	recommendations = []string{}
	for _, r := range rules {
		if r.When == nil || !r.When(rc) {
			continue
		}
		if r.Insight != nil {
			insights = append(insights, r.Insight(rc))
		}
		if r.Recommendation != nil {
			recommendations = append(recommendations, r.Recommendation(rc))
		}
	}
	return insights, recommendations
}

// text returns a fixed-text rule output.
func text(s string) func(RuleContext) string {
	return func(RuleContext) string { return s }
}

// DefaultRules is the ordered insight table. The three band rules cover every
// overall score, so both lists are never empty.
var DefaultRules = []Rule{
	{
		Name: "band_ready",
		When: func(rc RuleContext) bool { return rc.Result.OverallScore >= 80 },
		Insight: func(rc RuleContext) string {
			return fmt.Sprintf("High overall readiness (%.1f): strong candidate for advanced programs", rc.Result.OverallScore)
		},
		Recommendation: text("Enroll in advanced or leadership development tracks"),
	},
	{
		Name: "band_developing",
		When: func(rc RuleContext) bool { return rc.Result.OverallScore >= 60 && rc.Result.OverallScore < 80 },
		Insight: func(rc RuleContext) string {
			return fmt.Sprintf("Moderate overall readiness (%.1f) with room to grow", rc.Result.OverallScore)
		},
		Recommendation: text("Pair with a mentor and target the weakest component first"),
	},
	{
		Name: "band_foundational",
		When: func(rc RuleContext) bool { return rc.Result.OverallScore < 60 },
		Insight: func(rc RuleContext) string {
			return fmt.Sprintf("Low overall readiness (%.1f): foundational development needed", rc.Result.OverallScore)
		},
		Recommendation: text("Start with foundational courses and set short-term goals"),
	},
	{
		Name:           "missing_personality",
		When:           func(rc RuleContext) bool { return !rc.Data.Personality.Present() },
		Insight:        text("No personality assessment on file"),
		Recommendation: text("Complete a personality assessment to improve role-fit accuracy"),
	},
	{
		Name:           "missing_cognitive",
		When:           func(rc RuleContext) bool { return !rc.Data.Cognitive.Present() },
		Recommendation: text("Complete a gamified cognitive assessment"),
	},
	{
		Name:           "missing_vision_board",
		When:           func(rc RuleContext) bool { return !rc.Data.VisionBoard.Present() },
		Recommendation: text("Create a vision board to capture career and learning goals"),
	},
	{
		Name: "cognitive_stale",
		When: func(rc RuleContext) bool {
			c, ok := rc.Data.Cognitive.Get()
			return ok && DaysSince(rc.AsOf, c.Sessions.LastPlayed) >= rc.Params.CognitiveStaleDays
		},
		Insight: func(rc RuleContext) string {
			return fmt.Sprintf("Cognitive engagement is stale: no gaming activity in %.0f+ days", rc.Params.CognitiveStaleDays)
		},
		Recommendation: text("Schedule a refresher cognitive assessment session"),
	},
	{
		Name: "vision_board_stale",
		When: func(rc RuleContext) bool {
			v, ok := rc.Data.VisionBoard.Get()
			return ok && DaysSince(rc.AsOf, v.LastTouched()) >= rc.Params.VisionBoardStaleDays
		},
		Insight: func(rc RuleContext) string {
			return fmt.Sprintf("Vision board has not been updated in %.0f+ days", rc.Params.VisionBoardStaleDays)
		},
		Recommendation: text("Review and refresh vision board goals"),
	},
	{
		Name: "strong_role_fit",
		When: func(rc RuleContext) bool {
			p := rc.Result.Components.Personality
			return p.Computed && p.Value >= 80 && IsKnownRole(rc.Result.Role)
		},
		Insight: func(rc RuleContext) string {
			return fmt.Sprintf("Strong personality fit for the %s role", rc.Result.Role)
		},
	},
	{
		Name: "weak_behavioral",
		When: func(rc RuleContext) bool {
			b := rc.Result.Components.Behavioral
			return b.Computed && b.Value < 50
		},
		Insight:        text("Behavioral track record is below expectations"),
		Recommendation: text("Increase course completion and close out assigned goals"),
	},
	{
		Name: "high_performer",
		When: func(rc RuleContext) bool {
			return rc.Data.Record.PerformanceRating > rc.Params.HighPerformerThreshold
		},
		Insight: func(rc RuleContext) string {
			return fmt.Sprintf("High performer (rating %.1f)", rc.Data.Record.PerformanceRating)
		},
	},
	{
		Name: "certification_gap",
		When: func(rc RuleContext) bool {
			r := rc.Data.Record
			return r.CertificationsRequired > r.CertificationsEarned
		},
		Recommendation: func(rc RuleContext) string {
			r := rc.Data.Record
			return fmt.Sprintf("Complete %d outstanding certification(s)", r.CertificationsRequired-r.CertificationsEarned)
		},
	},
	{
		Name:    "records_only",
		When:    func(rc RuleContext) bool { return rc.Data.EnrichmentCount() == 0 },
		Insight: text("Score is based on learning records only; confidence is limited"),
	},
}
