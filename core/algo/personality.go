package algo

import "github.com/huangsam/readiness/schema"

// roleProfile weights the Big Five for a role. Stability is inverted neuroticism.
// Emphasis scales how much the derived characteristics matter for the role.
type roleProfile struct {
	Openness          float64
	Conscientiousness float64
	Extraversion      float64
	Agreeableness     float64
	Stability         float64
	Emphasis          float64
}

// roleProfiles is matched exactly and case-sensitively against LearningRecord.Role.
var roleProfiles = map[string]roleProfile{
	"Executive":              {Openness: 0.20, Conscientiousness: 0.20, Extraversion: 0.25, Agreeableness: 0.10, Stability: 0.25, Emphasis: 1.0},
	"Senior Manager":         {Openness: 0.20, Conscientiousness: 0.25, Extraversion: 0.20, Agreeableness: 0.15, Stability: 0.20, Emphasis: 1.0},
	"Manager":                {Openness: 0.15, Conscientiousness: 0.25, Extraversion: 0.20, Agreeableness: 0.20, Stability: 0.20, Emphasis: 0.9},
	"Team Lead":              {Openness: 0.20, Conscientiousness: 0.25, Extraversion: 0.15, Agreeableness: 0.25, Stability: 0.15, Emphasis: 0.8},
	"Individual Contributor": {Openness: 0.25, Conscientiousness: 0.35, Extraversion: 0.05, Agreeableness: 0.15, Stability: 0.20, Emphasis: 0.5},
	"Sales Representative":   {Openness: 0.15, Conscientiousness: 0.20, Extraversion: 0.35, Agreeableness: 0.15, Stability: 0.15, Emphasis: 0.6},
}

// KnownRoles returns the roles in the role table.
func KnownRoles() []string {
	return []string{"Executive", "Senior Manager", "Manager", "Team Lead", "Individual Contributor", "Sales Representative"}
}

// IsKnownRole reports whether role has a role profile.
func IsKnownRole(role string) bool {
	_, ok := roleProfiles[role]
	return ok
}

// PersonalityAlignment scores how well a personality profile fits a role.
// Unknown roles get params.DefaultRoleScore regardless of the profile.
func PersonalityAlignment(p schema.PersonalityProfile, role string, params Params) float64 {
	rp, ok := roleProfiles[role]
	if !ok {
		return params.DefaultRoleScore
	}

	base, _, _ := Blend([]Term{
		{Name: "openness", Weight: rp.Openness, Value: p.Openness, Present: true},
		{Name: "conscientiousness", Weight: rp.Conscientiousness, Value: p.Conscientiousness, Present: true},
		{Name: "extraversion", Weight: rp.Extraversion, Value: p.Extraversion, Present: true},
		{Name: "agreeableness", Weight: rp.Agreeableness, Value: p.Agreeableness, Present: true},
		{Name: "stability", Weight: rp.Stability, Value: 100 - p.Neuroticism, Present: true},
	})

	bonus := 0.0
	for _, v := range []float64{p.LeadershipPotential, p.ChangeAdaptability, p.StressResilience} {
		bonus += derivedBonus(v, params) * rp.Emphasis
	}

	return clampScore(base + bonus)
}

// derivedBonus is a ramp above the watermark, capped.
func derivedBonus(v float64, params Params) float64 {
	if v <= params.DerivedWatermark {
		return 0
	}
	return clamp((v-params.DerivedWatermark)*params.DerivedBonusRate, 0, params.DerivedBonusCap)
}
