package algo

import (
	"math"
	"testing"

	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestScorePersonFullData scores a manager with every profile present.
func TestScorePersonFullData(t *testing.T) {
	result := ScorePerson(fullData(), asOf, DefaultParams())

	assert.Equal(t, "p-001", result.PersonID)
	assert.Equal(t, "engineering", result.DepartmentID)
	for _, key := range schema.AllComponents {
		assert.True(t, result.Components.Get(key).Computed, key)
	}
	assert.InDelta(t, 80.71, result.OverallScore, 0.01)
	assert.GreaterOrEqual(t, result.OverallScore, 70.0)
	assert.LessOrEqual(t, result.OverallScore, 95.0)
	assert.Equal(t, 1.0, result.DataCompleteness)
	assert.Greater(t, result.PredictiveConfidence, 90.0)
	assert.LessOrEqual(t, result.PredictiveConfidence, 100.0)

	require.NotEmpty(t, result.Insights)
	require.NotEmpty(t, result.Recommendations)
	assert.Contains(t, result.Insights[0], "High overall readiness")
	assert.Contains(t, result.Insights, "High performer (rating 4.2)")
	assert.Contains(t, result.Recommendations, "Complete 1 outstanding certification(s)")
	assert.NotContains(t, result.Insights, "No personality assessment on file")
}

// TestScorePersonRecordOnly scores a person with only a learning record and an unknown role.
func TestScorePersonRecordOnly(t *testing.T) {
	result := ScorePerson(recordOnly(), asOf, DefaultParams())

	assert.False(t, result.Components.Personality.Computed)
	assert.False(t, result.Components.Cognitive.Computed)
	assert.False(t, result.Components.Motivational.Computed)
	require.True(t, result.Components.Behavioral.Computed)

	assert.Equal(t, 0.25, result.DataCompleteness)
	assert.InDelta(t, 12.5, result.OverallScore, 1e-9)
	assert.InDelta(t, result.Components.Behavioral.Value, result.OverallScore, 1e-9)
	assert.InDelta(t, 47.5, result.PredictiveConfidence, 1e-9)

	assert.Contains(t, result.Insights, "No personality assessment on file")
	assert.Contains(t, result.Insights, "Score is based on learning records only; confidence is limited")
	assert.Contains(t, result.Recommendations, "Complete a gamified cognitive assessment")
	assert.Contains(t, result.Recommendations, "Create a vision board to capture career and learning goals")
}

// TestScorePersonDeterministic checks identical inputs give identical results.
func TestScorePersonDeterministic(t *testing.T) {
	params := DefaultParams()
	first := ScorePerson(fullData(), asOf, params)
	second := ScorePerson(fullData(), asOf, params)
	assert.Equal(t, first, second)
}

// TestScorePersonStaleInsights checks the staleness rules.
func TestScorePersonStaleInsights(t *testing.T) {
	data := fullData()
	data.Cognitive = schema.Some(activeCognitive(daysAgo(120)))
	data.VisionBoard = schema.Some(engagedVisionBoard(daysAgo(400)))

	result := ScorePerson(data, asOf, DefaultParams())
	assert.Contains(t, result.Insights, "Cognitive engagement is stale: no gaming activity in 90+ days")
	assert.Contains(t, result.Insights, "Vision board has not been updated in 180+ days")
}

// TestCompleteness covers every number of present profiles.
func TestCompleteness(t *testing.T) {
	full := fullData()

	tests := []struct {
		name     string
		data     schema.PsychometricUserData
		expected float64
	}{
		{name: "record only", data: recordOnly(), expected: 0.25},
		{name: "personality", data: schema.PsychometricUserData{Personality: full.Personality}, expected: 0.5},
		{name: "personality and cognitive", data: schema.PsychometricUserData{Personality: full.Personality, Cognitive: full.Cognitive}, expected: 0.75},
		{name: "everything", data: full, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Completeness(tt.data))
		})
	}
}

// TestOverall checks the renormalization over computed components.
func TestOverall(t *testing.T) {
	weights := schema.GetDefaultWeights()

	t.Run("behavioral only", func(t *testing.T) {
		score, breakdown := Overall(schema.ComponentScores{Behavioral: schema.Computed(60)}, weights)
		assert.InDelta(t, 60, score, 1e-9)
		assert.Len(t, breakdown, 1)
		assert.InDelta(t, 60, breakdown[schema.BehavioralComponent], 1e-9)
	})

	t.Run("two components", func(t *testing.T) {
		scores := schema.ComponentScores{
			Personality: schema.Computed(80),
			Behavioral:  schema.Computed(60),
		}
		score, breakdown := Overall(scores, weights)
		assert.InDelta(t, (80*0.25+60*0.30)/0.55, score, 1e-9)
		assert.NotContains(t, breakdown, schema.CognitiveComponent)
	})

	t.Run("absent counts as missing not zero", func(t *testing.T) {
		withMissing, _ := Overall(schema.ComponentScores{Behavioral: schema.Computed(70)}, weights)
		withZero, _ := Overall(schema.ComponentScores{
			Personality: schema.Computed(0),
			Behavioral:  schema.Computed(70),
		}, weights)
		assert.Greater(t, withMissing, withZero)
	})

	t.Run("zero behavioral weight on records only", func(t *testing.T) {
		unweighted := map[schema.ComponentKey]float64{
			schema.PersonalityComponent:  0.5,
			schema.CognitiveComponent:    0.25,
			schema.MotivationalComponent: 0.25,
		}
		score, breakdown := Overall(schema.ComponentScores{Behavioral: schema.Computed(95)}, unweighted)
		assert.InDelta(t, 95, score, 1e-9)
		assert.InDelta(t, 95, breakdown[schema.BehavioralComponent], 1e-9)
	})

	t.Run("nothing computed", func(t *testing.T) {
		score, breakdown := Overall(schema.ComponentScores{}, weights)
		assert.Equal(t, 0.0, score)
		assert.Empty(t, breakdown)
	})
}

// TestConfidence checks the confidence bounds.
func TestConfidence(t *testing.T) {
	t.Run("single component", func(t *testing.T) {
		c := Confidence(0.25, schema.ComponentScores{Behavioral: schema.Computed(10)})
		assert.InDelta(t, 47.5, c, 1e-9)
	})

	t.Run("full agreement", func(t *testing.T) {
		c := Confidence(1, schema.ComponentScores{
			Personality:  schema.Computed(70),
			Cognitive:    schema.Computed(70),
			Motivational: schema.Computed(70),
			Behavioral:   schema.Computed(70),
		})
		assert.InDelta(t, 100, c, 1e-9)
	})

	t.Run("disagreement lowers confidence", func(t *testing.T) {
		agree := Confidence(0.5, schema.ComponentScores{Personality: schema.Computed(60), Behavioral: schema.Computed(60)})
		disagree := Confidence(0.5, schema.ComponentScores{Personality: schema.Computed(100), Behavioral: schema.Computed(0)})
		assert.Greater(t, agree, disagree)
		assert.Greater(t, disagree, 0.0)
	})
}

// TestBlend checks renormalization and the empty case.
func TestBlend(t *testing.T) {
	score, contributions, ok := Blend([]Term{
		{Name: "a", Weight: 0.5, Value: 80, Present: true},
		{Name: "b", Weight: 0.5, Value: 0, Present: false},
		{Name: "c", Weight: 0, Value: 10, Present: true},
	})
	require.True(t, ok)
	assert.InDelta(t, 80, score, 1e-9)
	assert.Equal(t, []float64{80, 0, 0}, contributions)

	score, _, ok = Blend([]Term{{Name: "a", Weight: 1, Value: 50}})
	assert.False(t, ok)
	assert.Equal(t, 0.0, score)
}

// TestDecayCurve checks both shapes and the floor.
func TestDecayCurve(t *testing.T) {
	exp := DecayCurve{Window: 7, Scale: 30, Shape: ExponentialDecay}
	lin := DecayCurve{Window: 14, Scale: 60, Shape: LinearDecay}
	floored := DecayCurve{Window: 0, Scale: 10, Floor: 0.2, Shape: LinearDecay}

	tests := []struct {
		name     string
		curve    DecayCurve
		days     float64
		expected float64
	}{
		{name: "exponential within window", curve: exp, days: 3, expected: 1},
		{name: "exponential half-life", curve: exp, days: 37, expected: 0.5},
		{name: "exponential never seen", curve: exp, days: math.Inf(1), expected: 0},
		{name: "linear halfway", curve: lin, days: 44, expected: 0.5},
		{name: "linear exhausted", curve: lin, days: 100, expected: 0},
		{name: "floor", curve: floored, days: 50, expected: 0.2},
		{name: "nan", curve: floored, days: math.NaN(), expected: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.curve.At(tt.days), 1e-9)
		})
	}

	prev := 1.0
	for d := 0.0; d <= 365; d++ {
		v := exp.At(d)
		assert.LessOrEqual(t, v, prev)
		prev = v
	}
}

// TestDaysSince checks the zero and future time handling.
func TestDaysSince(t *testing.T) {
	assert.True(t, math.IsInf(DaysSince(asOf, zeroTime), 1))
	assert.Equal(t, 0.0, DaysSince(asOf, asOf.AddDate(0, 0, 3)))
	assert.InDelta(t, 10, DaysSince(asOf, daysAgo(10)), 1e-9)
}

// TestParamsClone checks clones do not share weights.
func TestParamsClone(t *testing.T) {
	p := DefaultParams()
	c := p.Clone()
	c.Weights[schema.BehavioralComponent] = 0.9
	assert.Equal(t, 0.30, p.Weights[schema.BehavioralComponent])
	assert.Len(t, p.Tuning(), 20)
}

// TestRankPeople checks ordering, tie-breaking and the limit.
func TestRankPeople(t *testing.T) {
	people := []schema.ReadinessResult{
		{PersonID: "c", OverallScore: 50},
		{PersonID: "b", OverallScore: 90},
		{PersonID: "a", OverallScore: 50},
	}

	ranked := RankPeople(people, 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].PersonID)
	assert.Equal(t, "a", ranked[1].PersonID)
	assert.Equal(t, "c", ranked[2].PersonID)

	assert.Len(t, RankPeople(people, 2), 2)
}

// TestRankRollups checks rollup ordering.
func TestRankRollups(t *testing.T) {
	rollups := []schema.RollupResult{
		{ID: "sales", OverallScore: 60},
		{ID: "engineering", OverallScore: 60},
		{ID: "finance", OverallScore: 75},
	}

	ranked := RankRollups(rollups, 10)
	require.Len(t, ranked, 3)
	assert.Equal(t, []string{"finance", "engineering", "sales"}, []string{ranked[0].ID, ranked[1].ID, ranked[2].ID})
}

// BenchmarkScorePerson benchmarks scoring one fully enriched person.
func BenchmarkScorePerson(b *testing.B) {
	data := fullData()
	params := DefaultParams()

	for b.Loop() {
		ScorePerson(data, asOf, params)
	}
}

// FuzzScorePerson fuzzes the scorer with arbitrary numeric fields.
func FuzzScorePerson(f *testing.F) {
	f.Add("Manager", 85.0, 82.0, 4.2, 78.0, 75.0, 30.0, 80.0, 2.0, 5.0)
	f.Add("Analyst", 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0, 0.0)
	f.Add("Executive", 100.0, 100.0, 5.0, 100.0, 100.0, 0.0, 100.0, 0.0, 0.0)
	f.Add("Team Lead", -50.0, 250.0, 9.0, -1.0, 150.0, 120.0, -20.0, 1000.0, -3.0)

	f.Fuzz(func(t *testing.T,
		role string,
		completion float64,
		assessment float64,
		rating float64,
		goalCompletion float64,
		trait float64,
		neuroticism float64,
		metric float64,
		playedDaysAgo float64,
		updatedDaysAgo float64,
	) {
		data := fullData()
		data.Record.Role = role
		data.Record.AverageCompletion = completion
		data.Record.AverageAssessmentScore = assessment
		data.Record.PerformanceRating = rating
		data.Record.GoalCompletionRate = goalCompletion

		p := managerPersonality()
		p.Openness, p.Conscientiousness, p.Neuroticism = trait, trait, neuroticism
		data.Personality = schema.Some(p)

		if math.Abs(playedDaysAgo) < 1e5 {
			c := activeCognitive(daysAgo(playedDaysAgo))
			c.Cognitive.Persistence = metric
			data.Cognitive = schema.Some(c)
		}
		if math.Abs(updatedDaysAgo) < 1e5 {
			data.VisionBoard = schema.Some(engagedVisionBoard(daysAgo(updatedDaysAgo)))
		}

		result := ScorePerson(data, asOf, DefaultParams())
		assert.GreaterOrEqual(t, result.OverallScore, 0.0)
		assert.LessOrEqual(t, result.OverallScore, 100.0)
		assert.Greater(t, result.PredictiveConfidence, 0.0)
		assert.LessOrEqual(t, result.PredictiveConfidence, 100.0)
		assert.NotEmpty(t, result.Insights)
		for _, key := range schema.AllComponents {
			s := result.Components.Get(key)
			if s.Computed {
				assert.GreaterOrEqual(t, s.Value, 0.0)
				assert.LessOrEqual(t, s.Value, 100.0)
			}
		}
	})
}
