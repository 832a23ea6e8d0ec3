// Package mockdata generates deterministic synthetic populations for demos,
// benchmarks and tests.
package mockdata

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/readiness/core/algo"
	"github.com/huangsam/readiness/internal/dataset"
	"github.com/huangsam/readiness/schema"
)

// Departments is the fixed department set people are spread across.
var Departments = []string{"engineering", "finance", "operations", "people", "product", "sales"}

// unlistedRole exercises the default personality score.
const unlistedRole = "Analyst"

// Options controls a generated population.
type Options struct {
	Count           int
	Seed            uint64
	AsOf            time.Time
	PersonalityRate float64 // Probability a person has a personality profile
	CognitiveRate   float64
	VisionBoardRate float64
}

// DefaultOptions returns the default presence probabilities.
func DefaultOptions(count int, seed uint64, asOf time.Time) Options {
	return Options{
		Count:           count,
		Seed:            seed,
		AsOf:            asOf,
		PersonalityRate: 0.7,
		CognitiveRate:   0.6,
		VisionBoardRate: 0.5,
	}
}

// generator holds the seeded stream. IDs and values share one source so the
// whole population is a function of the seed.
type generator struct {
	src  *rand.ChaCha8
	rng  *rand.Rand
	asOf time.Time
}

func newGenerator(seed uint64, asOf time.Time) *generator {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	src := rand.NewChaCha8(key)
	return &generator{src: src, rng: rand.New(src), asOf: asOf}
}

// Generate builds a population. The same options always produce the same people.
func Generate(opts Options) (*dataset.Population, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("count must be non-negative, got %d", opts.Count)
	}
	g := newGenerator(opts.Seed, opts.AsOf)
	roles := append(algo.KnownRoles(), unlistedRole)

	people := make([]dataset.RawPerson, 0, opts.Count)
	for i := range opts.Count {
		id, err := uuid.NewRandomFromReader(g.src)
		if err != nil {
			return nil, fmt.Errorf("person %d id: %w", i, err)
		}
		// A latent level keeps each person's signals loosely correlated
		level := g.between(30, 92)

		p := g.record(id.String(), i, level, roles)
		if g.rng.Float64() < opts.PersonalityRate {
			prof := g.personality(level)
			p.Personality = &prof
		}
		if g.rng.Float64() < opts.CognitiveRate {
			prof := g.cognitive(level)
			p.Cognitive = &prof
		}
		if g.rng.Float64() < opts.VisionBoardRate {
			board := g.visionBoard(level)
			p.VisionBoard = &board
		}
		people = append(people, p)
	}

	asOf := opts.AsOf
	return &dataset.Population{AsOf: &asOf, People: people}, nil
}

func (g *generator) record(id string, index int, level float64, roles []string) dataset.RawPerson {
	enrolled := g.rng.IntN(21)
	completed := 0
	if enrolled > 0 {
		completed = g.rng.IntN(enrolled + 1)
	}
	required := g.rng.IntN(5)
	earned := 0
	if required > 0 {
		earned = g.rng.IntN(required + 1)
	}

	completion := g.around(level, 15)
	scores := make([]float64, g.rng.IntN(5))
	for i := range scores {
		scores[i] = g.around(level, 12)
	}

	return dataset.RawPerson{
		PersonID:     id,
		Name:         fmt.Sprintf("Person %04d", index+1),
		Role:         roles[g.rng.IntN(len(roles))],
		DepartmentID: Departments[g.rng.IntN(len(Departments))],

		CoursesEnrolled:    enrolled,
		CoursesCompleted:   completed,
		CoursesInProgress:  enrolled - completed,
		AverageCompletion:  &completion,
		TotalLearningHours: round1(g.between(0, 120)),
		LastActivity:       g.daysAgo(0, 90),

		AssessmentScores:       scores,
		CertificationsEarned:   earned,
		CertificationsRequired: required,

		PerformanceRating:  round1(math.Min(5, math.Max(1, level/20+g.between(-0.6, 0.6)))),
		GoalCompletionRate: g.around(level, 18),
		SkillRatings: map[string]float64{
			"communication": g.around(level, 15),
			"technical":     g.around(level, 20),
		},

		Engagement: schema.LearningEngagement{
			LoginFrequency:     round1(g.between(0, 7)),
			ForumParticipation: round1(g.between(0, 40)),
			PeerInteractions:   round1(g.between(0, 60)),
			FeedbackScore:      g.around(level, 15),
		},
	}
}

func (g *generator) personality(level float64) schema.PersonalityProfile {
	styles := []schema.LearningStyle{schema.VisualStyle, schema.AuditoryStyle, schema.KinestheticStyle, schema.ReadingStyle}
	works := []schema.WorkStyle{schema.CollaborativeWork, schema.IndependentWork, schema.HybridWork}
	return schema.PersonalityProfile{
		Openness:            g.around(level, 20),
		Conscientiousness:   g.around(level, 15),
		Extraversion:        g.between(10, 95),
		Agreeableness:       g.around(level, 20),
		Neuroticism:         g.around(100-level, 20),
		LearningStyle:       styles[g.rng.IntN(len(styles))],
		WorkStyle:           works[g.rng.IntN(len(works))],
		LeadershipPotential: g.around(level, 15),
		ChangeAdaptability:  g.around(level, 15),
		StressResilience:    g.around(level, 15),
		AssessmentDate:      g.daysAgo(30, 400),
	}
}

func (g *generator) cognitive(level float64) schema.CognitiveProfile {
	prefs := []schema.ComplexityPreference{schema.LowComplexity, schema.MediumComplexity, schema.HighComplexity}
	return schema.CognitiveProfile{
		Sessions: schema.SessionSummary{
			TotalSessions:          g.rng.IntN(60),
			AverageDurationMinutes: round1(g.between(5, 45)),
			CompletionRate:         g.around(level, 15),
			LastPlayed:             g.daysAgo(0, 150),
		},
		Cognitive: schema.CognitiveMetrics{
			ProblemSolvingSpeed:        g.around(level, 15),
			DecisionQuality:            g.around(level, 15),
			AdaptabilityIndex:          g.around(level, 15),
			Persistence:                g.around(level, 15),
			CollaborationEffectiveness: g.around(level, 15),
		},
		Behavioral: schema.BehavioralPatterns{
			RiskTolerance:         g.between(10, 90),
			Competitiveness:       g.between(10, 90),
			HelpSeeking:           g.between(10, 90),
			MentorshipInclination: g.around(level, 20),
			InnovationMindset:     g.around(level, 20),
		},
		Preferences: schema.LearningPreferences{
			ComplexityPreference:     prefs[g.rng.IntN(len(prefs))],
			FeedbackSensitivity:      g.between(20, 90),
			AutonomyPreference:       g.between(20, 90),
			SocialLearningPreference: g.between(20, 90),
		},
	}
}

func (g *generator) visionBoard(level float64) schema.VisionBoard {
	created := g.daysAgo(30, 400)
	updated := created.Add(time.Duration(g.rng.Int64N(int64(g.asOf.Sub(created)) + 1))).Truncate(time.Second)
	return schema.VisionBoard{
		CreatedAt:   created,
		LastUpdated: updated,
		Goals: schema.GoalAlignment{
			PersonalGoals:          g.rng.IntN(6),
			CareerGoals:            g.rng.IntN(6),
			LearningGoals:          g.rng.IntN(6),
			AlignmentWithOrgVision: g.around(level, 15),
			GoalSpecificity:        g.around(level, 20),
			TimelineRealism:        g.around(level, 20),
		},
		Motivation: schema.MotivationIndicators{
			Intrinsic:      g.around(level, 15),
			Extrinsic:      g.between(20, 90),
			GrowthMindset:  g.around(level, 15),
			PurposeClarity: g.around(level, 20),
			AmbitionLevel:  g.around(level, 20),
		},
		Engagement: schema.EngagementPredictors{
			LikelyEngagement:     g.around(level, 15),
			RetentionRisk:        g.around(100-level, 20),
			PromotionReadiness:   g.around(level, 20),
			LearningVelocity:     g.around(level, 15),
			LeadershipAspiration: g.between(10, 95),
		},
	}
}

// between returns a uniform value in [lo, hi) rounded to one decimal.
func (g *generator) between(lo, hi float64) float64 {
	return round1(lo + g.rng.Float64()*(hi-lo))
}

// around returns center plus uniform noise, clamped to [0, 100].
func (g *generator) around(center, spread float64) float64 {
	v := center + (g.rng.Float64()*2-1)*spread
	return round1(math.Max(0, math.Min(100, v)))
}

// daysAgo returns a whole-second timestamp between min and max days before asOf.
func (g *generator) daysAgo(lo, hi int) time.Time {
	days := lo + g.rng.IntN(hi-lo+1)
	secs := g.rng.IntN(86400)
	return g.asOf.AddDate(0, 0, -days).Add(-time.Duration(secs) * time.Second).Truncate(time.Second)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
