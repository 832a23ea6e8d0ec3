package algo

import (
	"time"

	"github.com/huangsam/readiness/schema"
)

// asOf is the fixed evaluation instant shared by the algo tests.
var asOf = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func daysAgo(d float64) time.Time {
	return asOf.Add(-time.Duration(d * 24 * float64(time.Hour)))
}

func managerPersonality() schema.PersonalityProfile {
	return schema.PersonalityProfile{
		Openness:            75,
		Conscientiousness:   85,
		Extraversion:        70,
		Agreeableness:       75,
		Neuroticism:         30,
		LearningStyle:       schema.VisualStyle,
		WorkStyle:           schema.CollaborativeWork,
		LeadershipPotential: 80,
		ChangeAdaptability:  78,
		StressResilience:    76,
		AssessmentDate:      daysAgo(120),
	}
}

func activeCognitive(lastPlayed time.Time) schema.CognitiveProfile {
	return schema.CognitiveProfile{
		Sessions: schema.SessionSummary{
			TotalSessions:          24,
			AverageDurationMinutes: 18,
			CompletionRate:         85,
			LastPlayed:             lastPlayed,
		},
		Cognitive: schema.CognitiveMetrics{
			ProblemSolvingSpeed:        75,
			DecisionQuality:            80,
			AdaptabilityIndex:          78,
			Persistence:                82,
			CollaborationEffectiveness: 76,
		},
		Behavioral: schema.BehavioralPatterns{
			RiskTolerance:         60,
			Competitiveness:       65,
			HelpSeeking:           55,
			MentorshipInclination: 70,
			InnovationMindset:     75,
		},
		Preferences: schema.LearningPreferences{
			ComplexityPreference:     schema.HighComplexity,
			FeedbackSensitivity:      70,
			AutonomyPreference:       65,
			SocialLearningPreference: 60,
		},
	}
}

func engagedVisionBoard(updated time.Time) schema.VisionBoard {
	return schema.VisionBoard{
		CreatedAt:   daysAgo(200),
		LastUpdated: updated,
		Goals: schema.GoalAlignment{
			PersonalGoals:          3,
			CareerGoals:            4,
			LearningGoals:          3,
			AlignmentWithOrgVision: 80,
			GoalSpecificity:        75,
			TimelineRealism:        70,
		},
		Motivation: schema.MotivationIndicators{
			Intrinsic:      80,
			Extrinsic:      60,
			GrowthMindset:  85,
			PurposeClarity: 75,
			AmbitionLevel:  78,
		},
		Engagement: schema.EngagementPredictors{
			LikelyEngagement:     80,
			RetentionRisk:        20,
			PromotionReadiness:   70,
			LearningVelocity:     75,
			LeadershipAspiration: 80,
		},
	}
}

func managerRecord(rating float64) schema.LearningRecord {
	return schema.LearningRecord{
		PersonID:               "p-001",
		Name:                   "Avery Quinn",
		Role:                   "Manager",
		DepartmentID:           "engineering",
		CoursesEnrolled:        12,
		CoursesCompleted:       10,
		CoursesInProgress:      2,
		AverageCompletion:      85,
		TotalLearningHours:     64,
		LastActivity:           daysAgo(3),
		AssessmentScores:       []float64{80, 84},
		AverageAssessmentScore: 82,
		CertificationsEarned:   2,
		CertificationsRequired: 3,
		PerformanceRating:      rating,
		GoalCompletionRate:     78,
	}
}

func fullData() schema.PsychometricUserData {
	return schema.PsychometricUserData{
		Record:      managerRecord(4.2),
		Personality: schema.Some(managerPersonality()),
		Cognitive:   schema.Some(activeCognitive(daysAgo(2))),
		VisionBoard: schema.Some(engagedVisionBoard(daysAgo(5))),
	}
}

func recordOnly() schema.PsychometricUserData {
	return schema.PsychometricUserData{
		Record: schema.LearningRecord{
			PersonID:          "p-002",
			Role:              "Analyst",
			DepartmentID:      "finance",
			AverageCompletion: 50,
		},
	}
}

// zeroTime stands for an activity that never happened.
var zeroTime time.Time
