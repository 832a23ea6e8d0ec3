// Package schema has models, constants and presentation helpers for all parts of readiness.
package schema

import "time"

// PersonalityProfile is a Big Five assessment plus derived workplace characteristics.
// All numeric fields are on a 0-100 scale.
type PersonalityProfile struct {
	Openness          float64 `json:"openness" yaml:"openness" validate:"gte=0,lte=100"`
	Conscientiousness float64 `json:"conscientiousness" yaml:"conscientiousness" validate:"gte=0,lte=100"`
	Extraversion      float64 `json:"extraversion" yaml:"extraversion" validate:"gte=0,lte=100"`
	Agreeableness     float64 `json:"agreeableness" yaml:"agreeableness" validate:"gte=0,lte=100"`
	Neuroticism       float64 `json:"neuroticism" yaml:"neuroticism" validate:"gte=0,lte=100"` // Higher is less stable

	LearningStyle LearningStyle `json:"learning_style" yaml:"learning_style" validate:"omitempty,oneof=visual auditory kinesthetic reading"`
	WorkStyle     WorkStyle     `json:"work_style" yaml:"work_style" validate:"omitempty,oneof=collaborative independent hybrid"`

	LeadershipPotential float64 `json:"leadership_potential" yaml:"leadership_potential" validate:"gte=0,lte=100"`
	ChangeAdaptability  float64 `json:"change_adaptability" yaml:"change_adaptability" validate:"gte=0,lte=100"`
	StressResilience    float64 `json:"stress_resilience" yaml:"stress_resilience" validate:"gte=0,lte=100"`

	AssessmentDate time.Time `json:"assessment_date" yaml:"assessment_date"`
}

// DerivedMean is the mean of the three derived workplace characteristics.
func (p PersonalityProfile) DerivedMean() float64 {
	return (p.LeadershipPotential + p.ChangeAdaptability + p.StressResilience) / 3
}

// SessionSummary summarizes gamified assessment sessions.
type SessionSummary struct {
	TotalSessions          int       `json:"total_sessions" yaml:"total_sessions" validate:"gte=0"`
	AverageDurationMinutes float64   `json:"average_duration_minutes" yaml:"average_duration_minutes" validate:"gte=0"`
	CompletionRate         float64   `json:"completion_rate" yaml:"completion_rate" validate:"gte=0,lte=100"`
	LastPlayed             time.Time `json:"last_played" yaml:"last_played"`
}

// CognitiveMetrics are observed problem-solving measures.
type CognitiveMetrics struct {
	ProblemSolvingSpeed        float64 `json:"problem_solving_speed" yaml:"problem_solving_speed" validate:"gte=0,lte=100"`
	DecisionQuality            float64 `json:"decision_quality" yaml:"decision_quality" validate:"gte=0,lte=100"`
	AdaptabilityIndex          float64 `json:"adaptability_index" yaml:"adaptability_index" validate:"gte=0,lte=100"`
	Persistence                float64 `json:"persistence" yaml:"persistence" validate:"gte=0,lte=100"`
	CollaborationEffectiveness float64 `json:"collaboration_effectiveness" yaml:"collaboration_effectiveness" validate:"gte=0,lte=100"`
}

// Mean returns the arithmetic mean of all cognitive metrics.
func (m CognitiveMetrics) Mean() float64 {
	return (m.ProblemSolvingSpeed + m.DecisionQuality + m.AdaptabilityIndex + m.Persistence + m.CollaborationEffectiveness) / 5
}

// BehavioralPatterns are tendencies observed during gameplay.
type BehavioralPatterns struct {
	RiskTolerance         float64 `json:"risk_tolerance" yaml:"risk_tolerance" validate:"gte=0,lte=100"`
	Competitiveness       float64 `json:"competitiveness" yaml:"competitiveness" validate:"gte=0,lte=100"`
	HelpSeeking           float64 `json:"help_seeking" yaml:"help_seeking" validate:"gte=0,lte=100"`
	MentorshipInclination float64 `json:"mentorship_inclination" yaml:"mentorship_inclination" validate:"gte=0,lte=100"`
	InnovationMindset     float64 `json:"innovation_mindset" yaml:"innovation_mindset" validate:"gte=0,lte=100"`
}

// Mean returns the arithmetic mean of all behavioral patterns.
func (b BehavioralPatterns) Mean() float64 {
	return (b.RiskTolerance + b.Competitiveness + b.HelpSeeking + b.MentorshipInclination + b.InnovationMindset) / 5
}

// LearningPreferences captures how a person prefers to learn.
type LearningPreferences struct {
	ComplexityPreference     ComplexityPreference `json:"complexity_preference" yaml:"complexity_preference" validate:"omitempty,oneof=low medium high"`
	FeedbackSensitivity      float64              `json:"feedback_sensitivity" yaml:"feedback_sensitivity" validate:"gte=0,lte=100"`
	AutonomyPreference       float64              `json:"autonomy_preference" yaml:"autonomy_preference" validate:"gte=0,lte=100"`
	SocialLearningPreference float64              `json:"social_learning_preference" yaml:"social_learning_preference" validate:"gte=0,lte=100"`
}

// CognitiveProfile is gamified cognitive and behavioral telemetry.
type CognitiveProfile struct {
	Sessions    SessionSummary      `json:"sessions" yaml:"sessions"`
	Cognitive   CognitiveMetrics    `json:"cognitive" yaml:"cognitive"`
	Behavioral  BehavioralPatterns  `json:"behavioral" yaml:"behavioral"`
	Preferences LearningPreferences `json:"preferences" yaml:"preferences"`
}

// GoalAlignment describes the goals captured on a vision board.
type GoalAlignment struct {
	PersonalGoals          int     `json:"personal_goals" yaml:"personal_goals" validate:"gte=0"`
	CareerGoals            int     `json:"career_goals" yaml:"career_goals" validate:"gte=0"`
	LearningGoals          int     `json:"learning_goals" yaml:"learning_goals" validate:"gte=0"`
	AlignmentWithOrgVision float64 `json:"alignment_with_org_vision" yaml:"alignment_with_org_vision" validate:"gte=0,lte=100"`
	GoalSpecificity        float64 `json:"goal_specificity" yaml:"goal_specificity" validate:"gte=0,lte=100"`
	TimelineRealism        float64 `json:"timeline_realism" yaml:"timeline_realism" validate:"gte=0,lte=100"`
}

// TotalGoals is the number of goals across all categories.
func (g GoalAlignment) TotalGoals() int {
	return g.PersonalGoals + g.CareerGoals + g.LearningGoals
}

// MotivationIndicators are self-reported and inferred motivation levels.
type MotivationIndicators struct {
	Intrinsic      float64 `json:"intrinsic" yaml:"intrinsic" validate:"gte=0,lte=100"`
	Extrinsic      float64 `json:"extrinsic" yaml:"extrinsic" validate:"gte=0,lte=100"`
	GrowthMindset  float64 `json:"growth_mindset" yaml:"growth_mindset" validate:"gte=0,lte=100"`
	PurposeClarity float64 `json:"purpose_clarity" yaml:"purpose_clarity" validate:"gte=0,lte=100"`
	AmbitionLevel  float64 `json:"ambition_level" yaml:"ambition_level" validate:"gte=0,lte=100"`
}

// Mean returns the arithmetic mean of all motivation indicators.
func (m MotivationIndicators) Mean() float64 {
	return (m.Intrinsic + m.Extrinsic + m.GrowthMindset + m.PurposeClarity + m.AmbitionLevel) / 5
}

// EngagementPredictors forecast engagement and retention.
type EngagementPredictors struct {
	LikelyEngagement     float64 `json:"likely_engagement" yaml:"likely_engagement" validate:"gte=0,lte=100"`
	RetentionRisk        float64 `json:"retention_risk" yaml:"retention_risk" validate:"gte=0,lte=100"` // Lower is better
	PromotionReadiness   float64 `json:"promotion_readiness" yaml:"promotion_readiness" validate:"gte=0,lte=100"`
	LearningVelocity     float64 `json:"learning_velocity" yaml:"learning_velocity" validate:"gte=0,lte=100"`
	LeadershipAspiration float64 `json:"leadership_aspiration" yaml:"leadership_aspiration" validate:"gte=0,lte=100"`
}

// VisionBoard is a goal-setting artifact profile.
type VisionBoard struct {
	CreatedAt   time.Time            `json:"created_at" yaml:"created_at"`
	LastUpdated time.Time            `json:"last_updated" yaml:"last_updated"`
	Goals       GoalAlignment        `json:"goals" yaml:"goals"`
	Motivation  MotivationIndicators `json:"motivation" yaml:"motivation"`
	Engagement  EngagementPredictors `json:"engagement" yaml:"engagement"`
}

// LastTouched returns LastUpdated, falling back to CreatedAt.
// A zero result means the board carries no usable timestamp.
func (v VisionBoard) LastTouched() time.Time {
	if !v.LastUpdated.IsZero() {
		return v.LastUpdated
	}
	return v.CreatedAt
}

// LearningEngagement is platform engagement for a learner.
type LearningEngagement struct {
	LoginFrequency     float64 `json:"login_frequency" yaml:"login_frequency" validate:"gte=0"`
	ForumParticipation float64 `json:"forum_participation" yaml:"forum_participation" validate:"gte=0"`
	PeerInteractions   float64 `json:"peer_interactions" yaml:"peer_interactions" validate:"gte=0"`
	FeedbackScore      float64 `json:"feedback_score" yaml:"feedback_score" validate:"gte=0,lte=100"`
}

// LearningRecord is the conventional learning and performance record every person has.
type LearningRecord struct {
	PersonID     string `json:"person_id" yaml:"person_id"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	Role         string `json:"role" yaml:"role"`
	DepartmentID string `json:"department_id" yaml:"department_id"`

	CoursesEnrolled    int       `json:"courses_enrolled" yaml:"courses_enrolled"`
	CoursesCompleted   int       `json:"courses_completed" yaml:"courses_completed"`
	CoursesInProgress  int       `json:"courses_in_progress" yaml:"courses_in_progress"`
	AverageCompletion  float64   `json:"average_completion" yaml:"average_completion"`
	TotalLearningHours float64   `json:"total_learning_hours" yaml:"total_learning_hours"`
	LastActivity       time.Time `json:"last_activity" yaml:"last_activity"`

	AssessmentScores       []float64 `json:"assessment_scores,omitempty" yaml:"assessment_scores,omitempty"`
	AverageAssessmentScore float64   `json:"average_assessment_score" yaml:"average_assessment_score"`
	CertificationsEarned   int       `json:"certifications_earned" yaml:"certifications_earned"`
	CertificationsRequired int       `json:"certifications_required" yaml:"certifications_required"`

	PerformanceRating  float64            `json:"performance_rating" yaml:"performance_rating"`
	GoalCompletionRate float64            `json:"goal_completion_rate" yaml:"goal_completion_rate"`
	SkillRatings       map[string]float64 `json:"skill_ratings,omitempty" yaml:"skill_ratings,omitempty"`

	Engagement LearningEngagement `json:"engagement" yaml:"engagement"`
}

// PsychometricUserData bundles a person's learning record with any enrichment profiles.
// Any subset of the three enrichment profiles may be absent.
type PsychometricUserData struct {
	Record      LearningRecord
	Personality Optional[PersonalityProfile]
	Cognitive   Optional[CognitiveProfile]
	VisionBoard Optional[VisionBoard]
}

// EnrichmentCount returns how many optional profiles are present.
func (d PsychometricUserData) EnrichmentCount() int {
	n := 0
	if d.Personality.Present() {
		n++
	}
	if d.Cognitive.Present() {
		n++
	}
	if d.VisionBoard.Present() {
		n++
	}
	return n
}
