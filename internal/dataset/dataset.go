// Package dataset loads raw person records from JSON or YAML and maps them,
// after validation, into the engine's input model.
package dataset

import (
	"time"

	"github.com/huangsam/readiness/schema"
)

// RawPerson is one person as it appears in an input file. The learning record
// fields are inlined; the three enrichment profiles are optional.
type RawPerson struct {
	PersonID     string `json:"person_id" yaml:"person_id" validate:"required"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	Role         string `json:"role,omitempty" yaml:"role,omitempty"`
	DepartmentID string `json:"department_id,omitempty" yaml:"department_id,omitempty"`

	CoursesEnrolled    int       `json:"courses_enrolled" yaml:"courses_enrolled" validate:"gte=0"`
	CoursesCompleted   int       `json:"courses_completed" yaml:"courses_completed" validate:"gte=0"`
	CoursesInProgress  int       `json:"courses_in_progress" yaml:"courses_in_progress" validate:"gte=0"`
	AverageCompletion  *float64  `json:"average_completion" yaml:"average_completion" validate:"required,gte=0,lte=100"`
	TotalLearningHours float64   `json:"total_learning_hours" yaml:"total_learning_hours" validate:"gte=0"`
	LastActivity       time.Time `json:"last_activity" yaml:"last_activity"`

	AssessmentScores       []float64 `json:"assessment_scores,omitempty" yaml:"assessment_scores,omitempty" validate:"dive,gte=0,lte=100"`
	AverageAssessmentScore *float64  `json:"average_assessment_score,omitempty" yaml:"average_assessment_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	CertificationsEarned   int       `json:"certifications_earned" yaml:"certifications_earned" validate:"gte=0"`
	CertificationsRequired int       `json:"certifications_required" yaml:"certifications_required" validate:"gte=0"`

	PerformanceRating  float64            `json:"performance_rating" yaml:"performance_rating" validate:"gte=0"` // Upper bound is the configured rating scale
	GoalCompletionRate float64            `json:"goal_completion_rate" yaml:"goal_completion_rate" validate:"gte=0,lte=100"`
	SkillRatings       map[string]float64 `json:"skill_ratings,omitempty" yaml:"skill_ratings,omitempty" validate:"dive,gte=0,lte=100"`

	Engagement schema.LearningEngagement `json:"engagement" yaml:"engagement"`

	Personality *schema.PersonalityProfile `json:"personality,omitempty" yaml:"personality,omitempty"`
	Cognitive   *schema.CognitiveProfile   `json:"cognitive,omitempty" yaml:"cognitive,omitempty"`
	VisionBoard *schema.VisionBoard        `json:"vision_board,omitempty" yaml:"vision_board,omitempty"`
}

// Population is the document form of an input file. A bare list of people is
// also accepted by the loaders.
type Population struct {
	AsOf   *time.Time  `json:"as_of,omitempty" yaml:"as_of,omitempty"`
	People []RawPerson `json:"people" yaml:"people"`
}
