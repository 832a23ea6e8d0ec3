package dataset

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/huangsam/readiness/core/algo"
	"github.com/huangsam/readiness/schema"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field  string `json:"field"`
	Value  any    `json:"value,omitempty"`
	Reason string `json:"reason"`
}

// ValidationError is returned when a person's record is missing a required
// field or has a value outside its declared range.
type ValidationError struct {
	Index    int          `json:"index"`
	PersonID string       `json:"person_id"`
	Fields   []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Reason
	}
	id := e.PersonID
	if id == "" {
		id = "<missing>"
	}
	return fmt.Sprintf("invalid person %s at index %d: %s", id, e.Index, strings.Join(parts, "; "))
}

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks one raw person. params supplies the rating scale.
// The returned error is a *ValidationError or nil.
func Validate(raw RawPerson, index int, params algo.Params) error {
	var fields []FieldError

	if err := validate.Struct(raw); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return err
		}
		for _, fe := range ve {
			fields = append(fields, FieldError{
				Field:  fieldPath(fe.Namespace()),
				Value:  fe.Value(),
				Reason: reason(fe),
			})
		}
	}

	if params.RatingScale > 0 && raw.PerformanceRating > params.RatingScale {
		fields = append(fields, FieldError{
			Field:  "performance_rating",
			Value:  raw.PerformanceRating,
			Reason: fmt.Sprintf("must be <= %g", params.RatingScale),
		})
	}
	if raw.CoursesCompleted > raw.CoursesEnrolled && raw.CoursesEnrolled > 0 {
		fields = append(fields, FieldError{
			Field:  "courses_completed",
			Value:  raw.CoursesCompleted,
			Reason: fmt.Sprintf("cannot exceed courses_enrolled (%d)", raw.CoursesEnrolled),
		})
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Index: index, PersonID: raw.PersonID, Fields: fields}
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be >= " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	default:
		return "failed " + fe.Tag()
	}
}

// Map validates a raw person and converts it into engine input.
func Map(raw RawPerson, index int, params algo.Params) (schema.PsychometricUserData, error) {
	if err := Validate(raw, index, params); err != nil {
		return schema.PsychometricUserData{}, err
	}

	rec := schema.LearningRecord{
		PersonID:               raw.PersonID,
		Name:                   raw.Name,
		Role:                   raw.Role,
		DepartmentID:           raw.DepartmentID,
		CoursesEnrolled:        raw.CoursesEnrolled,
		CoursesCompleted:       raw.CoursesCompleted,
		CoursesInProgress:      raw.CoursesInProgress,
		AverageCompletion:      *raw.AverageCompletion,
		TotalLearningHours:     raw.TotalLearningHours,
		LastActivity:           raw.LastActivity,
		AssessmentScores:       raw.AssessmentScores,
		AverageAssessmentScore: averageAssessment(raw),
		CertificationsEarned:   raw.CertificationsEarned,
		CertificationsRequired: raw.CertificationsRequired,
		PerformanceRating:      raw.PerformanceRating,
		GoalCompletionRate:     raw.GoalCompletionRate,
		SkillRatings:           raw.SkillRatings,
		Engagement:             raw.Engagement,
	}

	data := schema.PsychometricUserData{Record: rec}
	if raw.Personality != nil {
		data.Personality = schema.Some(*raw.Personality)
	}
	if raw.Cognitive != nil {
		data.Cognitive = schema.Some(*raw.Cognitive)
	}
	if raw.VisionBoard != nil {
		data.VisionBoard = schema.Some(*raw.VisionBoard)
	}
	return data, nil
}

// averageAssessment uses the explicit average, falling back to the mean of the history.
func averageAssessment(raw RawPerson) float64 {
	if raw.AverageAssessmentScore != nil {
		return *raw.AverageAssessmentScore
	}
	if len(raw.AssessmentScores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range raw.AssessmentScores {
		sum += s
	}
	return sum / float64(len(raw.AssessmentScores))
}
