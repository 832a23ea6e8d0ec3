package dataset

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/readiness/core/algo"
	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, YAMLFormat, FormatForPath("people.yaml"))
	assert.Equal(t, YAMLFormat, FormatForPath("PEOPLE.YML"))
	assert.Equal(t, JSONFormat, FormatForPath("people.json"))
	assert.Equal(t, JSONFormat, FormatForPath("people"))
}

func TestLoadJSONDocument(t *testing.T) {
	pop, err := Load(filepath.Join("testdata", "people.json"))
	require.NoError(t, err)

	require.NotNil(t, pop.AsOf)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), pop.AsOf.UTC())
	require.Len(t, pop.People, 3)

	first := pop.People[0]
	assert.Equal(t, "p-001", first.PersonID)
	require.NotNil(t, first.Personality)
	require.NotNil(t, first.Cognitive)
	require.NotNil(t, first.VisionBoard)
	assert.Equal(t, schema.HighComplexity, first.Cognitive.Preferences.ComplexityPreference)
	assert.Nil(t, pop.People[1].Personality)
}

func TestLoadYAMLList(t *testing.T) {
	pop, err := Load(filepath.Join("testdata", "people.yaml"))
	require.NoError(t, err)

	assert.Nil(t, pop.AsOf)
	require.Len(t, pop.People, 2)
	require.NotNil(t, pop.People[0].Personality)
	assert.Equal(t, schema.ReadingStyle, pop.People[0].Personality.LearningStyle)
	assert.Equal(t, 2025, pop.People[0].Personality.AssessmentDate.Year())
	assert.Equal(t, 72.5, *pop.People[0].AverageCompletion)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.json"))
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		format      Format
		count       int
		expectError bool
	}{
		{name: "json list", input: `[{"person_id":"a","average_completion":1}]`, format: JSONFormat, count: 1},
		{name: "json document", input: `{"people":[{"person_id":"a"},{"person_id":"b"}]}`, format: JSONFormat, count: 2},
		{name: "json empty", input: "  ", format: JSONFormat, expectError: true},
		{name: "json malformed", input: `{"people":`, format: JSONFormat, expectError: true},
		{name: "yaml document", input: "people:\n  - person_id: a\n", format: YAMLFormat, count: 1},
		{name: "yaml empty", input: "", format: YAMLFormat, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pop, err := Decode(strings.NewReader(tt.input), tt.format)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, pop.People, tt.count)
		})
	}
}

func TestValidate(t *testing.T) {
	params := algo.DefaultParams()

	tests := []struct {
		name   string
		raw    RawPerson
		fields []string
	}{
		{
			name: "valid minimum",
			raw:  RawPerson{PersonID: "a", AverageCompletion: fptr(50)},
		},
		{
			name:   "missing required fields",
			raw:    RawPerson{},
			fields: []string{"person_id", "average_completion"},
		},
		{
			name:   "completion above 100",
			raw:    RawPerson{PersonID: "a", AverageCompletion: fptr(140)},
			fields: []string{"average_completion"},
		},
		{
			name:   "rating above scale",
			raw:    RawPerson{PersonID: "a", AverageCompletion: fptr(50), PerformanceRating: 6},
			fields: []string{"performance_rating"},
		},
		{
			name: "nested personality out of range",
			raw: RawPerson{
				PersonID:          "a",
				AverageCompletion: fptr(50),
				Personality:       &schema.PersonalityProfile{Openness: -1, LearningStyle: "telepathic"},
			},
			fields: []string{"personality.openness", "personality.learning_style"},
		},
		{
			name:   "assessment history out of range",
			raw:    RawPerson{PersonID: "a", AverageCompletion: fptr(50), AssessmentScores: []float64{90, 120}},
			fields: []string{"assessment_scores[1]"},
		},
		{
			name:   "completed exceeds enrolled",
			raw:    RawPerson{PersonID: "a", AverageCompletion: fptr(50), CoursesEnrolled: 2, CoursesCompleted: 3},
			fields: []string{"courses_completed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.raw, 7, params)
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, 7, ve.Index)
			got := make([]string, len(ve.Fields))
			for i, f := range ve.Fields {
				got[i] = f.Field
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{
		Index:    2,
		PersonID: "p-3",
		Fields:   []FieldError{{Field: "average_completion", Reason: "must be <= 100"}},
	}
	assert.Equal(t, "invalid person p-3 at index 2: average_completion must be <= 100", err.Error())

	err.PersonID = ""
	assert.Contains(t, err.Error(), "<missing>")
}

func TestMap(t *testing.T) {
	params := algo.DefaultParams()
	pop, err := Load(filepath.Join("testdata", "people.json"))
	require.NoError(t, err)

	full, err := Map(pop.People[0], 0, params)
	require.NoError(t, err)
	assert.Equal(t, 3, full.EnrichmentCount())
	assert.Equal(t, 82.0, full.Record.AverageAssessmentScore)
	assert.Equal(t, "Manager", full.Record.Role)

	minimal, err := Map(pop.People[1], 1, params)
	require.NoError(t, err)
	assert.Equal(t, 0, minimal.EnrichmentCount())
	assert.Equal(t, 50.0, minimal.Record.AverageCompletion)

	_, err = Map(pop.People[2], 2, params)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "p-003", ve.PersonID)
}

func TestMapExplicitAverage(t *testing.T) {
	raw := RawPerson{
		PersonID:               "a",
		AverageCompletion:      fptr(50),
		AssessmentScores:       []float64{10, 20},
		AverageAssessmentScore: fptr(90),
	}
	data, err := Map(raw, 0, algo.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 90.0, data.Record.AverageAssessmentScore)
}

func TestWriteYAML(t *testing.T) {
	asOf := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	pop := &Population{
		AsOf: &asOf,
		People: []RawPerson{{
			PersonID:          "a",
			DepartmentID:      "ops",
			AverageCompletion: fptr(61),
			VisionBoard:       &schema.VisionBoard{LastUpdated: asOf.AddDate(0, 0, -3)},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, pop, YAMLFormat))
	assert.Contains(t, buf.String(), "person_id: a")

	back, err := Decode(&buf, YAMLFormat)
	require.NoError(t, err)
	require.Len(t, back.People, 1)
	require.NotNil(t, back.People[0].VisionBoard)
	assert.True(t, asOf.AddDate(0, 0, -3).Equal(back.People[0].VisionBoard.LastUpdated))
}
