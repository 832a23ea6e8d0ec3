package core

import (
	"testing"

	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(id string, overall, completeness float64, c schema.ComponentScores) schema.ReadinessResult {
	return schema.ReadinessResult{PersonID: id, DepartmentID: "eng", OverallScore: overall, DataCompleteness: completeness, Components: c}
}

func TestComparePeople(t *testing.T) {
	base := []schema.ReadinessResult{
		scored("stay", 70, 0.5, schema.ComponentScores{Personality: schema.Computed(60), Behavioral: schema.Computed(70)}),
		scored("same", 55, 0.25, schema.ComponentScores{Behavioral: schema.Computed(55)}),
		scored("gone", 40, 0.25, schema.ComponentScores{Behavioral: schema.Computed(40)}),
	}
	target := []schema.ReadinessResult{
		scored("stay", 82, 0.75, schema.ComponentScores{Personality: schema.Computed(66), Cognitive: schema.Computed(90), Behavioral: schema.Computed(75)}),
		scored("same", 55, 0.25, schema.ComponentScores{Behavioral: schema.Computed(55)}),
		scored("new", 30, 0.25, schema.ComponentScores{Behavioral: schema.Computed(30)}),
	}

	result := comparePeople(base, target, 0)

	// "same" has no change and is left out of the details
	require.Len(t, result.Details, 3)
	assert.Equal(t, "gone", result.Details[0].PersonID)
	assert.Equal(t, schema.RemovedStatus, result.Details[0].Status)
	assert.Equal(t, -40.0, result.Details[0].Delta)

	assert.Equal(t, "new", result.Details[1].PersonID)
	assert.Equal(t, schema.NewStatus, result.Details[1].Status)

	stay := result.Details[2]
	assert.Equal(t, schema.ActiveStatus, stay.Status)
	assert.Equal(t, 12.0, stay.Delta)
	assert.Equal(t, 0.25, stay.DeltaCompleteness)
	assert.Equal(t, schema.DevelopingLabel, stay.BeforeLabel)
	assert.Equal(t, schema.ReadyLabel, stay.AfterLabel)
	assert.InDelta(t, 6, stay.DeltaComponents[schema.PersonalityComponent], 1e-9)
	assert.InDelta(t, 5, stay.DeltaComponents[schema.BehavioralComponent], 1e-9)
	assert.NotContains(t, stay.DeltaComponents, schema.CognitiveComponent)

	s := result.Summary
	assert.Equal(t, 1, s.TotalNewPeople)
	assert.Equal(t, 1, s.TotalRemoved)
	assert.Equal(t, 1, s.TotalImproved)
	assert.Equal(t, 0, s.TotalDeclined)
	assert.Equal(t, 1, s.TotalBandChanges)
	assert.InDelta(t, 12-40+30, s.NetScoreDelta, 1e-9)
	assert.InDelta(t, 55, s.BeforeOverall, 1e-9)
	assert.InDelta(t, (82+55+30)/3.0, s.AfterOverall, 1e-9)
}

func TestComparePeopleLimit(t *testing.T) {
	base := []schema.ReadinessResult{scored("a", 10, 0.25, schema.ComponentScores{}), scored("b", 20, 0.25, schema.ComponentScores{})}
	target := []schema.ReadinessResult{scored("a", 50, 0.25, schema.ComponentScores{}), scored("b", 25, 0.25, schema.ComponentScores{})}

	result := comparePeople(base, target, 1)
	require.Len(t, result.Details, 1)
	assert.Equal(t, "a", result.Details[0].PersonID)
	assert.Equal(t, 2, result.Summary.TotalImproved)
}

func TestDetermineStatus(t *testing.T) {
	assert.Equal(t, schema.NewStatus, determineStatus(false, true))
	assert.Equal(t, schema.ActiveStatus, determineStatus(true, true))
	assert.Equal(t, schema.RemovedStatus, determineStatus(true, false))
	assert.Equal(t, schema.UnknownStatus, determineStatus(false, false))
}

func TestSortComparisonDetails(t *testing.T) {
	details := []schema.ComparisonDetail{
		{PersonID: "b", Delta: -5},
		{PersonID: "c", Delta: 5},
		{PersonID: "a", Delta: 5},
		{PersonID: "d", Delta: 9},
	}
	sortComparisonDetails(details)

	ids := make([]string, len(details))
	for i, d := range details {
		ids[i] = d.PersonID
	}
	assert.Equal(t, []string{"d", "a", "c", "b"}, ids)
}
