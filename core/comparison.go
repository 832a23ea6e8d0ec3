package core

import (
	"math"
	"sort"
	"strings"

	"github.com/huangsam/readiness/schema"
)

// significantDelta is the smallest overall change reported for an active person.
const significantDelta = 0.01

// comparePeople matches people from the base snapshot against the target snapshot
// by person ID and computes the change in overall score, completeness and each
// component computed in both. The summary covers everyone; details are limited.
func comparePeople(baseResults, targetResults []schema.ReadinessResult, limit int) schema.ComparisonResult {
	baseMap := make(map[string]schema.ReadinessResult, len(baseResults))
	targetMap := make(map[string]schema.ReadinessResult, len(targetResults))
	allIDs := make(map[string]struct{})

	for _, r := range baseResults {
		baseMap[r.PersonID] = r
		allIDs[r.PersonID] = struct{}{}
	}
	for _, r := range targetResults {
		targetMap[r.PersonID] = r
		allIDs[r.PersonID] = struct{}{}
	}

	details := make([]schema.ComparisonDetail, 0, len(allIDs))
	var summary schema.ComparisonSummary

	for id := range allIDs {
		baseR, baseExists := baseMap[id]
		targetR, targetExists := targetMap[id]

		d := schema.ComparisonDetail{
			PersonID:        id,
			Status:          determineStatus(baseExists, targetExists),
			DeltaComponents: make(map[schema.ComponentKey]float64),
		}
		if baseExists {
			d.BeforeScore = baseR.OverallScore
			d.BeforeLabel = schema.GetPlainLabel(baseR.OverallScore)
			d.DepartmentID = baseR.DepartmentID
		}
		if targetExists {
			d.AfterScore = targetR.OverallScore
			d.AfterLabel = schema.GetPlainLabel(targetR.OverallScore)
			d.DepartmentID = targetR.DepartmentID
		}
		d.Delta = d.AfterScore - d.BeforeScore

		switch d.Status {
		case schema.NewStatus:
			summary.TotalNewPeople++
		case schema.RemovedStatus:
			summary.TotalRemoved++
		case schema.ActiveStatus:
			d.DeltaCompleteness = targetR.DataCompleteness - baseR.DataCompleteness
			for _, key := range schema.AllComponents {
				before, after := baseR.Components.Get(key), targetR.Components.Get(key)
				if before.Computed && after.Computed {
					d.DeltaComponents[key] = after.Value - before.Value
				}
			}
			if d.Delta > significantDelta {
				summary.TotalImproved++
			} else if d.Delta < -significantDelta {
				summary.TotalDeclined++
			}
			if d.BeforeLabel != d.AfterLabel {
				summary.TotalBandChanges++
			}
		}
		summary.NetScoreDelta += d.Delta

		// Unchanged active people are noise in the detail list
		if d.Status != schema.ActiveStatus || math.Abs(d.Delta) > significantDelta {
			details = append(details, d)
		}
	}

	summary.BeforeOverall = meanOverall(baseResults)
	summary.AfterOverall = meanOverall(targetResults)

	sortComparisonDetails(details)
	if limit > 0 && len(details) > limit {
		details = details[:limit]
	}
	return schema.ComparisonResult{Details: details, Summary: summary}
}

// determineStatus returns the status based on existence in base and target.
func determineStatus(baseExists, targetExists bool) schema.Status {
	switch {
	case !baseExists && targetExists:
		return schema.NewStatus
	case baseExists && targetExists:
		return schema.ActiveStatus
	case baseExists:
		return schema.RemovedStatus
	default:
		return schema.UnknownStatus
	}
}

// sortComparisonDetails sorts by absolute delta, then delta sign, then person ID.
func sortComparisonDetails(details []schema.ComparisonDetail) {
	sort.Slice(details, func(i, j int) bool {
		a, b := details[i], details[j]

		absA, absB := math.Abs(a.Delta), math.Abs(b.Delta)
		if absA != absB {
			return absA > absB
		}
		if a.Delta != b.Delta {
			return a.Delta > b.Delta
		}
		return strings.Compare(a.PersonID, b.PersonID) < 0
	})
}

func meanOverall(results []schema.ReadinessResult) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range results {
		sum += r.OverallScore
	}
	return sum / float64(len(results))
}
