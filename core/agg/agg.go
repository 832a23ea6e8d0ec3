// Package agg has the population reductions over per-person readiness results.
// Every function recomputes from its input and sums in index order, so the same
// people in the same order always produce the same rollup.
package agg

import (
	"sort"
	"strconv"

	"github.com/huangsam/readiness/schema"
)

// OrganizationID is the rollup ID used for the whole population.
const OrganizationID = "organization"

// UnassignedDepartment groups people without a department ID.
const UnassignedDepartment = "unassigned"

// readyThreshold is the overall score a person needs to count as ready.
const readyThreshold = 80

// Summarize reduces people into a single rollup identified by id.
// An empty population yields an overall score of exactly 0.
func Summarize(id string, people []schema.ReadinessResult) schema.RollupResult {
	out := schema.RollupResult{
		ID:                 id,
		PersonCount:        len(people),
		Components:         make(map[schema.ComponentKey]schema.ComponentRollup, len(schema.AllComponents)),
		CompletenessCounts: make(map[string]int),
	}
	if len(people) == 0 {
		return out
	}

	var overallSum, completenessSum, confidenceSum float64
	componentSums := make([]float64, len(schema.AllComponents))
	componentCounts := make([]int, len(schema.AllComponents))

	for i, p := range people {
		overallSum += p.OverallScore
		completenessSum += p.DataCompleteness
		confidenceSum += p.PredictiveConfidence
		if p.OverallScore >= readyThreshold {
			out.ReadyCount++
		}
		out.CompletenessCounts[CompletenessKey(p.DataCompleteness)]++

		for k, key := range schema.AllComponents {
			if s := p.Components.Get(key); s.Computed {
				componentSums[k] += s.Value
				componentCounts[k]++
			}
		}

		// Ties keep the earliest person so the top pick is stable
		if i == 0 || p.OverallScore > out.TopScore {
			out.TopPerson = p.PersonID
			out.TopScore = p.OverallScore
		}
	}

	n := float64(len(people))
	out.OverallScore = overallSum / n
	out.MeanCompleteness = completenessSum / n
	out.MeanConfidence = confidenceSum / n

	for k, key := range schema.AllComponents {
		if componentCounts[k] == 0 {
			continue
		}
		out.Components[key] = schema.ComponentRollup{
			Mean:  componentSums[k] / float64(componentCounts[k]),
			Count: componentCounts[k],
		}
	}
	return out
}

// RollupOrganization summarizes every person into the organization rollup.
func RollupOrganization(people []schema.ReadinessResult) schema.RollupResult {
	return Summarize(OrganizationID, people)
}

// RollupDepartments summarizes people per department. Each department keeps its
// members in input order. Rollups are returned sorted by department ID.
func RollupDepartments(people []schema.ReadinessResult) []schema.RollupResult {
	groups := make(map[string][]schema.ReadinessResult)
	for _, p := range people {
		id := DepartmentKey(p.DepartmentID)
		groups[id] = append(groups[id], p)
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rollups := make([]schema.RollupResult, 0, len(ids))
	for _, id := range ids {
		rollups = append(rollups, Summarize(id, groups[id]))
	}
	return rollups
}

// FilterDepartment returns the people in a department, preserving order.
// An empty department returns people unchanged.
func FilterDepartment(people []schema.ReadinessResult, department string) []schema.ReadinessResult {
	if department == "" {
		return people
	}
	out := make([]schema.ReadinessResult, 0, len(people))
	for _, p := range people {
		if DepartmentKey(p.DepartmentID) == department {
			out = append(out, p)
		}
	}
	return out
}

// DepartmentKey maps an empty department ID to UnassignedDepartment.
func DepartmentKey(id string) string {
	if id == "" {
		return UnassignedDepartment
	}
	return id
}

// CompletenessKey formats a completeness fraction for CompletenessCounts.
func CompletenessKey(c float64) string {
	return strconv.FormatFloat(c, 'f', 2, 64)
}
