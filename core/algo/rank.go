package algo

import (
	"sort"

	"github.com/huangsam/readiness/schema"
)

// RankPeople sorts people by overall score in descending order and returns
// the top 'limit' results. Ties are broken by person ID so output is stable.
func RankPeople(people []schema.ReadinessResult, limit int) []schema.ReadinessResult {
	sort.SliceStable(people, func(i, j int) bool {
		if people[i].OverallScore != people[j].OverallScore {
			return people[i].OverallScore > people[j].OverallScore
		}
		return people[i].PersonID < people[j].PersonID
	})
	if limit > 0 && len(people) > limit {
		return people[:limit]
	}
	return people
}

// RankRollups sorts department rollups by overall score in descending order
// and returns the top 'limit' rollups.
func RankRollups(rollups []schema.RollupResult, limit int) []schema.RollupResult {
	sort.SliceStable(rollups, func(i, j int) bool {
		if rollups[i].OverallScore != rollups[j].OverallScore {
			return rollups[i].OverallScore > rollups[j].OverallScore
		}
		return rollups[i].ID < rollups[j].ID
	})
	if limit > 0 && len(rollups) > limit {
		return rollups[:limit]
	}
	return rollups
}
