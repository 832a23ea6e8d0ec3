package core

import (
	"context"
	"slices"

	"github.com/huangsam/readiness/core/agg"
	"github.com/huangsam/readiness/core/algo"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/dataset"
	"github.com/huangsam/readiness/schema"
)

// GetPopulationReport loads and scores the configured population.
// The run is recorded when store is not nil.
func GetPopulationReport(ctx context.Context, cfg *contract.Config, store contract.RunStore) (*schema.PopulationReport, error) {
	return runScoring(ctx, cfg, store)
}

// ScoreDocument scores an already decoded population document. The document's
// as_of applies unless cfg pins the evaluation instant.
func ScoreDocument(ctx context.Context, cfg *contract.Config, store contract.RunStore, pop *dataset.Population) (*schema.PopulationReport, error) {
	return scoreAndRecord(ctx, WithPopulationAsOf(cfg, pop), store, pop.People)
}

// RankedPeople filters the report by cfg.Department and ranks people by overall score.
func RankedPeople(report *schema.PopulationReport, cfg *contract.Config) []schema.ReadinessResult {
	people := agg.FilterDepartment(slices.Clone(report.People), cfg.Department)
	return algo.RankPeople(people, cfg.ResultLimit)
}

// RankedDepartments ranks the department rollups of the report.
func RankedDepartments(report *schema.PopulationReport, cfg *contract.Config) []schema.RollupResult {
	return algo.RankRollups(slices.Clone(report.Departments), cfg.ResultLimit)
}

// GetPeopleResults scores the configured population and returns ranked people.
func GetPeopleResults(ctx context.Context, cfg *contract.Config, store contract.RunStore) ([]schema.ReadinessResult, error) {
	report, err := runScoring(ctx, cfg, store)
	if err != nil {
		return nil, err
	}
	return RankedPeople(report, cfg), nil
}

// GetDepartmentResults scores the configured population and returns ranked departments.
func GetDepartmentResults(ctx context.Context, cfg *contract.Config, store contract.RunStore) ([]schema.RollupResult, error) {
	report, err := runScoring(ctx, cfg, store)
	if err != nil {
		return nil, err
	}
	return RankedDepartments(report, cfg), nil
}
