// Package core has core logic for loading, scoring, ranking and comparing populations.
package core

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/mockdata"
	"github.com/huangsam/readiness/internal/outwriter"
)

// ExecutorFunc defines the function signature for executing different scoring modes.
// The store is nil when run tracking is disabled.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, store contract.RunStore) error

// ExecutePeople scores the population and prints ranked people.
// It serves as the main entry point for the 'people' mode.
func ExecutePeople(ctx context.Context, cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	ranked, err := GetPeopleResults(ctx, cfg, store)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WritePeople(ranked, cfg, time.Since(start))
}

// ExecuteDepartments scores the population and prints ranked department rollups.
func ExecuteDepartments(ctx context.Context, cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	ranked, err := GetDepartmentResults(ctx, cfg, store)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteDepartments(ranked, cfg, time.Since(start))
}

// ExecuteOrganization scores the population and prints the organization rollup
// together with any people that failed validation.
func ExecuteOrganization(ctx context.Context, cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()
	report, err := runScoring(ctx, cfg, store)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteOrganization(report, cfg, time.Since(start))
}

// ExecuteCompare scores two population snapshots and prints per-person deltas.
// Compare runs are never recorded in the run store.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, _ contract.RunStore) error {
	start := time.Now()
	if !cfg.CompareMode {
		return errors.New("compare requires --base and --target. Example: readiness compare --base q1.json --target q2.json")
	}

	base, err := scoreSnapshot(ctx, cfg, cfg.BasePath)
	if err != nil {
		return err
	}
	target, err := scoreSnapshot(ctx, cfg, cfg.TargetPath)
	if err != nil {
		return err
	}

	result := comparePeople(base.People, target.People, cfg.ResultLimit)
	return outwriter.NewOutWriter().WriteComparison(result, cfg, time.Since(start))
}

// ExecuteMetrics displays the weights, formulas and tuning in use.
// This is a static display that does not need a population.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.RunStore) error {
	return outwriter.NewOutWriter().WriteMetrics(BuildMetricsModel(cfg.Params), cfg)
}

// ExecuteGenerate writes a synthetic population to the output file or stdout.
func ExecuteGenerate(_ context.Context, cfg *contract.Config, _ contract.RunStore) error {
	if cfg.Generate <= 0 {
		return errors.New("generate requires a positive count. Example: readiness generate 200 --seed 7")
	}
	pop, err := mockdata.Generate(mockdata.DefaultOptions(cfg.Generate, cfg.Seed, cfg.AsOf))
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WritePopulation(pop, cfg)
}
