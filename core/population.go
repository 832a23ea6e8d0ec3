package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/readiness/core/agg"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/dataset"
	"github.com/huangsam/readiness/internal/logger"
	"github.com/huangsam/readiness/internal/mockdata"
	"github.com/huangsam/readiness/schema"
)

// LoadPopulation returns the population selected by cfg: an input file, stdin
// or a generated population.
func LoadPopulation(cfg *contract.Config) (*dataset.Population, error) {
	switch {
	case cfg.InputPath != "":
		return dataset.Load(cfg.InputPath)
	case cfg.Generate > 0:
		return mockdata.Generate(mockdata.DefaultOptions(cfg.Generate, cfg.Seed, cfg.AsOf))
	default:
		return nil, errors.New("no population given. Use --input FILE or --generate N")
	}
}

// WithPopulationAsOf returns cfg with the evaluation instant taken from the
// population document, unless cfg.AsOf was set explicitly.
func WithPopulationAsOf(cfg *contract.Config, pop *dataset.Population) *contract.Config {
	if cfg.AsOfFixed || pop == nil || pop.AsOf == nil {
		return cfg
	}
	out := cfg.Clone()
	out.AsOf = pop.AsOf.UTC()
	return out
}

// ScorePopulation validates and scores every person, then builds the department
// and organization rollups. People that fail validation are reported in
// Failures and excluded from the rollups; they never abort the batch.
func ScorePopulation(ctx context.Context, cfg *contract.Config, people []dataset.RawPerson) (*schema.PopulationReport, error) {
	log := logger.Default()
	if id, ok := runIDFromContext(ctx); ok {
		log = log.With("run_id", id)
	}

	scored, err := scorePeople(ctx, cfg, people)
	if err != nil {
		return nil, err
	}

	report := &schema.PopulationReport{
		AsOf:     cfg.AsOf,
		People:   make([]schema.ReadinessResult, 0, len(scored)),
		Failures: []schema.PersonFailure{},
	}
	for i, s := range scored {
		if s.err == nil {
			report.People = append(report.People, s.result)
			continue
		}
		report.Failures = append(report.Failures, schema.PersonFailure{
			Index:    i,
			PersonID: people[i].PersonID,
			Error:    s.err.Error(),
		})
		logFailure(log, people[i].PersonID, s.err)
	}

	report.Departments = agg.RollupDepartments(report.People)
	report.Organization = agg.RollupOrganization(report.People)

	log.Info("scored population",
		"people", len(report.People),
		"failures", len(report.Failures),
		"departments", len(report.Departments),
		"overall", schema.Round(report.Organization.OverallScore, 2),
	)
	return report, nil
}

// logFailure logs one debug line per rejected field.
func logFailure(log *logger.Logger, personID string, err error) {
	var ve *dataset.ValidationError
	if !errors.As(err, &ve) {
		log.Debug("person rejected", "person_id", personID, "error", err)
		return
	}
	for _, f := range ve.Fields {
		log.Debug("person rejected", "person_id", personID, "index", ve.Index, "field", f.Field, "reason", f.Reason)
	}
}

// runScoring loads the configured population, scores it and records the run.
func runScoring(ctx context.Context, cfg *contract.Config, store contract.RunStore) (*schema.PopulationReport, error) {
	pop, err := LoadPopulation(cfg)
	if err != nil {
		return nil, err
	}
	return scoreAndRecord(ctx, WithPopulationAsOf(cfg, pop), store, pop.People)
}

// scoreSnapshot loads and scores one compare snapshot without recording it.
func scoreSnapshot(ctx context.Context, cfg *contract.Config, path string) (*schema.PopulationReport, error) {
	pop, err := dataset.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", path, err)
	}
	return ScorePopulation(ctx, WithPopulationAsOf(cfg, pop), pop.People)
}
