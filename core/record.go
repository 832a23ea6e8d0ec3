package core

import (
	"context"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/dataset"
	"github.com/huangsam/readiness/schema"
)

// scoreAndRecord scores people and, when a store is configured, records the run.
// Store failures are logged and never fail the scoring itself.
func scoreAndRecord(ctx context.Context, cfg *contract.Config, store contract.RunStore, people []dataset.RawPerson) (*schema.PopulationReport, error) {
	var runID int64
	if store != nil {
		id, err := store.BeginRun(time.Now(), runConfigParams(cfg, len(people)))
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		} else if id > 0 {
			runID = id
			ctx = withRunID(ctx, runID)
		}
	}

	report, err := ScorePopulation(ctx, cfg, people)
	if err != nil {
		return nil, err
	}

	if runID > 0 {
		scoredAt := time.Now().UTC()
		records := make([]schema.PersonScoreRecord, len(report.People))
		for i, r := range report.People {
			records[i] = schema.NewPersonScoreRecord(runID, r, scoredAt)
		}
		if err := store.RecordPersonScores(runID, records); err != nil {
			contract.LogWarn("Failed to record person scores", err)
		}
		if err := store.EndRun(runID, time.Now(), len(report.People), len(report.Failures)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}
	return report, nil
}

// runConfigParams is the configuration snapshot stored with each run.
func runConfigParams(cfg *contract.Config, inputPeople int) map[string]any {
	weights := make(map[string]float64, len(cfg.Params.Weights))
	for k, v := range cfg.Params.Weights {
		weights[string(k)] = v
	}
	params := map[string]any{
		"as_of":        cfg.AsOf.Format(contract.DateTimeFormat),
		"input_people": inputPeople,
		"workers":      cfg.Workers,
		"weights":      weights,
		"tuning":       cfg.Params.Tuning(),
	}
	switch {
	case cfg.InputPath != "":
		params["input"] = cfg.InputPath
	case cfg.Generate > 0:
		params["generate"] = cfg.Generate
		params["seed"] = cfg.Seed
	}
	return params
}
