package core

import (
	"context"
	"errors"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
)

// CheckResultBuilder builds the program-readiness check result using a builder pattern.
type CheckResultBuilder struct {
	cfg            *contract.Config
	store          contract.RunStore
	ctx            context.Context
	report         *schema.PopulationReport
	violations     []schema.CheckViolation
	minScores      map[schema.ComponentKey]float64
	minScorePeople map[schema.ComponentKey][]string
	avgScores      map[schema.ComponentKey]float64
	result         *schema.CheckResult
}

// NewCheckResultBuilder creates a new builder for check results.
func NewCheckResultBuilder(ctx context.Context, cfg *contract.Config, store contract.RunStore) *CheckResultBuilder {
	return &CheckResultBuilder{
		cfg:   cfg,
		store: store,
		ctx:   ctx,
	}
}

// ValidatePrerequisites validates the config before any scoring happens.
func (b *CheckResultBuilder) ValidatePrerequisites() (*CheckResultBuilder, error) {
	if !b.cfg.HasInput() {
		return nil, errors.New("check requires a population. Example: readiness check --input people.json --thresholds-override overall:60")
	}
	if len(b.cfg.Thresholds) == 0 {
		return nil, errors.New("check requires thresholds")
	}
	return b, nil
}

// RunScoring loads and scores the population, recording the run when a store is set.
// An empty population passes immediately.
func (b *CheckResultBuilder) RunScoring() (*CheckResultBuilder, error) {
	report, err := runScoring(b.ctx, b.cfg, b.store)
	if err != nil {
		return nil, err
	}
	b.report = report

	if len(report.People) == 0 && len(report.Failures) == 0 {
		b.result = &schema.CheckResult{Passed: true, CheckedKeys: contract.ThresholdKeys, Thresholds: b.cfg.Thresholds}
	}
	return b, nil
}

// ComputeMetrics finds the minimum and average per key and every violation.
// A component that was not computed for a person is not checked for that person.
func (b *CheckResultBuilder) ComputeMetrics() *CheckResultBuilder {
	b.minScores = make(map[schema.ComponentKey]float64)
	b.minScorePeople = make(map[schema.ComponentKey][]string)
	b.avgScores = make(map[schema.ComponentKey]float64)
	b.violations = []schema.CheckViolation{}

	for _, key := range contract.ThresholdKeys {
		threshold := b.cfg.Thresholds[key]
		sum, count := 0.0, 0

		for _, p := range b.report.People {
			score, ok := scoreFor(p, key)
			if !ok {
				continue
			}
			sum += score
			count++

			switch minScore, seen := b.minScores[key]; {
			case !seen || score < minScore:
				b.minScores[key] = score
				b.minScorePeople[key] = []string{p.PersonID}
			case score == minScore:
				b.minScorePeople[key] = append(b.minScorePeople[key], p.PersonID)
			}

			if score < threshold {
				b.violations = append(b.violations, schema.CheckViolation{
					PersonID:     p.PersonID,
					DepartmentID: p.DepartmentID,
					Key:          key,
					Score:        score,
					Threshold:    threshold,
				})
			}
		}
		if count > 0 {
			b.avgScores[key] = sum / float64(count)
		}
	}
	return b
}

// BuildResult constructs the final CheckResult.
func (b *CheckResultBuilder) BuildResult() *CheckResultBuilder {
	b.result = &schema.CheckResult{
		Passed:         len(b.violations) == 0,
		Violations:     b.violations,
		TotalPeople:    len(b.report.People),
		TotalFailures:  len(b.report.Failures),
		CheckedKeys:    contract.ThresholdKeys,
		Thresholds:     b.cfg.Thresholds,
		MinScores:      b.minScores,
		MinScorePeople: b.minScorePeople,
		AvgScores:      b.avgScores,
	}
	return b
}

// GetResult returns the built CheckResult.
func (b *CheckResultBuilder) GetResult() *schema.CheckResult {
	return b.result
}

// scoreFor returns the overall score or a computed component score.
func scoreFor(p schema.ReadinessResult, key schema.ComponentKey) (float64, bool) {
	if key == schema.OverallKey {
		return p.OverallScore, true
	}
	s := p.Components.Get(key)
	return s.Value, s.Computed
}
