package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/readiness/core/algo"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/dataset"
	"github.com/huangsam/readiness/internal/mockdata"
	"github.com/huangsam/readiness/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testAsOf = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func fptr(v float64) *float64 { return &v }

func testConfig() *contract.Config {
	thresholds := make(map[schema.ComponentKey]float64, len(contract.ThresholdKeys))
	for _, key := range contract.ThresholdKeys {
		thresholds[key] = contract.DefaultThreshold
	}
	return &contract.Config{
		AsOf:         testAsOf,
		AsOfFixed:    true,
		Workers:      4,
		ResultLimit:  10,
		Precision:    1,
		Output:       schema.JSONOut,
		StoreBackend: schema.NoneBackend,
		Params:       algo.DefaultParams(),
		Thresholds:   thresholds,
	}
}

// samplePeople has three valid people and one missing its completion.
func samplePeople() []dataset.RawPerson {
	return []dataset.RawPerson{
		{PersonID: "a", DepartmentID: "eng", Role: "Manager", AverageCompletion: fptr(90), PerformanceRating: 4.5, GoalCompletionRate: 85},
		{PersonID: "b", DepartmentID: "eng", AverageCompletion: fptr(40)},
		{PersonID: "c", DepartmentID: "ops"},
		{PersonID: "d", AverageCompletion: fptr(60), GoalCompletionRate: 50},
	}
}

// TestScorePopulation checks ordering, failures and rollups.
func TestScorePopulation(t *testing.T) {
	report, err := ScorePopulation(context.Background(), testConfig(), samplePeople())
	require.NoError(t, err)

	require.Len(t, report.People, 3)
	assert.Equal(t, "a", report.People[0].PersonID)
	assert.Equal(t, "b", report.People[1].PersonID)
	assert.Equal(t, "d", report.People[2].PersonID)

	require.Len(t, report.Failures, 1)
	assert.Equal(t, 2, report.Failures[0].Index)
	assert.Equal(t, "c", report.Failures[0].PersonID)
	assert.Contains(t, report.Failures[0].Error, "average_completion")

	assert.Equal(t, 3, report.Organization.PersonCount)
	require.Len(t, report.Departments, 2)
	assert.Equal(t, "eng", report.Departments[0].ID)
	assert.Equal(t, "unassigned", report.Departments[1].ID)
	assert.True(t, testAsOf.Equal(report.AsOf))
}

// TestScorePopulationEmpty checks the empty population contract.
func TestScorePopulationEmpty(t *testing.T) {
	report, err := ScorePopulation(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	assert.Empty(t, report.People)
	assert.Empty(t, report.Failures)
	assert.Equal(t, 0.0, report.Organization.OverallScore)
}

// TestScorePopulationWorkerIndependence checks results do not depend on the pool size.
func TestScorePopulationWorkerIndependence(t *testing.T) {
	pop, err := mockdata.Generate(mockdata.DefaultOptions(200, 11, testAsOf))
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Workers = 1
	serial, err := ScorePopulation(context.Background(), cfg, pop.People)
	require.NoError(t, err)

	cfg.Workers = 16
	parallel, err := ScorePopulation(context.Background(), cfg, pop.People)
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

// TestScorePopulationCanceled checks cancellation stops the batch.
func TestScorePopulationCanceled(t *testing.T) {
	pop, err := mockdata.Generate(mockdata.DefaultOptions(50, 3, testAsOf))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ScorePopulation(ctx, testConfig(), pop.People)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestScoreAndRecord checks a run is recorded with one row per scored person.
func TestScoreAndRecord(t *testing.T) {
	store := &contract.MockRunStore{}
	store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(7), nil)
	store.On("RecordPersonScores", int64(7), mock.MatchedBy(func(records []schema.PersonScoreRecord) bool {
		return len(records) == 3 && records[1].PersonID == "b" && records[1].PersonalityScore == nil
	})).Return(nil)
	store.On("EndRun", int64(7), mock.Anything, 3, 1).Return(nil)

	report, err := scoreAndRecord(context.Background(), testConfig(), store, samplePeople())
	require.NoError(t, err)
	assert.Len(t, report.People, 3)
	store.AssertExpectations(t)
}

// TestScoreAndRecordBeginFails checks scoring still succeeds without tracking.
func TestScoreAndRecordBeginFails(t *testing.T) {
	store := &contract.MockRunStore{}
	store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(0), assert.AnError)

	report, err := scoreAndRecord(context.Background(), testConfig(), store, samplePeople())
	require.NoError(t, err)
	assert.Len(t, report.People, 3)
	store.AssertNotCalled(t, "RecordPersonScores", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestRunConfigParams checks the stored configuration snapshot.
func TestRunConfigParams(t *testing.T) {
	cfg := testConfig()
	cfg.Generate = 40
	cfg.Seed = 9

	params := runConfigParams(cfg, 40)
	assert.Equal(t, 40, params["generate"])
	assert.Equal(t, uint64(9), params["seed"])
	assert.Equal(t, "2025-06-01T00:00:00Z", params["as_of"])
	assert.NotContains(t, params, "input")
	assert.Len(t, params["tuning"], 18)
}

// TestWithPopulationAsOf checks the precedence of evaluation instants.
func TestWithPopulationAsOf(t *testing.T) {
	docAsOf := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	pop := &dataset.Population{AsOf: &docAsOf}

	cfg := testConfig()
	assert.Same(t, cfg, WithPopulationAsOf(cfg, pop))

	cfg.AsOfFixed = false
	got := WithPopulationAsOf(cfg, pop)
	assert.True(t, docAsOf.Equal(got.AsOf))
	assert.True(t, testAsOf.Equal(cfg.AsOf))

	assert.Same(t, cfg, WithPopulationAsOf(cfg, &dataset.Population{}))
}

// TestLoadPopulation checks each population source.
func TestLoadPopulation(t *testing.T) {
	cfg := testConfig()
	_, err := LoadPopulation(cfg)
	assert.Error(t, err)

	cfg.Generate = 12
	pop, err := LoadPopulation(cfg)
	require.NoError(t, err)
	assert.Len(t, pop.People, 12)

	cfg.Generate = 0
	cfg.InputPath = filepath.Join("..", "internal", "dataset", "testdata", "people.json")
	pop, err = LoadPopulation(cfg)
	require.NoError(t, err)
	assert.Len(t, pop.People, 3)
}

// TestExecutePeople checks the ranked JSON output honors the limit.
func TestExecutePeople(t *testing.T) {
	cfg := testConfig()
	cfg.Generate = 30
	cfg.ResultLimit = 5
	cfg.OutputFile = filepath.Join(t.TempDir(), "people.json")

	require.NoError(t, ExecutePeople(context.Background(), cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var people []schema.EnrichedReadinessResult
	require.NoError(t, json.Unmarshal(data, &people))
	require.Len(t, people, 5)
	assert.Equal(t, 1, people[0].Rank)
	assert.GreaterOrEqual(t, people[0].OverallScore, people[4].OverallScore)
}

// TestExecuteDepartments checks department output is ranked.
func TestExecuteDepartments(t *testing.T) {
	cfg := testConfig()
	cfg.Generate = 60
	cfg.OutputFile = filepath.Join(t.TempDir(), "departments.json")

	require.NoError(t, ExecuteDepartments(context.Background(), cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var rollups []schema.EnrichedRollup
	require.NoError(t, json.Unmarshal(data, &rollups))
	require.NotEmpty(t, rollups)
	for i := 1; i < len(rollups); i++ {
		assert.GreaterOrEqual(t, rollups[i-1].OverallScore, rollups[i].OverallScore)
	}
}

// TestExecuteGenerate checks the written population loads back.
func TestExecuteGenerate(t *testing.T) {
	cfg := testConfig()
	cfg.OutputFile = filepath.Join(t.TempDir(), "people.yaml")
	assert.Error(t, ExecuteGenerate(context.Background(), cfg, nil))

	cfg.Generate = 8
	require.NoError(t, ExecuteGenerate(context.Background(), cfg, nil))

	pop, err := dataset.Load(cfg.OutputFile)
	require.NoError(t, err)
	assert.Len(t, pop.People, 8)
}

// TestExecuteCompare checks compare needs both snapshots.
func TestExecuteCompare(t *testing.T) {
	cfg := testConfig()
	assert.Error(t, ExecuteCompare(context.Background(), cfg, nil))

	dir := t.TempDir()
	base, err := mockdata.Generate(mockdata.DefaultOptions(10, 5, testAsOf))
	require.NoError(t, err)
	target, err := mockdata.Generate(mockdata.DefaultOptions(10, 5, testAsOf))
	require.NoError(t, err)
	target.People = target.People[1:]
	*target.People[0].AverageCompletion = 100

	cfg.CompareMode = true
	cfg.BasePath = filepath.Join(dir, "base.json")
	cfg.TargetPath = filepath.Join(dir, "target.json")
	cfg.OutputFile = filepath.Join(dir, "compare.json")
	writePopulation(t, cfg.BasePath, base)
	writePopulation(t, cfg.TargetPath, target)

	require.NoError(t, ExecuteCompare(context.Background(), cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var result schema.ComparisonResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, 1, result.Summary.TotalRemoved)
}

// TestExecuteMetrics checks the metrics model is written.
func TestExecuteMetrics(t *testing.T) {
	cfg := testConfig()
	cfg.OutputFile = filepath.Join(t.TempDir(), "metrics.json")
	require.NoError(t, ExecuteMetrics(context.Background(), cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var model schema.MetricsRenderModel
	require.NoError(t, json.Unmarshal(data, &model))
	assert.Len(t, model.Components, 4)
}

// TestBuildMetricsModel checks weights follow the params.
func TestBuildMetricsModel(t *testing.T) {
	params := algo.DefaultParams()
	params.Weights[schema.BehavioralComponent] = 0.5

	model := BuildMetricsModel(params)
	require.Len(t, model.Components, 4)
	assert.Equal(t, 0.5, model.Components[3].Weight)
	assert.Equal(t, params.Tuning(), model.Tuning)
	assert.Contains(t, model.Components[0].Formula, "unknown role = 75")
}

func writePopulation(t *testing.T, path string, pop *dataset.Population) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	require.NoError(t, dataset.Write(f, pop, dataset.JSONFormat))
}

// BenchmarkScorePopulation benchmarks the worker pool over a generated population.
func BenchmarkScorePopulation(b *testing.B) {
	pop, err := mockdata.Generate(mockdata.DefaultOptions(1000, 42, testAsOf))
	require.NoError(b, err)
	cfg := testConfig()

	for b.Loop() {
		_, _ = ScorePopulation(context.Background(), cfg, pop.People)
	}
}
