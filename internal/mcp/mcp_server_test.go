package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/readiness/core/algo"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/logger"
	mcp_internal "github.com/huangsam/readiness/internal/mcp"
	"github.com/huangsam/readiness/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recordsJSON = `{
  "as_of": "2025-06-01T00:00:00Z",
  "people": [
    {"person_id": "a", "department_id": "eng", "role": "Manager", "average_completion": 90, "performance_rating": 4.5, "goal_completion_rate": 85},
    {"person_id": "b", "department_id": "eng", "average_completion": 40},
    {"person_id": "c", "department_id": "ops"},
    {"person_id": "d", "department_id": "ops", "average_completion": 60, "goal_completion_rate": 50}
  ]
}`

func TestMain(m *testing.M) {
	logger.SetDefault(logger.NewNop())
	os.Exit(m.Run())
}

func baseConfig() *contract.Config {
	return &contract.Config{
		AsOf:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Workers:      2,
		ResultLimit:  10,
		Precision:    1,
		StoreBackend: schema.NoneBackend,
		Params:       algo.DefaultParams(),
	}
}

func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func textOf(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), nil)

	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		contains string
	}{
		{"score without input", "score_population", map[string]any{}, "input_path or records_json is required"},
		{"departments without input", "get_departments", map[string]any{}, "input_path or records_json is required"},
		{"malformed records", "score_population", map[string]any{"records_json": "{not json"}, "invalid records_json"},
		{"missing file", "score_population", map[string]any{"input_path": "/nonexistent/people.json"}, "scoring failed"},
		{"zero count", "generate_population", map[string]any{"count": 0.0}, "count must be between"},
		{"huge count", "generate_population", map[string]any{"count": 1e9}, "count must be between"},
		{"negative seed", "generate_population", map[string]any{"count": 3.0, "seed": -1.0}, "seed must be non-negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, s, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, textOf(res), tt.contains)
		})
	}
}

func TestMCPServerHandlers_ScorePopulation(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), nil)

	res := callTool(t, s, "score_population", map[string]any{"records_json": recordsJSON})
	require.False(t, res.IsError, textOf(res))

	var view struct {
		AsOf   string `json:"as_of"`
		People []struct {
			Rank     int     `json:"rank"`
			Label    string  `json:"label"`
			PersonID string  `json:"person_id"`
			Overall  float64 `json:"overall_score"`
		} `json:"people"`
		Failures []schema.PersonFailure `json:"failures"`
	}
	require.NoError(t, json.Unmarshal([]byte(textOf(res)), &view))

	require.Len(t, view.People, 3)
	assert.Equal(t, "a", view.People[0].PersonID)
	assert.Equal(t, 1, view.People[0].Rank)
	for i := 1; i < len(view.People); i++ {
		assert.GreaterOrEqual(t, view.People[i-1].Overall, view.People[i].Overall)
	}
	require.Len(t, view.Failures, 1)
	assert.Equal(t, "c", view.Failures[0].PersonID)
}

func TestMCPServerHandlers_ScoreDepartmentFilterAndLimit(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), nil)

	res := callTool(t, s, "score_population", map[string]any{
		"records_json": recordsJSON,
		"department":   "eng",
		"limit":        1.0,
	})
	require.False(t, res.IsError, textOf(res))

	var view struct {
		People []schema.EnrichedReadinessResult `json:"people"`
	}
	require.NoError(t, json.Unmarshal([]byte(textOf(res)), &view))
	require.Len(t, view.People, 1)
	assert.Equal(t, "eng", view.People[0].DepartmentID)
}

func TestMCPServerHandlers_GetDepartmentsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.json")
	require.NoError(t, os.WriteFile(path, []byte(recordsJSON), 0o644))

	s := mcp_internal.NewMCPServer(baseConfig(), nil)
	res := callTool(t, s, "get_departments", map[string]any{"input_path": path})
	require.False(t, res.IsError, textOf(res))

	var rollups []schema.EnrichedRollup
	require.NoError(t, json.Unmarshal([]byte(textOf(res)), &rollups))
	require.Len(t, rollups, 2)
	assert.Equal(t, 1, rollups[0].Rank)
	assert.GreaterOrEqual(t, rollups[0].OverallScore, rollups[1].OverallScore)
}

func TestMCPServerHandlers_GeneratePopulation(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), nil)

	first := callTool(t, s, "generate_population", map[string]any{"count": 5.0, "seed": 42.0})
	second := callTool(t, s, "generate_population", map[string]any{"count": 5.0, "seed": 42.0})
	require.False(t, first.IsError, textOf(first))
	assert.Equal(t, textOf(first), textOf(second), "same seed yields the same population")

	var pop struct {
		People []map[string]any `json:"people"`
	}
	require.NoError(t, json.Unmarshal([]byte(textOf(first)), &pop))
	assert.Len(t, pop.People, 5)
}

func TestMCPServerHandlers_GetMetrics(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(), nil)
	res := callTool(t, s, "get_metrics", nil)
	require.False(t, res.IsError)
	assert.Contains(t, textOf(res), "Readiness Scoring Components")
	assert.Contains(t, textOf(res), string(schema.BehavioralComponent))
}
