// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the readiness MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.RunStore) *server.MCPServer {
	s := server.NewMCPServer(
		"Readiness Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: score_population ---
	s.AddTool(mcp.NewTool("score_population",
		mcp.WithDescription("Score a population of learners and rank them by program readiness (0-100)."),
		mcp.WithString("input_path", mcp.Description("Path to a JSON or YAML population file.")),
		mcp.WithString("records_json", mcp.Description(`Inline population document: {"as_of": "...", "people": [...]}.`)),
		mcp.WithString("department", mcp.Description("Only return people from this department.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of people returned.")),
	), h.handleScorePopulation)

	// --- 2. Tool: get_departments ---
	s.AddTool(mcp.NewTool("get_departments",
		mcp.WithDescription("Score a population and return department readiness rollups."),
		mcp.WithString("input_path", mcp.Description("Path to a JSON or YAML population file.")),
		mcp.WithString("records_json", mcp.Description("Inline population document.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of departments returned.")),
	), h.handleGetDepartments)

	// --- 3. Tool: generate_population ---
	s.AddTool(mcp.NewTool("generate_population",
		mcp.WithDescription("Generate a deterministic synthetic population for trying out the scorer."),
		mcp.WithNumber("count", mcp.Description("Number of people to generate."), mcp.Required()),
		mcp.WithNumber("seed", mcp.Description("Random seed. The same seed always yields the same people.")),
	), h.handleGeneratePopulation)

	// --- 4. Tool: get_metrics ---
	s.AddTool(mcp.NewTool("get_metrics",
		mcp.WithDescription("Describe the scoring components, weights, formulas and tuning in use."),
	), h.handleGetMetrics)

	return s
}

// StartMCPServer starts the readiness MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.RunStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
