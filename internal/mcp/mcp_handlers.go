package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/dataset"
	"github.com/huangsam/readiness/internal/mockdata"
	"github.com/huangsam/readiness/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// maxGenerateCount bounds generate_population so a tool call cannot exhaust memory.
const maxGenerateCount = 10000

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.RunStore
}

// scoreView is the score_population payload.
type scoreView struct {
	AsOf         string                           `json:"as_of"`
	People       []schema.EnrichedReadinessResult `json:"people"`
	Organization schema.RollupResult              `json:"organization"`
	Failures     []schema.PersonFailure           `json:"failures"`
}

// score resolves the population from the request and scores it.
func (h *toolHandler) score(ctx context.Context, request mcp.CallToolRequest) (*schema.PopulationReport, *contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	if raw := request.GetString("records_json", ""); raw != "" {
		pop, err := dataset.Decode(strings.NewReader(raw), dataset.JSONFormat)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid records_json: %w", err)
		}
		report, err := core.ScoreDocument(ctx, cfg, h.store, pop)
		return report, cfg, err
	}

	if p := request.GetString("input_path", ""); p != "" {
		cfg.InputPath = p
	}
	if !cfg.HasInput() {
		return nil, nil, errors.New("input_path or records_json is required")
	}
	report, err := core.GetPopulationReport(ctx, cfg, h.store)
	return report, cfg, err
}

func (h *toolHandler) handleScorePopulation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, cfg, err := h.score(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	cfg.Department = request.GetString("department", "")

	view := scoreView{
		AsOf:         report.AsOf.Format(contract.DateTimeFormat),
		People:       schema.EnrichPeople(core.RankedPeople(report, cfg)),
		Organization: report.Organization,
		Failures:     report.Failures,
	}
	jsonData, _ := json.MarshalIndent(view, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDepartments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, cfg, err := h.score(ctx, request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	enriched := schema.EnrichRollups(core.RankedDepartments(report, cfg))
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGeneratePopulation(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	count := request.GetInt("count", 0)
	if count <= 0 || count > maxGenerateCount {
		return mcp.NewToolResultError(fmt.Sprintf("count must be between 1 and %d", maxGenerateCount)), nil
	}
	seed := request.GetInt("seed", 0)
	if seed < 0 {
		return mcp.NewToolResultError("seed must be non-negative"), nil
	}

	pop, err := mockdata.Generate(mockdata.DefaultOptions(count, uint64(seed), h.baseCfg.AsOf))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(pop, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetMetrics(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model := core.BuildMetricsModel(h.baseCfg.Params)
	jsonData, _ := json.MarshalIndent(model, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
