package cmd

import (
	"github.com/huangsam/readiness/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the readiness MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents score populations via tools:
score_population, get_departments, generate_population and get_metrics.

Logs go to stderr so that stdout stays reserved for the protocol.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, runStore)
	},
}
