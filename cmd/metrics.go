package cmd

import (
	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the scoring model.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the scoring components, weights, formulas and tuning in use",
	Long: `Show how readiness is computed with the current configuration.

Custom weights and tuning from .readiness.yaml are reflected in the output.

Examples:
  readiness metrics
  readiness metrics --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, runStore); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
