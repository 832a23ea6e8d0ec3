package cmd

import (
	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd diffs two population snapshots.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare readiness between two population snapshots",
	Long: `Score two snapshots of a population and show how each person moved.

For every person the comparison reports the before and after score, the delta,
band changes, completeness changes and per-component deltas. People only in
the target are new; people only in the base are removed.

Compare runs are never recorded in the run store.

Examples:
  readiness compare --base q1.json --target q2.json
  readiness compare --base q1.json --target q2.json --detail --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, runStore); err != nil {
			contract.LogFatal("Cannot compare snapshots", err)
		}
	},
}
