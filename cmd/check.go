package cmd

import (
	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd gates program entry on minimum scores.
var checkCmd = &cobra.Command{
	Use:   "check [population-file]",
	Short: "Enforce minimum readiness scores for program entry (exits 1 on violations)",
	Long: `Score a population and require every person to meet minimum scores.

Thresholds apply to the overall score and to each component. A component that
was not computed for a person is not checked for that person.

Thresholds come from the 'thresholds' section of .readiness.yaml or from
--thresholds-override. Keys not given default to 50.

Exit codes:
  0 - every person met every threshold
  1 - at least one violation, or an error

Examples:
  readiness check cohort.json --thresholds-override "overall:60,behavioral:55"
  readiness check cohort.json --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, runStore); err != nil {
			contract.LogFatal("Cannot run readiness check", err)
		}
	},
}
