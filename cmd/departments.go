package cmd

import (
	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/spf13/cobra"
)

// departmentsCmd ranks department rollups.
var departmentsCmd = &cobra.Command{
	Use:     "departments [population-file]",
	Aliases: []string{"depts"},
	Short:   "Show departments ranked by mean readiness score.",
	Long: `Score a population and roll scores up by department.

Each rollup reports the mean overall score, how many people are Ready, mean
data completeness and confidence, per-component means (only over people where
the component was computed) and the top person.

People without a department are grouped under "unassigned".

Examples:
  readiness departments people.json
  readiness departments --generate 500 --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDepartments(rootCtx, cfg, runStore); err != nil {
			contract.LogFatal("Cannot score departments", err)
		}
	},
}
