package cmd

import (
	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/spf13/cobra"
)

// orgCmd prints the organization rollup.
var orgCmd = &cobra.Command{
	Use:   "org [population-file]",
	Short: "Show the organization-wide readiness summary.",
	Long: `Score a population and summarize readiness across the whole organization.

Also lists people whose records failed validation, with the reason. Invalid
people never abort a run; they are excluded from every rollup.

Examples:
  readiness org people.json
  readiness org people.json --output json --output-file org.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOrganization(rootCtx, cfg, runStore); err != nil {
			contract.LogFatal("Cannot score organization", err)
		}
	},
}
