package cmd

import (
	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/spf13/cobra"
)

// peopleCmd ranks individual people by readiness.
var peopleCmd = &cobra.Command{
	Use:   "people [population-file]",
	Short: "Show the top people ranked by readiness score.",
	Long: `Score every person in a population and rank them by overall readiness (0-100).

Each score blends up to four components:
- Personality alignment with the demands of the person's role
- Cognitive readiness observed in gamified learning sessions
- Motivational alignment from the vision board
- Behavioral predictors from the learning record (always computed)

Components without a profile are skipped and the remaining weights are
renormalized, so sparse data lowers confidence rather than the score.

Examples:
  # Rank a population file
  readiness people people.json

  # Try it on 200 generated people
  readiness people --generate 200 --seed 7

  # Show components, weighted breakdown and insights
  readiness people people.yaml --detail --explain --insights

  # Only one department, exported to CSV
  readiness people people.json --department engineering --output csv --output-file eng.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePeople(rootCtx, cfg, runStore); err != nil {
			contract.LogFatal("Cannot score people", err)
		}
	},
}
