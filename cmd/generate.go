package cmd

import (
	"fmt"
	"strconv"

	"github.com/huangsam/readiness/core"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// generateCmd writes a mock population.
var generateCmd = &cobra.Command{
	Use:   "generate COUNT",
	Short: "Write a deterministic mock population",
	Long: `Generate COUNT synthetic people across a fixed set of departments and roles.

The same --seed always produces the same population. The format follows the
--output-file extension (.yaml/.yml for YAML, JSON otherwise); without a file
the population is written to stdout as JSON.

Examples:
  readiness generate 200 --seed 7 --output-file people.yaml
  readiness generate 50 | readiness people -`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid count %q: %w", args[0], err)
		}
		viper.Set("generate", n)
		return sharedSetup(rootCtx, cmd)
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteGenerate(rootCtx, cfg, runStore); err != nil {
			contract.LogFatal("Cannot generate population", err)
		}
	},
}
