package cmd

import (
	"runtime"

	"github.com/huangsam/readiness/schema"
	"github.com/spf13/cobra"
)

// versionCmd prints build details along with the default model weights, so
// two binaries can be told apart when their scores disagree.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build and scoring model details for readiness.",
	Long: `Print the release version, commit, build date and Go runtime,
followed by the default component weights compiled into this binary.

Attach this output to any report about scores that differ between builds.`,
	Run: func(cmd *cobra.Command, _ []string) {
		details := [][2]string{
			{"Version", version},
			{"Commit", commit},
			{"Built", date},
			{"Runtime", runtime.Version()},
		}
		cmd.Println("readiness CLI")
		for _, d := range details {
			cmd.Printf("  %-8s %s\n", d[0]+":", d[1])
		}

		weights := schema.GetDefaultWeights()
		cmd.Println("Default weights:")
		for _, key := range []schema.ComponentKey{
			schema.PersonalityComponent,
			schema.CognitiveComponent,
			schema.MotivationalComponent,
			schema.BehavioralComponent,
		} {
			cmd.Printf("  %s: %.2f\n", key, weights[key])
		}
	},
}
