// main is the entry point for the readiness CLI.
package main

import (
	"github.com/huangsam/readiness/cmd"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/iostore"
)

func main() {
	defer iostore.CloseStore()
	defer func() {
		if err := cmd.StopProfiling(); err != nil {
			contract.LogWarn("Failed to stop profiling", err)
		}
	}()

	if err := cmd.Execute(); err != nil {
		iostore.CloseStore()
		contract.LogFatal("Command failed", err)
	}
}
