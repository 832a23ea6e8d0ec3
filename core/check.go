package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/outwriter"
)

// osExit is swapped in tests.
var osExit = os.Exit

// ExecuteCheck runs the program-readiness gate.
// Every scored person must meet the overall and per-component minimums; the
// process exits with a non-zero code when any violation is found.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, store contract.RunStore) error {
	start := time.Now()

	builder := NewCheckResultBuilder(ctx, cfg, store)

	if _, err := builder.ValidatePrerequisites(); err != nil {
		return err
	}
	if _, err := builder.RunScoring(); err != nil {
		return err
	}

	if result := builder.GetResult(); result == nil {
		builder.ComputeMetrics().BuildResult()
	}

	result := builder.GetResult()
	if err := outwriter.NewOutWriter().WriteCheck(*result, cfg, time.Since(start)); err != nil {
		return err
	}
	if !result.Passed {
		fmt.Fprintf(os.Stderr, "%d violation(s) found\n", len(result.Violations))
		osExit(1)
	}
	return nil
}
