package outwriter

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
)

// maxViolationsShown caps the violations listed per key.
const maxViolationsShown = 5

// WriteCheckResult outputs the program-readiness gate result.
// Text output is concise for CI/CD; JSON carries every violation.
func WriteCheckResult(result schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckText(w, result, cfg, duration)
		}, "Wrote text")
	}
}

func writeCheckText(w io.Writer, result schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	writeCheckHeader(w, result, cfg, duration)
	if result.Passed {
		writeCheckSuccess(w, result, cfg.Precision)
	} else {
		writeCheckFailure(w, result, cfg.Precision)
	}
	return nil
}

// writeCheckHeader prints the common header information for check results.
func writeCheckHeader(w io.Writer, result schema.CheckResult, cfg *contract.Config, duration time.Duration) {
	fmt.Fprintln(w, "Program Readiness Check:")

	thresholds := make([]string, 0, len(result.CheckedKeys))
	for _, key := range result.CheckedKeys {
		thresholds = append(thresholds, fmt.Sprintf("%s=%.1f", key, result.Thresholds[key]))
	}

	source := cfg.InputPath
	if source == "" {
		source = fmt.Sprintf("generated (%d people, seed %d)", cfg.Generate, cfg.Seed)
	}

	labels := []string{"Input:", "As of:", "Thresholds:"}
	values := []string{source, cfg.AsOf.Format(contract.DateTimeFormat), strings.Join(thresholds, ", ")}

	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}
	for i, label := range labels {
		fmt.Fprintf(w, "  %-*s %s\n", maxLabelLen+1, label, values[i])
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Checked %d people in %v", result.TotalPeople, duration)
	if result.TotalFailures > 0 {
		fmt.Fprintf(w, " (%d rejected by validation)", result.TotalFailures)
	}
	fmt.Fprint(w, "\n\n")
}

// writeCheckSuccess prints the lowest and average score observed per key.
func writeCheckSuccess(w io.Writer, result schema.CheckResult, precision int) {
	fmt.Fprintf(w, "✅ All people met the readiness thresholds\n\n")
	fmt.Fprintln(w, "Scores observed:")

	for _, key := range result.CheckedKeys {
		people := result.MinScorePeople[key]
		if len(people) == 0 {
			fmt.Fprintf(w, "  %s: not computed for anyone\n", key)
			continue
		}

		who := people[0]
		if len(people) > 1 {
			who += fmt.Sprintf(" (+%d more)", len(people)-1)
		}
		fmt.Fprintf(w, "  %s: min=%.*f (%s), avg=%.*f\n", key, precision, result.MinScores[key], who, precision, result.AvgScores[key])
	}
}

// writeCheckFailure prints violations grouped by key, lowest scores first.
func writeCheckFailure(w io.Writer, result schema.CheckResult, precision int) {
	people := make(map[string]struct{})
	groups := make(map[schema.ComponentKey][]schema.CheckViolation)
	for _, v := range result.Violations {
		people[v.PersonID] = struct{}{}
		groups[v.Key] = append(groups[v.Key], v)
	}
	fmt.Fprintf(w, "❌ Readiness check failed: %d violation(s) across %d people\n\n", len(result.Violations), len(people))

	for _, key := range result.CheckedKeys {
		violations := groups[key]
		if len(violations) == 0 {
			continue
		}
		slices.SortStableFunc(violations, func(a, b schema.CheckViolation) int {
			return cmp.Compare(a.Score, b.Score)
		})

		fmt.Fprintf(w, "Key: %s (%d violations)\n", key, len(violations))
		for i, v := range violations {
			if i >= maxViolationsShown {
				fmt.Fprintf(w, "  ... and %d more\n", len(violations)-i)
				break
			}
			fmt.Fprintf(w, "  - %s [%s] (score: %.*f < threshold: %.*f)\n", v.PersonID, displayDepartment(v.DepartmentID), precision, v.Score, precision, v.Threshold)
		}
		fmt.Fprintln(w)
	}
}
