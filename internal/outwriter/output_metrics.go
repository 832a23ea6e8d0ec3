package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
)

// getDisplayNameForComponent returns the display name with emoji for a component.
func getDisplayNameForComponent(name string) string {
	switch schema.ComponentKey(name) {
	case schema.PersonalityComponent:
		return "🧭 PERSONALITY"
	case schema.CognitiveComponent:
		return "🧠 COGNITIVE"
	case schema.MotivationalComponent:
		return "🎯 MOTIVATIONAL"
	case schema.BehavioralComponent:
		return "📈 BEHAVIORAL"
	default:
		return strings.ToUpper(name)
	}
}

// WriteMetricsDefinitions displays the component weights, formulas and tuning in use.
// This is a static display that does not require a population.
func WriteMetricsDefinitions(model schema.MetricsRenderModel, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, model)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVMetrics(w, model)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMetricsText(w, model)
		}, "Wrote text")
	}
}

// writeMetricsText displays metrics in human-readable text format.
func writeMetricsText(w io.Writer, model schema.MetricsRenderModel) error {
	title := "🎓 " + model.Title
	fmt.Fprintf(w, "%s\n%s\n\n", title, strings.Repeat("=", len([]rune(title))+1))
	fmt.Fprintf(w, "%s\n\n", model.Description)

	for _, c := range model.Components {
		fmt.Fprintf(w, "%s (weight %.2f): %s\n", getDisplayNameForComponent(c.Name), c.Weight, c.Purpose)
		fmt.Fprintf(w, "   Factors: %s\n", strings.Join(c.Factors, ", "))
		fmt.Fprintf(w, "   Formula: %s\n\n", c.Formula)
	}

	if len(model.Aggregation) > 0 {
		fmt.Fprintln(w, "🔗 Aggregation")
		for _, k := range slices.Sorted(maps.Keys(model.Aggregation)) {
			fmt.Fprintf(w, "   %s: %s\n", k, model.Aggregation[k])
		}
		fmt.Fprintln(w)
	}

	if len(model.Tuning) > 0 {
		fmt.Fprintln(w, "⚙️  Tuning")
		keys := slices.Sorted(maps.Keys(model.Tuning))
		width := 0
		for _, k := range keys {
			width = max(width, len(k))
		}
		for _, k := range keys {
			fmt.Fprintf(w, "   %-*s %g\n", width+1, k+":", model.Tuning[k])
		}
	}
	return nil
}

// writeCSVMetrics writes the metrics definitions in CSV format.
func writeCSVMetrics(w io.Writer, model schema.MetricsRenderModel) error {
	header := []string{"component", "weight", "purpose", "factors", "formula"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range model.Components {
			record := []string{
				c.Name,
				fmt.Sprintf("%.2f", c.Weight),
				c.Purpose,
				strings.Join(c.Factors, "|"),
				c.Formula,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
