package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
)

// notComputed is shown in place of a component that was not computed.
const notComputed = "-"

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	return writeRows(csvWriter)
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
	return fmtFloat, intFmt
}

// fmtComponent formats a component score, using notComputed when absent.
// CSV callers pass an empty placeholder so the column stays numeric.
func fmtComponent(c schema.ComponentScore, fmtFloat func(float64) string, placeholder string) string {
	if !c.Computed {
		return placeholder
	}
	return fmtFloat(c.Value)
}

// deltaPainters returns the colorizers for positive, negative and zero deltas.
// A positive readiness delta is good news, so it is green.
func deltaPainters(useColors bool) (up, down, flat func(...any) string) {
	if !useColors {
		return fmt.Sprint, fmt.Sprint, fmt.Sprint
	}
	return color.New(color.FgGreen).SprintFunc(),
		color.New(color.FgRed).SprintFunc(),
		color.New(color.FgYellow).SprintFunc()
}

// formatDelta renders a signed delta with an arrow.
func formatDelta(delta float64, precision int, useColors bool) string {
	up, down, flat := deltaPainters(useColors)
	switch {
	case delta > 0:
		return up(fmt.Sprintf("+%.*f ▲", precision, delta))
	case delta < 0:
		return down(fmt.Sprintf("%.*f ▼", precision, delta))
	default:
		return flat(fmt.Sprintf("%.*f", precision, 0.0))
	}
}

// labelFor returns the readiness band, colored when the config asks for it.
func labelFor(score float64, cfg *contract.Config) string {
	if cfg.UseColors {
		return contract.GetColorLabel(score)
	}
	return schema.GetPlainLabel(score)
}

// storeSuffix describes run tracking for the table footers.
func storeSuffix(cfg *contract.Config) string {
	if cfg.StoreBackend == "" || cfg.StoreBackend == schema.NoneBackend {
		return "Run store: none"
	}
	return fmt.Sprintf("Run store: %s", cfg.StoreBackend)
}
