package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteComparisonResults outputs the comparison, dispatching based on the output format configured.
func WriteComparisonResults(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForComparison(w, result, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetPeopleOnly
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(result, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeComparisonTable writes per-person deltas followed by the summary.
func writeComparisonTable(result schema.ComparisonResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	defer func() { _ = table.Close() }()

	headers := []string{"Rank", "Person", "Department", "Before", "After", "Delta", "Status"}
	if cfg.Detail {
		headers = append(headers, "Δ Compl", "Components")
	}
	headers = append(headers, "Band")
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for i, d := range result.Details {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(d.PersonID, nameWidth),
			displayDepartment(d.DepartmentID),
			fmtFloat(d.BeforeScore),
			fmtFloat(d.AfterScore),
			formatDelta(d.Delta, cfg.Precision, cfg.UseColors),
			string(d.Status),
		}
		if cfg.Detail {
			row = append(row,
				fmt.Sprintf("%+.0f%%", d.DeltaCompleteness*100),
				formatComponentDeltas(d.DeltaComponents, cfg.Precision),
			)
		}
		row = append(row, formatBandChange(d))
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := result.Summary
	if _, err := fmt.Fprintf(writer, "Showing top %d changes\n", len(result.Details)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Net score delta: %.*f, Overall: %.*f -> %.*f\n", cfg.Precision, s.NetScoreDelta, cfg.Precision, s.BeforeOverall, cfg.Precision, s.AfterOverall); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "New people: %d, Removed people: %d, Improved: %d, Declined: %d, Band changes: %d\n", s.TotalNewPeople, s.TotalRemoved, s.TotalImproved, s.TotalDeclined, s.TotalBandChanges); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Comparison completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForComparison writes the comparison details in CSV format.
func writeCSVResultsForComparison(w io.Writer, result schema.ComparisonResult, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"person_id",
		"department_id",
		"before_score",
		"after_score",
		"delta_score",
		"delta_completeness",
		"status",
		"before_label",
		"after_label",
	}
	for _, key := range schema.AllComponents {
		header = append(header, "delta_"+string(key))
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, d := range result.Details {
			row := []string{
				strconv.Itoa(i + 1),
				d.PersonID,
				d.DepartmentID,
				fmtFloat(d.BeforeScore),
				fmtFloat(d.AfterScore),
				fmtFloat(d.Delta),
				strconv.FormatFloat(d.DeltaCompleteness, 'f', 2, 64),
				string(d.Status),
				d.BeforeLabel,
				d.AfterLabel,
			}
			for _, key := range schema.AllComponents {
				if v, ok := d.DeltaComponents[key]; ok {
					row = append(row, fmtFloat(v))
				} else {
					row = append(row, "")
				}
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatBandChange describes the readiness band transition for a person.
func formatBandChange(d schema.ComparisonDetail) string {
	switch d.Status {
	case schema.NewStatus:
		return fmt.Sprintf("New: %s", d.AfterLabel)
	case schema.RemovedStatus:
		return fmt.Sprintf("Removed: %s", d.BeforeLabel)
	}
	if d.BeforeLabel == d.AfterLabel {
		return fmt.Sprintf("%s (stable)", d.AfterLabel)
	}
	return fmt.Sprintf("%s -> %s", d.BeforeLabel, d.AfterLabel)
}

// formatComponentDeltas renders component deltas in canonical order, e.g. "cog +4.0, beh -1.5".
func formatComponentDeltas(deltas map[schema.ComponentKey]float64, precision int) string {
	var parts []string
	for _, key := range schema.AllComponents {
		v, ok := deltas[key]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %+.*f", string(key)[:3], precision, v))
	}
	if len(parts) == 0 {
		return notComputed
	}
	return strings.Join(parts, ", ")
}
