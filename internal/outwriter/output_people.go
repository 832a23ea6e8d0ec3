package outwriter

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/parquet"
	"github.com/huangsam/readiness/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WritePeopleResults outputs the ranked people, dispatching based on the output format configured.
func WritePeopleResults(people []schema.ReadinessResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForPeople(w, people)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForPeople(w, people, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("parquet output requires --output-file")
		}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeParquetResultsForPeople(w, people, cfg.AsOf)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePeopleTable(people, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writePeopleTable generates and writes the human-readable table.
func writePeopleTable(people []schema.ReadinessResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Person", "Department", "Score", "Label"}
	if cfg.Detail {
		headers = append(headers, "Pers", "Cog", "Motiv", "Behav", "Compl", "Conf")
	}
	if cfg.Explain {
		headers = append(headers, "Explain")
	}
	if cfg.Insights {
		headers = append(headers, "Insight")
	}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	for i, p := range people {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(displayName(p), nameWidth),
			displayDepartment(p.DepartmentID),
			fmtFloat(p.OverallScore),
			labelFor(p.OverallScore, cfg),
		}
		if cfg.Detail {
			row = append(
				row,
				fmtComponent(p.Components.Personality, fmtFloat, notComputed),
				fmtComponent(p.Components.Cognitive, fmtFloat, notComputed),
				fmtComponent(p.Components.Motivational, fmtFloat, notComputed),
				fmtComponent(p.Components.Behavioral, fmtFloat, notComputed),
				fmt.Sprintf("%.0f%%", p.DataCompleteness*100),
				fmtFloat(p.PredictiveConfidence),
			)
		}
		if cfg.Explain {
			row = append(row, formatTopBreakdown(p.Breakdown))
		}
		if cfg.Insights {
			row = append(row, contract.TruncateText(firstOr(p.Insights, "None"), insightWidth(cfg)))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	ready := 0
	for _, p := range people {
		if schema.GetPlainLabel(p.OverallScore) == schema.ReadyLabel {
			ready++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d people (ready: %d)\n", len(people), ready); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Scored as of %s in %v with %d workers. %s\n", cfg.AsOf.Format(contract.DateTimeFormat), duration, cfg.Workers, storeSuffix(cfg)); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForPeople writes the ranked people in CSV format.
// Components that were not computed are empty cells.
func writeCSVResultsForPeople(w io.Writer, people []schema.ReadinessResult, fmtFloat func(float64) string) error {
	header := []string{
		"rank",
		"person_id",
		"name",
		"department_id",
		"role",
		"overall_score",
		"label",
		"personality",
		"cognitive",
		"motivational",
		"behavioral",
		"data_completeness",
		"predictive_confidence",
		"insights",
		"recommendations",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, p := range people {
			rec := []string{
				strconv.Itoa(i + 1),
				p.PersonID,
				p.Name,
				p.DepartmentID,
				p.Role,
				fmtFloat(p.OverallScore),
				schema.GetPlainLabel(p.OverallScore),
				fmtComponent(p.Components.Personality, fmtFloat, ""),
				fmtComponent(p.Components.Cognitive, fmtFloat, ""),
				fmtComponent(p.Components.Motivational, fmtFloat, ""),
				fmtComponent(p.Components.Behavioral, fmtFloat, ""),
				strconv.FormatFloat(p.DataCompleteness, 'f', 2, 64),
				fmtFloat(p.PredictiveConfidence),
				strings.Join(p.Insights, "|"),
				strings.Join(p.Recommendations, "|"),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForPeople writes the ranked people in JSON format.
func writeJSONResultsForPeople(w io.Writer, people []schema.ReadinessResult) error {
	return writeJSON(w, schema.EnrichPeople(people))
}

// writeParquetResultsForPeople writes the ranked people as person score rows.
// Ad-hoc results are not tied to a stored run, so run_id is 0.
func writeParquetResultsForPeople(w io.Writer, people []schema.ReadinessResult, scoredAt time.Time) error {
	records := make([]schema.PersonScoreRecord, len(people))
	for i, p := range people {
		records[i] = schema.NewPersonScoreRecord(0, p, scoredAt)
	}
	return parquet.Write(w, parquet.ConvertPersonScoreRecords(records))
}

// componentContribution is a component's weighted share of the overall score.
type componentContribution struct {
	Key   schema.ComponentKey
	Value float64
}

const topNComponents = 3

// formatTopBreakdown lists the components contributing most to the overall score.
func formatTopBreakdown(breakdown map[schema.ComponentKey]float64) string {
	var parts []componentContribution
	for k, v := range breakdown {
		if v > 0 {
			parts = append(parts, componentContribution{Key: k, Value: v})
		}
	}
	if len(parts) == 0 {
		return "Not applicable"
	}

	slices.SortFunc(parts, func(a, b componentContribution) int {
		if c := cmp.Compare(math.Abs(b.Value), math.Abs(a.Value)); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})

	names := make([]string, 0, topNComponents)
	for _, p := range parts[:min(len(parts), topNComponents)] {
		names = append(names, string(p.Key))
	}
	return strings.Join(names, " > ")
}

// displayName prefers the person's name over their ID.
func displayName(p schema.ReadinessResult) string {
	if p.Name != "" {
		return p.Name
	}
	return p.PersonID
}

func displayDepartment(id string) string {
	if id == "" {
		return notComputed
	}
	return id
}

func firstOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return items[0]
}
