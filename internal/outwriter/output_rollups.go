package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// errParquetPeopleOnly is returned for parquet output outside the people view.
var errParquetPeopleOnly = errors.New("parquet output is only supported by the people command")

// WriteDepartmentResults outputs the ranked department rollups, dispatching based on the output format configured.
func WriteDepartmentResults(rollups []schema.RollupResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.EnrichRollups(rollups))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForRollups(w, rollups, fmtFloat, intFmt)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetPeopleOnly
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDepartmentTable(rollups, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// writeDepartmentTable writes department rollups as a table.
func writeDepartmentTable(rollups []schema.RollupResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	headers := []string{"Rank", "Department", "People", "Score", "Label", "Ready"}
	if cfg.Detail {
		headers = append(headers, "Pers", "Cog", "Motiv", "Behav", "Compl", "Conf")
	}
	headers = append(headers, "Top Person")
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := GetMaxTableNameWidth(cfg)
	var data [][]string
	totalPeople := 0
	for i, r := range rollups {
		totalPeople += r.PersonCount
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(r.ID, nameWidth),
			fmt.Sprintf(intFmt, r.PersonCount),
			fmtFloat(r.OverallScore),
			labelFor(r.OverallScore, cfg),
			fmt.Sprintf(intFmt, r.ReadyCount),
		}
		if cfg.Detail {
			for _, key := range schema.AllComponents {
				row = append(row, fmtComponentRollup(r.Components, key, fmtFloat))
			}
			row = append(row, fmt.Sprintf("%.0f%%", r.MeanCompleteness*100), fmtFloat(r.MeanConfidence))
		}
		row = append(row, contract.TruncateText(displayTop(r), nameWidth))
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d departments (people: %d)\n", len(rollups), totalPeople); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Scored as of %s in %v with %d workers. %s\n", cfg.AsOf.Format(contract.DateTimeFormat), duration, cfg.Workers, storeSuffix(cfg)); err != nil {
		return err
	}
	return nil
}

// rollupCSVHeader is shared by the department and organization CSV outputs.
func rollupCSVHeader() []string {
	header := []string{"rank", "id", "person_count", "overall_score", "label", "ready_count", "mean_completeness", "mean_confidence"}
	for _, key := range schema.AllComponents {
		header = append(header, string(key)+"_mean", string(key)+"_count")
	}
	return append(header, "top_person", "top_score")
}

// writeCSVResultsForRollups writes rollups in CSV format.
// A component computed for nobody has an empty mean and a zero count.
func writeCSVResultsForRollups(w io.Writer, rollups []schema.RollupResult, fmtFloat func(float64) string, intFmt string) error {
	return writeCSVWithHeader(w, rollupCSVHeader(), func(cw *csv.Writer) error {
		for i, r := range rollups {
			rec := []string{
				strconv.Itoa(i + 1),
				r.ID,
				fmt.Sprintf(intFmt, r.PersonCount),
				fmtFloat(r.OverallScore),
				schema.GetPlainLabel(r.OverallScore),
				fmt.Sprintf(intFmt, r.ReadyCount),
				strconv.FormatFloat(r.MeanCompleteness, 'f', 2, 64),
				fmtFloat(r.MeanConfidence),
			}
			for _, key := range schema.AllComponents {
				c, ok := r.Components[key]
				if !ok {
					rec = append(rec, "", "0")
					continue
				}
				rec = append(rec, fmtFloat(c.Mean), fmt.Sprintf(intFmt, c.Count))
			}
			rec = append(rec, r.TopPerson, fmtFloat(r.TopScore))
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// organizationView is the JSON shape of the org command.
type organizationView struct {
	AsOf         time.Time              `json:"as_of"`
	Organization schema.RollupResult    `json:"organization"`
	Departments  []schema.RollupResult  `json:"departments"`
	Failures     []schema.PersonFailure `json:"failures"`
}

// WriteOrganizationReport outputs the organization rollup, dispatching based on the output format configured.
func WriteOrganizationReport(report *schema.PopulationReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, organizationView{
				AsOf:         report.AsOf,
				Organization: report.Organization,
				Departments:  report.Departments,
				Failures:     report.Failures,
			})
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForRollups(w, []schema.RollupResult{report.Organization}, fmtFloat, intFmt)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetPeopleOnly
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeOrganizationText(report, cfg, fmtFloat, duration, w)
		}, "Wrote text")
	}
}

// writeOrganizationText prints the organization summary, component means,
// completeness distribution and rejected people.
func writeOrganizationText(report *schema.PopulationReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, w io.Writer) error {
	org := report.Organization
	fmt.Fprintf(w, "Organization Readiness (as of %s)\n\n", report.AsOf.Format(contract.DateFormat))

	labels := []string{"People:", "Overall:", "Ready:", "Completeness:", "Confidence:", "Top person:"}
	values := []string{
		strconv.Itoa(org.PersonCount),
		fmt.Sprintf("%s (%s)", fmtFloat(org.OverallScore), labelFor(org.OverallScore, cfg)),
		strconv.Itoa(org.ReadyCount),
		fmt.Sprintf("%.0f%%", org.MeanCompleteness*100),
		fmtFloat(org.MeanConfidence),
		displayTop(org),
	}
	maxLabelLen := 0
	for _, label := range labels {
		maxLabelLen = max(maxLabelLen, len(label))
	}
	for i, label := range labels {
		fmt.Fprintf(w, "  %-*s %s\n", maxLabelLen+1, label, values[i])
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Components:")
	for _, key := range schema.AllComponents {
		fmt.Fprintf(w, "  %-13s %s\n", key, fmtComponentRollup(org.Components, key, fmtFloat))
	}
	fmt.Fprintln(w)

	if len(org.CompletenessCounts) > 0 {
		fmt.Fprintln(w, "Data completeness:")
		keys := make([]string, 0, len(org.CompletenessCounts))
		for k := range org.CompletenessCounts {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %d\n", k, org.CompletenessCounts[k])
		}
		fmt.Fprintln(w)
	}

	if err := writeFailures(w, report.Failures); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Scored %d departments in %v with %d workers. %s\n", len(report.Departments), duration, cfg.Workers, storeSuffix(cfg))
	return err
}

const maxFailuresShown = 10

// writeFailures lists people rejected by validation, capped at maxFailuresShown.
func writeFailures(w io.Writer, failures []schema.PersonFailure) error {
	if len(failures) == 0 {
		return nil
	}
	fmt.Fprintf(w, "Rejected people (%d):\n", len(failures))
	for i, f := range failures {
		if i >= maxFailuresShown {
			fmt.Fprintf(w, "  ... and %d more\n", len(failures)-i)
			break
		}
		id := f.PersonID
		if id == "" {
			id = fmt.Sprintf("#%d", f.Index)
		}
		fmt.Fprintf(w, "  - %s: %s\n", id, f.Error)
	}
	_, err := fmt.Fprintln(w)
	return err
}

// fmtComponentRollup renders "mean (count)" or notComputed.
func fmtComponentRollup(components map[schema.ComponentKey]schema.ComponentRollup, key schema.ComponentKey, fmtFloat func(float64) string) string {
	c, ok := components[key]
	if !ok || c.Count == 0 {
		return notComputed
	}
	return fmt.Sprintf("%s (%d)", fmtFloat(c.Mean), c.Count)
}

func displayTop(r schema.RollupResult) string {
	if r.TopPerson == "" {
		return notComputed
	}
	return r.TopPerson
}
