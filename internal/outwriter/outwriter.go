// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/dataset"
	"github.com/huangsam/readiness/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePeople prints ranked person results using the configured output format.
func (ow *OutWriter) WritePeople(results []schema.ReadinessResult, cfg *contract.Config, duration time.Duration) error {
	return WritePeopleResults(results, cfg, duration)
}

// WriteDepartments prints ranked department rollups using the configured output format.
func (ow *OutWriter) WriteDepartments(results []schema.RollupResult, cfg *contract.Config, duration time.Duration) error {
	return WriteDepartmentResults(results, cfg, duration)
}

// WriteOrganization prints the organization rollup and failures using the configured output format.
func (ow *OutWriter) WriteOrganization(report *schema.PopulationReport, cfg *contract.Config, duration time.Duration) error {
	return WriteOrganizationReport(report, cfg, duration)
}

// WriteComparison prints snapshot comparison results using the configured output format.
func (ow *OutWriter) WriteComparison(result schema.ComparisonResult, cfg *contract.Config, duration time.Duration) error {
	return WriteComparisonResults(result, cfg, duration)
}

// WriteCheck prints the program-readiness gate result using the configured output format.
func (ow *OutWriter) WriteCheck(result schema.CheckResult, cfg *contract.Config, duration time.Duration) error {
	return WriteCheckResult(result, cfg, duration)
}

// WriteMetrics prints scoring definitions using the configured output format.
func (ow *OutWriter) WriteMetrics(model schema.MetricsRenderModel, cfg *contract.Config) error {
	return WriteMetricsDefinitions(model, cfg)
}

// WritePopulation writes a population document to the output file or stdout.
// The encoding follows the output file extension; stdout gets JSON.
func (ow *OutWriter) WritePopulation(pop *dataset.Population, cfg *contract.Config) error {
	format := dataset.FormatForPath(cfg.OutputFile)
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return dataset.Write(w, pop, format)
	}, fmt.Sprintf("Wrote %d people as %s", len(pop.People), format))
}
