package reporting

import (
	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// DefaultFileReporter implements FileReporter on top of the package-level
// writers.
type DefaultFileReporter struct{}

// NewDefaultFileReporter creates a new file reporter.
func NewDefaultFileReporter() *DefaultFileReporter {
	return &DefaultFileReporter{}
}

// WriteAnalysisJSON writes the analysis report as JSON.
func (r *DefaultFileReporter) WriteAnalysisJSON(report types.AnalysisReport, path string) error {
	return WriteAnalysisJSON(report, path)
}

// WriteVolatilityCSV writes the volatility series as CSV.
func (r *DefaultFileReporter) WriteVolatilityCSV(series types.VolatilitySeries, path string) error {
	return WriteVolatilityCSV(series, path)
}

// WriteComparisonCSV writes the comparison result as CSV.
func (r *DefaultFileReporter) WriteComparisonCSV(result types.ComparisonResult, path string) error {
	return WriteComparisonCSV(result, path)
}

// WriteWorkbookXLSX writes the analysis report as an Excel workbook.
func (r *DefaultFileReporter) WriteWorkbookXLSX(report types.AnalysisReport, path string) error {
	return WriteWorkbookXLSX(report, path)
}
