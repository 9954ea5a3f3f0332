package reporting

import (
	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// Package reporting renders analysis results for the console and for files.
// Reporters only format; every number they print was computed upstream.

// ConsoleReporter defines the console output surface.
type ConsoleReporter interface {
	PrintAnalysis(report types.AnalysisReport)
	PrintForecast(forecast types.ForecastResult)
	PrintRisk(risk types.RiskReport)
	PrintComparison(result types.ComparisonResult)
}

// FileReporter defines the file output surface.
type FileReporter interface {
	WriteAnalysisJSON(report types.AnalysisReport, path string) error
	WriteVolatilityCSV(series types.VolatilitySeries, path string) error
	WriteComparisonCSV(result types.ComparisonResult, path string) error
	WriteWorkbookXLSX(report types.AnalysisReport, path string) error
}
