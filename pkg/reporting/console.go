package reporting

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// DefaultConsoleReporter renders results as rounded tables on stdout.
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter.
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// PrintAnalysis prints the full analysis report for one token.
func (r *DefaultConsoleReporter) PrintAnalysis(report types.AnalysisReport) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("VOLATILITY ANALYSIS: %s", report.Symbol))
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"📊 Observations", report.Volatility.Len()},
		{"⚙️ Lambda", fmt.Sprintf("%.3f", report.Lambda)},
		{"📈 Current Volatility", formatPercent(report.Summary.Current)},
		{"📈 Mean Volatility", formatPercent(report.Summary.Mean)},
		{"📈 Max Volatility", formatPercent(report.Summary.Max)},
		{"📉 Min Volatility", formatPercent(report.Summary.Min)},
	})

	if report.Technicals != nil {
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"📐 SMA(5)", fmt.Sprintf("%.4f", report.Technicals.SMA5)},
			{"📐 SMA(20)", fmt.Sprintf("%.4f", report.Technicals.SMA20)},
			{"📐 RSI(14)", fmt.Sprintf("%.2f", report.Technicals.RSI14)},
			{"📐 MACD", fmt.Sprintf("%.4f", report.Technicals.MACD)},
			{"📐 MACD Signal", fmt.Sprintf("%.4f", report.Technicals.MACDSignal)},
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 22, Align: text.AlignLeft},
		{Number: 2, WidthMin: 14, Align: text.AlignRight},
	})
	t.Render()

	if report.Forecast != nil {
		r.PrintForecast(*report.Forecast)
	}
	if report.Risk != nil {
		r.PrintRisk(*report.Risk)
	}
	if report.Narrative != "" {
		fmt.Println("\n💬 " + report.Narrative)
	}
	fmt.Println()
}

// PrintForecast prints the per-day volatility projection.
func (r *DefaultConsoleReporter) PrintForecast(forecast types.ForecastResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("FORECAST: %s (%d days, %s)", forecast.Symbol, forecast.Horizon, forecast.Policy))
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Day", "Volatility"})

	for i, v := range forecast.Values {
		t.AppendRow(table.Row{i + 1, formatPercent(v)})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
	})
	t.Render()
}

// PrintRisk prints the risk assessment for one token.
func (r *DefaultConsoleReporter) PrintRisk(risk types.RiskReport) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("RISK ASSESSMENT: %s", risk.Symbol))
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"📈 Current Volatility", formatPercent(risk.CurrentVolatility)},
		{fmt.Sprintf("⚠️ VaR (%.0f%%)", risk.Confidence*100), formatPercent(risk.ValueAtRisk)},
		{"⚠️ Expected Shortfall", formatPercent(risk.ExpectedShortfall)},
		{"📊 Trend", string(risk.Trend)},
		{"🚦 Risk Level", strings.ToUpper(string(risk.Level))},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 22, Align: text.AlignLeft},
		{Number: 2, WidthMin: 14, Align: text.AlignRight},
	})
	t.Render()

	for _, rec := range risk.Recommendations {
		fmt.Println("  💡 " + rec)
	}
}

// PrintComparison prints the ranked comparison table and its warnings.
func (r *DefaultConsoleReporter) PrintComparison(result types.ComparisonResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("VOLATILITY COMPARISON (by %s)", result.Statistic))
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Rank", "Symbol", "Current", "Mean", "Max", "Min"})

	for _, entry := range result.Entries {
		t.AppendRow(table.Row{
			entry.Rank,
			entry.Symbol,
			formatPercent(entry.Summary.Current),
			formatPercent(entry.Summary.Mean),
			formatPercent(entry.Summary.Max),
			formatPercent(entry.Summary.Min),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})
	t.Render()

	for _, warning := range result.Warnings {
		fmt.Println("  ⚠️ " + warning)
	}
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
