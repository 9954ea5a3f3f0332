package reporting

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// excelStyles holds the style IDs used across workbook sheets.
type excelStyles struct {
	Header  int
	Percent int
	Base    int
}

// WriteWorkbookXLSX writes the analysis report as an Excel workbook with one
// sheet per result kind.
func WriteWorkbookXLSX(report types.AnalysisReport, path string) error {
	if err := EnsureDirectoryExists(path); err != nil {
		return err
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const summarySheet = "Summary"
	const volatilitySheet = "Volatility"
	const forecastSheet = "Forecast"
	const riskSheet = "Risk"

	fx.SetSheetName(fx.GetSheetName(0), summarySheet)

	styles, err := createWorkbookStyles(fx)
	if err != nil {
		return err
	}

	if err := writeSummarySheet(fx, summarySheet, report, styles); err != nil {
		return err
	}

	if _, err := fx.NewSheet(volatilitySheet); err != nil {
		return err
	}
	if err := writeVolatilitySheet(fx, volatilitySheet, report.Volatility, styles); err != nil {
		return err
	}

	if report.Forecast != nil {
		if _, err := fx.NewSheet(forecastSheet); err != nil {
			return err
		}
		if err := writeForecastSheet(fx, forecastSheet, *report.Forecast, styles); err != nil {
			return err
		}
	}

	if report.Risk != nil {
		if _, err := fx.NewSheet(riskSheet); err != nil {
			return err
		}
		if err := writeRiskSheet(fx, riskSheet, *report.Risk, styles); err != nil {
			return err
		}
	}

	return fx.SaveAs(path)
}

// WriteComparisonXLSX writes the ranked comparison as a single-sheet workbook.
func WriteComparisonXLSX(result types.ComparisonResult, path string) error {
	if err := EnsureDirectoryExists(path); err != nil {
		return err
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const sheet = "Comparison"
	fx.SetSheetName(fx.GetSheetName(0), sheet)

	styles, err := createWorkbookStyles(fx)
	if err != nil {
		return err
	}

	headers := []interface{}{"Rank", "Symbol", "Current", "Mean", "Max", "Min"}
	if err := writeStyledRow(fx, sheet, 1, headers, styles.Header); err != nil {
		return err
	}
	for i, entry := range result.Entries {
		row := []interface{}{
			entry.Rank,
			entry.Symbol,
			entry.Summary.Current,
			entry.Summary.Mean,
			entry.Summary.Max,
			entry.Summary.Min,
		}
		if err := writeStyledRow(fx, sheet, i+2, row, styles.Percent); err != nil {
			return err
		}
	}

	warningRow := len(result.Entries) + 3
	for i, warning := range result.Warnings {
		cell, _ := excelize.CoordinatesToCellName(1, warningRow+i)
		if err := fx.SetCellValue(sheet, cell, warning); err != nil {
			return err
		}
	}

	return fx.SaveAs(path)
}

func createWorkbookStyles(fx *excelize.File) (excelStyles, error) {
	var styles excelStyles
	var err error

	styles.Header, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.Percent, err = fx.NewStyle(&excelize.Style{
		NumFmt: 10, // 0.00%
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.Base, err = fx.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "left",
		},
	})
	return styles, err
}

func writeSummarySheet(fx *excelize.File, sheet string, report types.AnalysisReport, styles excelStyles) error {
	rows := [][2]interface{}{
		{"Symbol", report.Symbol},
		{"Generated At", report.GeneratedAt.UTC().Format(time.RFC3339)},
		{"Days", report.Days},
		{"Lambda", report.Lambda},
		{"Current Volatility", report.Summary.Current},
		{"Mean Volatility", report.Summary.Mean},
		{"Max Volatility", report.Summary.Max},
		{"Min Volatility", report.Summary.Min},
	}
	if report.Technicals != nil {
		rows = append(rows,
			[2]interface{}{"SMA(5)", report.Technicals.SMA5},
			[2]interface{}{"SMA(20)", report.Technicals.SMA20},
			[2]interface{}{"RSI(14)", report.Technicals.RSI14},
			[2]interface{}{"MACD", report.Technicals.MACD},
			[2]interface{}{"MACD Signal", report.Technicals.MACDSignal},
		)
	}
	if report.Narrative != "" {
		rows = append(rows, [2]interface{}{"Commentary", report.Narrative})
	}

	for i, row := range rows {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := fx.SetCellValue(sheet, labelCell, row[0]); err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, valueCell, row[1]); err != nil {
			return err
		}
	}
	if err := fx.SetColWidth(sheet, "A", "A", 22); err != nil {
		return err
	}
	return fx.SetColWidth(sheet, "B", "B", 40)
}

func writeVolatilitySheet(fx *excelize.File, sheet string, series types.VolatilitySeries, styles excelStyles) error {
	if err := writeStyledRow(fx, sheet, 1, []interface{}{"Timestamp", "Volatility"}, styles.Header); err != nil {
		return err
	}
	for i, p := range series.Points {
		tsCell, _ := excelize.CoordinatesToCellName(1, i+2)
		valCell, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := fx.SetCellValue(sheet, tsCell, p.Timestamp.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, valCell, p.Value); err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, valCell, valCell, styles.Percent); err != nil {
			return err
		}
	}
	return fx.SetColWidth(sheet, "A", "A", 22)
}

func writeForecastSheet(fx *excelize.File, sheet string, forecast types.ForecastResult, styles excelStyles) error {
	if err := writeStyledRow(fx, sheet, 1, []interface{}{"Day", "Volatility"}, styles.Header); err != nil {
		return err
	}
	for i, v := range forecast.Values {
		dayCell, _ := excelize.CoordinatesToCellName(1, i+2)
		valCell, _ := excelize.CoordinatesToCellName(2, i+2)
		if err := fx.SetCellValue(sheet, dayCell, i+1); err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, valCell, v); err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, valCell, valCell, styles.Percent); err != nil {
			return err
		}
	}
	return nil
}

func writeRiskSheet(fx *excelize.File, sheet string, risk types.RiskReport, styles excelStyles) error {
	rows := [][2]interface{}{
		{"Symbol", risk.Symbol},
		{"Confidence", risk.Confidence},
		{"Current Volatility", risk.CurrentVolatility},
		{"Value at Risk", risk.ValueAtRisk},
		{"Expected Shortfall", risk.ExpectedShortfall},
		{"Trend", string(risk.Trend)},
		{"Risk Level", string(risk.Level)},
	}
	for i, row := range rows {
		labelCell, _ := excelize.CoordinatesToCellName(1, i+1)
		valueCell, _ := excelize.CoordinatesToCellName(2, i+1)
		if err := fx.SetCellValue(sheet, labelCell, row[0]); err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, valueCell, row[1]); err != nil {
			return err
		}
	}
	row := len(rows) + 2
	for i, rec := range risk.Recommendations {
		cell, _ := excelize.CoordinatesToCellName(1, row+i)
		if err := fx.SetCellValue(sheet, cell, fmt.Sprintf("Recommendation %d: %s", i+1, rec)); err != nil {
			return err
		}
	}
	return fx.SetColWidth(sheet, "A", "A", 22)
}

func writeStyledRow(fx *excelize.File, sheet string, row int, values []interface{}, style int) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}
