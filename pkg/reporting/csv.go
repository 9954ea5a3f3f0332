package reporting

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// WriteVolatilityCSV writes one row per volatility estimate.
func WriteVolatilityCSV(series types.VolatilitySeries, path string) error {
	if err := EnsureDirectoryExists(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"timestamp", "volatility"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range series.Points {
		row := []string{
			p.Timestamp.UTC().Format(time.RFC3339),
			strconv.FormatFloat(p.Value, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteComparisonCSV writes one row per ranked token.
func WriteComparisonCSV(result types.ComparisonResult, path string) error {
	if err := EnsureDirectoryExists(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"rank", "symbol", "current", "mean", "max", "min"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, entry := range result.Entries {
		row := []string{
			strconv.Itoa(entry.Rank),
			entry.Symbol,
			strconv.FormatFloat(entry.Summary.Current, 'f', -1, 64),
			strconv.FormatFloat(entry.Summary.Mean, 'f', -1, 64),
			strconv.FormatFloat(entry.Summary.Max, 'f', -1, 64),
			strconv.FormatFloat(entry.Summary.Min, 'f', -1, 64),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
