package reporting

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// WriteAnalysisJSON writes the analysis report as indented JSON.
func WriteAnalysisJSON(report types.AnalysisReport, path string) error {
	return writeJSON(report, path)
}

// WriteComparisonJSON writes the comparison result as indented JSON.
func WriteComparisonJSON(result types.ComparisonResult, path string) error {
	return writeJSON(result, path)
}

func writeJSON(v interface{}, path string) error {
	if err := EnsureDirectoryExists(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
