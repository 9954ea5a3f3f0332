package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// csvTimestampLayouts are tried in order when parsing the timestamp column.
var csvTimestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// CSVProvider reads price series from local CSV files with a header row and
// timestamp,price columns. The symbol is used as the file path stem when the
// provider was constructed with a directory.
type CSVProvider struct {
	dir string
}

// NewCSVProvider creates a CSV provider rooted at dir. A symbol "btc" maps
// to dir/btc.csv.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{dir: dir}
}

// GetName returns the name of the data provider.
func (p *CSVProvider) GetName() string {
	return "CSV"
}

// GetHistoricalPrices loads a series from the symbol's CSV file and returns
// the last days points.
func (p *CSVProvider) GetHistoricalPrices(ctx context.Context, symbol string, days int) (types.PriceSeries, error) {
	path := p.pathFor(symbol)
	file, err := os.Open(path)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("failed to open price file %s: %w", path, err)
	}
	defer file.Close()

	points, err := readPricePoints(file)
	if err != nil {
		return types.PriceSeries{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})
	if days > 0 && len(points) > days {
		points = points[len(points)-days:]
	}

	series := types.PriceSeries{Symbol: strings.ToUpper(symbol), Points: points}
	if err := ValidateSeries(series); err != nil {
		return types.PriceSeries{}, fmt.Errorf("price file %s is unusable: %w", path, err)
	}
	return series, nil
}

func (p *CSVProvider) pathFor(symbol string) string {
	name := strings.ToLower(symbol)
	if p.dir == "" {
		return name + ".csv"
	}
	return p.dir + string(os.PathSeparator) + name + ".csv"
}

// readPricePoints parses a CSV stream with a header row and at least
// timestamp and price columns, in that order.
func readPricePoints(r io.Reader) ([]types.PricePoint, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var points []types.PricePoint
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error at line %d: %w", line+1, err)
		}
		line++

		if len(record) < 2 {
			return nil, fmt.Errorf("line %d has %d columns, expected at least 2", line, len(record))
		}

		timestamp, err := parseCSVTimestamp(strings.TrimSpace(record[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q at line %d: %w", record[0], line, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q at line %d: %w", record[1], line, err)
		}

		points = append(points, types.PricePoint{Timestamp: timestamp, Price: price})
	}
	return points, nil
}

func parseCSVTimestamp(value string) (time.Time, error) {
	// Unix seconds or milliseconds are accepted alongside date layouts.
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	for _, layout := range csvTimestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format")
}
