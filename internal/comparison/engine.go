package comparison

import (
	"fmt"
	"sort"
	"time"

	"github.com/volquant/crypto-vol-agent/internal/errors"
	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// Engine aligns volatility series from multiple tokens onto their shared
// timestamps and ranks them by a summary statistic. Ranking output is
// deterministic: tokens are processed in lexicographic order regardless of
// map iteration order, and ties are broken by token symbol.
type Engine struct {
	statistic  types.ComparisonStatistic
	descending bool
	workers    int
}

// NewEngine creates a comparison engine ranking by the given statistic. An
// empty statistic defaults to current volatility, descending.
func NewEngine(statistic types.ComparisonStatistic, descending bool) (*Engine, error) {
	switch statistic {
	case types.CompareByCurrent, types.CompareByMean, types.CompareByMax, types.CompareByMin:
	case "":
		statistic = types.CompareByCurrent
	default:
		return nil, errors.NewInvalidParameter("statistic", string(statistic), "must be current, mean, max or min")
	}
	return &Engine{statistic: statistic, descending: descending, workers: 1}, nil
}

// WithWorkers sets how many goroutines compute per-token summaries. The
// summaries are independent per token, so the worker count never changes the
// numeric result, only the wall time.
func (e *Engine) WithWorkers(workers int) *Engine {
	if workers < 1 {
		workers = 1
	}
	e.workers = workers
	return e
}

// Compare aligns and ranks the given token series. Tokens whose date range
// does not overlap the shared range (or whose series is empty) are excluded
// and named in the result's warnings.
func (e *Engine) Compare(series map[string]types.VolatilitySeries) (types.ComparisonResult, error) {
	if len(series) < 2 {
		return types.ComparisonResult{}, errors.NewInsufficientData("comparison", 2, len(series))
	}

	symbols := make([]string, 0, len(series))
	for symbol := range series {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	aligned, warnings := alignOnSharedTimestamps(symbols, series)
	if len(aligned) < 2 {
		return types.ComparisonResult{}, errors.NewInsufficientData("comparison after alignment", 2, len(aligned))
	}

	entries := e.summarize(aligned)
	e.rank(entries)

	return types.ComparisonResult{
		Statistic:  e.statistic,
		Descending: e.descending,
		Entries:    entries,
		Warnings:   warnings,
	}, nil
}

// alignedSeries is one token's series truncated to the shared timestamps.
type alignedSeries struct {
	symbol string
	series types.VolatilitySeries
}

// alignOnSharedTimestamps intersects the tokens' timestamps, processing
// symbols in the given (sorted) order. A token that would reduce the shared
// set to nothing is excluded with a warning instead of truncating the rest.
func alignOnSharedTimestamps(symbols []string, series map[string]types.VolatilitySeries) ([]alignedSeries, []string) {
	var warnings []string
	var included []string
	var shared map[time.Time]bool

	for _, symbol := range symbols {
		s := series[symbol]
		if s.Len() == 0 {
			warnings = append(warnings, fmt.Sprintf("%s excluded: empty volatility series", symbol))
			continue
		}

		stamps := make(map[time.Time]bool, s.Len())
		for _, p := range s.Points {
			stamps[p.Timestamp] = true
		}

		if shared == nil {
			shared = stamps
			included = append(included, symbol)
			continue
		}

		next := intersect(shared, stamps)
		if len(next) == 0 {
			warnings = append(warnings, fmt.Sprintf("%s excluded: no overlapping date range", symbol))
			continue
		}
		shared = next
		included = append(included, symbol)
	}

	aligned := make([]alignedSeries, 0, len(included))
	for _, symbol := range included {
		s := series[symbol]
		points := make([]types.VolatilityPoint, 0, len(shared))
		for _, p := range s.Points {
			if shared[p.Timestamp] {
				points = append(points, p)
			}
		}
		aligned = append(aligned, alignedSeries{
			symbol: symbol,
			series: types.VolatilitySeries{Symbol: symbol, Annualized: s.Annualized, Points: points},
		})
	}

	return aligned, warnings
}

func intersect(a, b map[time.Time]bool) map[time.Time]bool {
	out := make(map[time.Time]bool)
	for t := range a {
		if b[t] {
			out[t] = true
		}
	}
	return out
}

// rank orders entries by the configured statistic, ties broken by symbol, and
// assigns 1-based ranks.
func (e *Engine) rank(entries []types.ComparisonEntry) {
	sort.Slice(entries, func(i, j int) bool {
		vi := statisticValue(entries[i].Summary, e.statistic)
		vj := statisticValue(entries[j].Summary, e.statistic)
		if vi == vj {
			return entries[i].Symbol < entries[j].Symbol
		}
		if e.descending {
			return vi > vj
		}
		return vi < vj
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

func statisticValue(s types.VolatilitySummary, statistic types.ComparisonStatistic) float64 {
	switch statistic {
	case types.CompareByMean:
		return s.Mean
	case types.CompareByMax:
		return s.Max
	case types.CompareByMin:
		return s.Min
	default:
		return s.Current
	}
}
