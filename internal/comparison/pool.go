package comparison

import (
	"sync"

	"github.com/volquant/crypto-vol-agent/pkg/types"
)

// summarize computes per-token summary statistics, fanning out across the
// configured worker count. Each worker writes to its own index, so the output
// is identical to a sequential pass.
func (e *Engine) summarize(aligned []alignedSeries) []types.ComparisonEntry {
	entries := make([]types.ComparisonEntry, len(aligned))

	if e.workers <= 1 || len(aligned) < 2 {
		for i, a := range aligned {
			entries[i] = types.ComparisonEntry{Symbol: a.symbol, Summary: a.series.Summary()}
		}
		return entries
	}

	jobs := make(chan int, len(aligned))
	var wg sync.WaitGroup

	workers := e.workers
	if workers > len(aligned) {
		workers = len(aligned)
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				entries[i] = types.ComparisonEntry{
					Symbol:  aligned[i].symbol,
					Summary: aligned[i].series.Summary(),
				}
			}
		}()
	}

	for i := range aligned {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return entries
}
