package dynamo

import (
	"context"
	"sync"
)

// Ensemble runs numRuns independent trials of the same run function
// concurrently, each invoked with a distinct seed derived from seedStart.
// The run function owns constructing whatever it simulates; Ensemble only
// handles fan-out and result collection.
type Ensemble struct {
	run       func(seed int64) (*Result, error)
	numRuns   int
	seedStart int64
}

func NewEnsemble(run func(seed int64) (*Result, error), numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{run: run, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = e.run(e.seedStart + int64(idx))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// ParallelFor executes fn over row chunks of [0, n), splitting work across
// a small fixed worker pool when n is large enough to amortize the
// goroutine overhead.
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	numWorkers := 4 // Default
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
