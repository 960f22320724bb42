// Package concurrency implements the bounded-concurrency fan-out
// primitive the researcher stage uses: dispatch in input order, let
// completion happen out of order, assemble results back in input
// order.
package concurrency

import (
	"context"
	"sync"
)

// MapWithConcurrency runs handler(items[i], i) for every item, using
// at most n workers, and returns results aligned to the input order.
// Workers share a single monotonically increasing cursor rather than a
// naive "spawn all, gate with a semaphore" pattern, capping both task
// count and peak memory (spec.md §9). An empty input returns an empty
// output without spawning any worker. If any handler returns an error,
// in-flight handlers are allowed to finish, but MapWithConcurrency
// returns the first error observed and no further items are
// dispatched.
func MapWithConcurrency[I any, O any](ctx context.Context, items []I, n int, handler func(ctx context.Context, item I, index int) (O, error)) ([]O, error) {
	results := make([]O, len(items))
	if len(items) == 0 {
		return results, nil
	}

	workerCount := n
	if workerCount > len(items) {
		workerCount = len(items)
	}
	if workerCount < 1 {
		workerCount = 1
	}

	var (
		cursorMu sync.Mutex
		cursor   int
		errOnce  sync.Once
		firstErr error
	)

	nextIndex := func() (int, bool) {
		cursorMu.Lock()
		defer cursorMu.Unlock()
		if cursor >= len(items) {
			return 0, false
		}
		idx := cursor
		cursor++
		return idx, true
	}

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}
				idx, ok := nextIndex()
				if !ok {
					return
				}
				out, err := handler(ctx, items[idx], idx)
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					cursorMu.Lock()
					cursor = len(items)
					cursorMu.Unlock()
					return
				}
				results[idx] = out
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
