package tsreassemble

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// workItem holds everything a parallel merge worker needs.
type workItem struct {
	index   int
	pending *pendingMerge
}

// MergeFilesParallel merges files using a three-phase pipeline:
//
//	Phase A (serial):   Load, register and hash both files; look up cached merges.
//	Phase B (parallel): Reassemble and print on a worker pool.
//	Phase C (serial):   Store merges in SQLite.
func (e *Engine) MergeFilesParallel(ctx context.Context, paths []string) ([]*MergeResult, error) {
	results := make([]*MergeResult, len(paths))
	var errs []error

	// ---- Phase A: Serial preparation ----
	var items []workItem
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := e.prepare(ctx, path, "")
		if err != nil {
			errs = append(errs, fmt.Errorf("prepare %s: %w", path, err))
			continue
		}
		if p.cached != nil {
			results[i] = e.cachedResult(p)
			continue
		}
		items = append(items, workItem{index: i, pending: p})
	}

	// ---- Phase B: Parallel reassembly ----
	if len(items) > 0 {
		numWorkers := min(runtime.NumCPU(), len(items))
		if numWorkers < 1 {
			numWorkers = 1
		}

		workCh := make(chan workItem, len(items))
		for _, item := range items {
			workCh <- item
		}
		close(workCh)

		type result struct {
			item workItem
			res  *Result
			err  error
		}
		resultCh := make(chan result, len(items))

		var wg sync.WaitGroup
		for range numWorkers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for item := range workCh {
					if err := ctx.Err(); err != nil {
						resultCh <- result{item: item, err: err}
						continue
					}
					res, err := e.reassemble(item.pending)
					resultCh <- result{item: item, res: res, err: err}
				}
			}()
		}

		go func() {
			wg.Wait()
			close(resultCh)
		}()

		// ---- Phase C: Serial commit ----
		for r := range resultCh {
			path := r.item.pending.compiledPath
			if r.err != nil {
				errs = append(errs, fmt.Errorf("reassemble %s: %w", path, r.err))
				continue
			}
			merged, err := e.commit(r.item.pending, r.res)
			if err != nil {
				errs = append(errs, fmt.Errorf("commit %s: %w", path, err))
				continue
			}
			results[r.item.index] = merged
		}
	}

	out := results[:0]
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	if len(errs) > 0 {
		return out, fmt.Errorf("parallel merging had %d error(s): %w", len(errs), errs[0])
	}
	return out, nil
}
