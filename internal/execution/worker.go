package execution

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"trp/internal/config"
)

// WorkerPool parses report files in parallel
type WorkerPool struct {
	config   *config.Config
	runner   *Runner
	progress Progress
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner) *WorkerPool {
	return &WorkerPool{
		config: cfg,
		runner: runner,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Execute parses every file (no fail-fast).
func (wp *WorkerPool) Execute(ctx context.Context, paths []string) ([]Result, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, paths, false)
}

// ExecuteWithOptions parses files with optional fail-fast (stop handing out
// files after the first parse error). Results keep the order of paths;
// files that were never parsed are left out. Every parse error is collected
// into the returned multierror.
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, paths []string, failFast bool) ([]Result, time.Duration, error) {
	if len(paths) == 0 {
		return nil, 0, nil
	}

	queueCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type job struct {
		index int
		path  string
	}
	queue := make(chan job)
	go func() {
		defer close(queue)
		for i, path := range paths {
			select {
			case <-queueCtx.Done():
				return
			case queue <- job{index: i, path: path}:
			}
		}
	}()

	slots := make([]*Result, len(paths))
	var mu sync.Mutex
	var parsed, failed int
	startTime := time.Now()

	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(paths) {
		workerCount = len(paths)
	}

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				if queueCtx.Err() != nil {
					continue
				}
				result := wp.runner.Run(ctx, j.path)

				mu.Lock()
				slots[j.index] = &result
				if result.Success() {
					parsed++
				} else {
					failed++
					if failFast {
						cancel()
					}
				}
				if wp.progress != nil {
					wp.progress.Update(parsed, failed)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}

	var errs *multierror.Error
	results := make([]Result, 0, len(paths))
	for _, slot := range slots {
		if slot == nil {
			continue
		}
		results = append(results, *slot)
		if slot.Err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", slot.Path, slot.Err))
		}
	}

	if err := ctx.Err(); err != nil {
		errs = multierror.Append(errs, err)
	}

	return results, time.Since(startTime), errs.ErrorOrNil()
}
