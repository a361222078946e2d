// Package worker provides bounded fan-out for per-document pipeline stages
// and per-domain rate limiting for outbound fetches.
package worker

import (
	"context"
	"sync"
)

// Task is one unit of pipeline work, typically bound to a single document
type Task func(ctx context.Context) error

// Pool runs tasks over a fixed number of workers
type Pool struct {
	workers int
}

// NewPool creates a pool; sizes below 1 are clamped to 1
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all tasks and returns their errors indexed like the input,
// so callers can match failures back to documents. It blocks until every
// started task finishes; tasks not yet started when ctx is canceled report
// ctx.Err().
func (p *Pool) Run(ctx context.Context, tasks []Task) []error {
	if len(tasks) == 0 {
		return nil
	}

	errs := make([]error, len(tasks))
	indices := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				errs[i] = tasks[i](ctx)
			}
		}()
	}

	for i := range tasks {
		indices <- i
	}
	close(indices)
	wg.Wait()

	return errs
}
