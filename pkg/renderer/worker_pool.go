package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-pathtracer/pkg/core"
)

// RowFunc renders one row using a sampler owned by that row
type RowFunc func(row int, sampler core.Sampler) error

// WorkerPool runs row tasks on a bounded number of goroutines.
// Every row gets its own sampler seeded from (seed, row), so the output
// does not depend on which worker picks up which row.
type WorkerPool struct {
	numWorkers int
	seed       uint64
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int, seed uint64) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers, seed: seed}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// RowSampler returns the sampler a row is rendered with
func (wp *WorkerPool) RowSampler(row int) core.Sampler {
	return core.NewRandomSampler(wp.seed, uint64(row))
}

// Run calls fn for rows 0..rows-1 and waits for all of them.
// The first error cancels rows that have not started yet and is returned.
// Cancelling ctx has the same effect.
func (wp *WorkerPool) Run(ctx context.Context, rows int, fn RowFunc) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for row := 0; row < rows; row++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(row, wp.RowSampler(row))
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
