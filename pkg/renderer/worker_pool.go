package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// WorkerPool renders tiles on a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A non-positive count uses one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run calls render once per tile and returns the per-tile results in tile
// order. Cancellation is only observed between tiles.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, render func(*Tile) RenderStats) ([]RenderStats, error) {
	results := make([]RenderStats, len(tiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for i, tile := range tiles {
		if gctx.Err() != nil {
			break
		}
		i, tile := i, tile // per-iteration copies (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = render(tile)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The group context is done once Wait returns, so check the caller's
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
