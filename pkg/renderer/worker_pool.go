package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileResult contains the result from rendering a tile
type TileResult struct {
	Tile  *Tile
	Stats RenderStats
}

// WorkerPool runs tile tasks on a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers (0 = use CPU count)
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

// Process renders every tile with render and hands each result to onResult.
// onResult runs on the calling goroutine, one result at a time, in completion order.
// Cancelling ctx stops new tiles from starting; tiles already running finish.
func (wp *WorkerPool) Process(ctx context.Context, tiles []*Tile, render func(*Tile) RenderStats, onResult func(TileResult)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	// Buffered for every tile so workers never block on a slow consumer
	results := make(chan TileResult, len(tiles))
	done := make(chan error, 1)

	go func() {
		for _, tile := range tiles {
			tile := tile // per-iteration copy; go directive lowered to 1.21 for the local toolchain
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results <- TileResult{Tile: tile, Stats: render(tile)}
				return nil
			})
		}
		done <- g.Wait()
		close(results)
	}()

	for result := range results {
		if onResult != nil {
			onResult(result)
		}
	}

	if err := <-done; err != nil {
		return err
	}
	return ctx.Err()
}
