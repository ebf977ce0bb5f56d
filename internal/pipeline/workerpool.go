package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// minChunkSize is the smallest number of cells a chunk of a parallel
// section covers, so a tiny mesh doesn't spawn more goroutines than it
// has cells to hand out.
const minChunkSize = 64

// workerCount resolves how many workers a data-parallel section should
// use: maxWorkers if set, else runtime.GOMAXPROCS(0) (spec §5).
func workerCount(maxWorkers int) int {
	if maxWorkers > 0 {
		return maxWorkers
	}
	return runtime.GOMAXPROCS(0)
}

// partitionCells splits the cell id range [0,n) into contiguous chunks and
// runs fn over each chunk concurrently, one goroutine per chunk, via
// errgroup so the first worker error cancels the rest and is returned
// (spec §5 "parallel sections propagate the first worker error"). ctx is
// passed through so fn can check ctx.Err() at chunk boundaries; fn is
// responsible for checking it within a chunk if the chunk itself is large.
func partitionCells(ctx context.Context, n, maxWorkers int, fn func(ctx context.Context, lo, hi int) error) error {
	if n == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	workers := workerCount(maxWorkers)
	chunkSize := (n + workers - 1) / workers
	if chunkSize < minChunkSize {
		chunkSize = minChunkSize
	}

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunkSize {
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		lo, hi := lo, hi
		g.Go(func() error {
			return fn(gctx, lo, hi)
		})
	}
	return g.Wait()
}
