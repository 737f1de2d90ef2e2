// Package workerpool is the parallel worker pool described in §5.4: used
// by SpatialTree construction, per-node Barnes-Hut force accumulation, and
// the metric transforms' inner loops (PageRank, eccentricity, MCL). Tasks
// are pure functions of their inputs, so the pool is a thin wrapper over
// golang.org/x/sync/errgroup rather than a hand-rolled scheduler.
package workerpool

import (
	"context"
	"os"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"
)

// DefaultSize returns LAYOUT_THREADS from the environment if set and
// positive (§6), otherwise runtime.GOMAXPROCS(0) (hardware concurrency).
func DefaultSize() int {
	if v := os.Getenv("LAYOUT_THREADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return runtime.GOMAXPROCS(0)
}

// Pool bounds the concurrency of ForEachIndex calls to Size
// goroutines at a time.
type Pool struct {
	Size int
}

// New creates a Pool sized by DefaultSize.
func New() *Pool { return &Pool{Size: DefaultSize()} }

// NewSized creates a Pool with an explicit concurrency bound (minimum 1).
func NewSized(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{Size: size}
}

// ForEachIndex runs fn(i) for i in [0,n), bounded to p.Size concurrent
// goroutines, short-circuiting on the first error (including ctx
// cancellation) and returning it. fn must be safe to call concurrently for
// distinct i.
func (p *Pool) ForEachIndex(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Size)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			return fn(gctx, i)
		})
	}
	return g.Wait()
}
