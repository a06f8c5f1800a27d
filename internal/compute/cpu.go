package compute

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/quasar/internal/quasar"
)

// DefaultMinChunk is the smallest range worth handing to its own goroutine.
const DefaultMinChunk = 4096

type CPUBackend struct {
	workers  int
	minChunk int
}

func NewCPUBackend(workers int) *CPUBackend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &CPUBackend{
		workers:  workers,
		minChunk: DefaultMinChunk,
	}
}

// WithMinChunk overrides the serial cutoff; mostly useful in tests.
func (c *CPUBackend) WithMinChunk(n int) *CPUBackend {
	if n < 1 {
		n = 1
	}
	c.minChunk = n
	return c
}

func (c *CPUBackend) Name() string    { return "cpu" }
func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}
func (c *CPUBackend) Workers() int    { return c.workers }

func (c *CPUBackend) Step(buf *quasar.Buffer, p quasar.StepParams) {
	ParallelFor(buf.Len(), c.minChunk, c.workers, func(start, end int) {
		quasar.StepRange(buf, start, end, p)
	})
}

// ParallelFor splits [0, n) into at most workers contiguous chunks of at
// least minChunk items and returns once every chunk is done.
func ParallelFor(n, minChunk, workers int, fn func(start, end int)) {
	if minChunk < 1 {
		minChunk = 1
	}
	if n <= minChunk || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minChunk < workers {
		workers = n / minChunk
	}
	chunkSize := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		s, e := start, end
		g.Go(func() error {
			fn(s, e)
			return nil
		})
	}
	// chunks never fail; Wait is the end-of-step barrier
	_ = g.Wait()
}
