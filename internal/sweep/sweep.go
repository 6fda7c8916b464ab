package sweep

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"hamming-numbers/internal/hamming"
	"hamming-numbers/internal/primes"
)

// Report progress after this many computed cells.
const progressReportInterval = 25

// Grid holds equally shaped type, threshold and count matrices.
// Rows follow the threshold axis and columns the type axis.
type Grid struct {
	Types      [][]int64 `json:"types"`
	Thresholds [][]int64 `json:"thresholds"`
	Counts     [][]int64 `json:"counts"`
}

// Shape returns the number of rows and columns of the grid.
func (g *Grid) Shape() (rows, cols int) {
	if len(g.Counts) == 0 {
		return 0, 0
	}
	return len(g.Counts), len(g.Counts[0])
}

type sampler struct {
	workers  int
	progress func(string)
	logger   *zap.Logger
}

// Option configures Sample.
type Option func(*sampler)

// WithWorkers sets the worker pool size. Zero or negative uses runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(s *sampler) {
		s.workers = n
	}
}

// WithProgress registers a callback receiving human readable progress messages.
func WithProgress(fn func(string)) Option {
	return func(s *sampler) {
		s.progress = fn
	}
}

// WithLogger sets the logger used for worker diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(s *sampler) {
		if l != nil {
			s.logger = l
		}
	}
}

type cell struct {
	row, col int
}

type cellResult struct {
	cell
	count int64
}

// Sample validates p, builds the (type, threshold) mesh and counts every cell
// with the enumeration strategy. Cells are computed by a pool of workers;
// each prime set is generated once per type and shared read-only.
func Sample(ctx context.Context, p Params, opts ...Option) (*Grid, error) {
	s := &sampler{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	l, err := plan(p)
	if err != nil {
		return nil, err
	}
	types, thresholds := l.types, l.thresholds

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	grid := newGrid(types, thresholds)

	primeSets := make(map[int64][]int64, len(types))
	for _, typ := range types {
		primeSets[typ] = primes.ForType(typ, l.basis)
	}

	s.report(fmt.Sprintf("Sampling %d thresholds x %d types...", len(thresholds), len(types)))

	workerPoolSize := s.workers
	if workerPoolSize <= 0 {
		workerPoolSize = runtime.NumCPU()
	}

	totalCells := len(types) * len(thresholds)
	cells := make(chan cell, totalCells)
	results := make(chan cellResult, workerPoolSize)

	eg, egCtx := errgroup.WithContext(ctx)
	for w := 1; w <= workerPoolSize; w++ {
		eg.Go(func() error {
			return s.sampleWorker(egCtx, w, grid, primeSets, cells, results)
		})
	}

	for row := range thresholds {
		for col := range types {
			cells <- cell{row: row, col: col}
		}
	}
	close(cells)

	// Collect results in a separate goroutine
	done := make(chan struct{})
	go func() {
		defer close(done)
		computed := 0
		for r := range results {
			grid.Counts[r.row][r.col] = r.count
			computed++

			if computed%progressReportInterval == 0 || computed == totalCells {
				s.report(fmt.Sprintf("    Computed %d/%d cells", computed, totalCells))
			}
		}
	}()

	err = eg.Wait()
	close(results)
	<-done

	if err != nil {
		return nil, err
	}

	s.report(fmt.Sprintf("  Sweep complete: %d cells computed", totalCells))
	return grid, nil
}

func (s *sampler) sampleWorker(ctx context.Context, id int, grid *Grid, primeSets map[int64][]int64, cells <-chan cell, results chan<- cellResult) error {
	s.logger.Debug("sweep worker started", zap.Int("worker", id))
	processCount := 0
	for c := range cells {
		if err := ctx.Err(); err != nil {
			return err
		}
		typ := grid.Types[c.row][c.col]
		threshold := grid.Thresholds[c.row][c.col]
		count, err := hamming.EnumerateContext(ctx, primeSets[typ], threshold, nil)
		if err != nil {
			return err
		}
		results <- cellResult{cell: c, count: count}
		processCount++
	}
	s.logger.Debug("sweep worker finished", zap.Int("worker", id), zap.Int("cells", processCount))
	return nil
}

func (s *sampler) report(msg string) {
	if s.progress != nil {
		s.progress(msg)
	}
}

func newGrid(types, thresholds []int64) *Grid {
	g := &Grid{
		Types:      make([][]int64, len(thresholds)),
		Thresholds: make([][]int64, len(thresholds)),
		Counts:     make([][]int64, len(thresholds)),
	}
	for row, threshold := range thresholds {
		g.Types[row] = append([]int64(nil), types...)
		g.Thresholds[row] = make([]int64, len(types))
		for col := range types {
			g.Thresholds[row][col] = threshold
		}
		g.Counts[row] = make([]int64, len(types))
	}
	return g
}
