// Package render draws sweep grids. Renderers only consume the three equally
// shaped matrices of a sweep.Grid; they perform no counting of their own.
package render

import (
	"fmt"

	"hamming-numbers/internal/sweep"
)

// Renderer draws a (type, threshold, count) height field.
type Renderer interface {
	Render(g *sweep.Grid) error
}

// Surface checks that the grid matrices share one shape and hands the grid
// to r.
func Surface(g *sweep.Grid, r Renderer) error {
	if g == nil {
		return fmt.Errorf("no grid to render")
	}
	if err := checkShape(g); err != nil {
		return err
	}
	return r.Render(g)
}

func checkShape(g *sweep.Grid) error {
	rows, cols := g.Shape()
	if len(g.Types) != rows || len(g.Thresholds) != rows {
		return fmt.Errorf("grid rows mismatch: types=%d thresholds=%d counts=%d",
			len(g.Types), len(g.Thresholds), rows)
	}
	for row := 0; row < rows; row++ {
		if len(g.Types[row]) != cols || len(g.Thresholds[row]) != cols || len(g.Counts[row]) != cols {
			return fmt.Errorf("grid row %d has mismatched column counts", row)
		}
	}
	return nil
}
