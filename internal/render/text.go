package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"hamming-numbers/internal/sweep"
)

// TextRenderer prints a grid as an aligned table: one row per threshold,
// one column per type.
type TextRenderer struct {
	W io.Writer
}

// Render implements Renderer.
func (r TextRenderer) Render(g *sweep.Grid) error {
	rows, cols := g.Shape()
	if rows == 0 {
		_, err := fmt.Fprintln(r.W, "(empty grid)")
		return err
	}

	tw := tabwriter.NewWriter(r.W, 0, 0, 1, ' ', tabwriter.AlignRight)

	header := make([]string, 0, cols+1)
	header = append(header, "threshold\\type")
	for col := 0; col < cols; col++ {
		header = append(header, fmt.Sprintf("%d", g.Types[0][col]))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for row := 0; row < rows; row++ {
		line := make([]string, 0, cols+1)
		line = append(line, fmt.Sprintf("%d", g.Thresholds[row][0]))
		for col := 0; col < cols; col++ {
			line = append(line, fmt.Sprintf("%d", g.Counts[row][col]))
		}
		fmt.Fprintln(tw, strings.Join(line, "\t")+"\t")
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
