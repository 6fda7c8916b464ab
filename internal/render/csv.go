package render

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"hamming-numbers/internal/sweep"
)

// CSVRenderer writes a grid as "type,threshold,count" rows, one per cell in
// row-major order, preceded by a header line.
type CSVRenderer struct {
	Path string
}

// Render implements Renderer.
func (r CSVRenderer) Render(g *sweep.Grid) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"type", "threshold", "count"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	rows, cols := g.Shape()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			record := []string{
				strconv.FormatInt(g.Types[row][col], 10),
				strconv.FormatInt(g.Thresholds[row][col], 10),
				strconv.FormatInt(g.Counts[row][col], 10),
			}
			if err := w.Write(record); err != nil {
				return fmt.Errorf("failed to write csv row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	if err := os.WriteFile(r.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write csv file: %w", err)
	}

	return nil
}

// WriteNumbers writes one number per line to outputPath.
func WriteNumbers(numbers []int64, outputPath string) error {
	var buf bytes.Buffer
	for _, n := range numbers {
		buf.WriteString(strconv.FormatInt(n, 10))
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write numbers file: %w", err)
	}

	return nil
}
