package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hamming-numbers/internal/primes"
	"hamming-numbers/internal/sweep"
)

// Sweep is a stored sweep run.
type Sweep struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"createdAt"`
	Params    sweep.Params `json:"params"`
	Grid      *sweep.Grid  `json:"grid,omitempty"`
}

// SaveSweep stores the parameters and every cell of a computed grid and
// returns the new sweep ID.
func SaveSweep(db *sql.DB, p sweep.Params, g *sweep.Grid) (string, error) {
	sweepID := uuid.New().String()

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	basis := p.Basis
	if basis == "" {
		basis = primes.BasisBound
	}

	insertSweepQuery := `INSERT INTO sweeps (id, created_at, min_type, max_type, min_threshold, max_threshold, granularity, basis)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.Exec(insertSweepQuery, sweepID, time.Now().UTC(),
		p.MinType, p.MaxType, p.MinThreshold, p.MaxThreshold, p.Granularity, string(basis)); err != nil {
		return "", fmt.Errorf("failed to insert sweep: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO sweep_cells (sweep_id, row_index, col_index, type, threshold, count) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare cell insert: %w", err)
	}
	defer stmt.Close()

	rows, cols := g.Shape()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if _, err := stmt.Exec(sweepID, row, col, g.Types[row][col], g.Thresholds[row][col], g.Counts[row][col]); err != nil {
				return "", fmt.Errorf("failed to insert sweep cell: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	return sweepID, nil
}

// GetSweep fetches a sweep and its grid. It returns nil, nil when the sweep
// does not exist.
func GetSweep(db *sql.DB, id string) (*Sweep, error) {
	query := `SELECT id, created_at, min_type, max_type, min_threshold, max_threshold, granularity, basis
		FROM sweeps WHERE id = ?`

	s, err := scanSweep(db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil // Sweep not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sweep: %w", err)
	}

	grid, err := loadGrid(db, id)
	if err != nil {
		return nil, err
	}
	s.Grid = grid

	return s, nil
}

// ListSweeps returns every stored sweep, newest first, without grids.
func ListSweeps(db *sql.DB) ([]Sweep, error) {
	query := `SELECT id, created_at, min_type, max_type, min_threshold, max_threshold, granularity, basis
		FROM sweeps ORDER BY created_at DESC, id`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sweeps: %w", err)
	}
	defer rows.Close()

	sweeps := []Sweep{}
	for rows.Next() {
		s, err := scanSweep(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sweep: %w", err)
		}
		sweeps = append(sweeps, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sweeps: %w", err)
	}

	return sweeps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSweep(row rowScanner) (*Sweep, error) {
	var s Sweep
	var basis string
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.Params.MinType, &s.Params.MaxType,
		&s.Params.MinThreshold, &s.Params.MaxThreshold, &s.Params.Granularity, &basis); err != nil {
		return nil, err
	}
	s.Params.Basis = primes.Basis(basis)
	return &s, nil
}

func loadGrid(db *sql.DB, sweepID string) (*sweep.Grid, error) {
	query := `SELECT row_index, col_index, type, threshold, count FROM sweep_cells WHERE sweep_id = ? ORDER BY row_index, col_index`

	rows, err := db.Query(query, sweepID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sweep cells: %w", err)
	}
	defer rows.Close()

	grid := &sweep.Grid{}
	for rows.Next() {
		var row, col int
		var typ, threshold, count int64
		if err := rows.Scan(&row, &col, &typ, &threshold, &count); err != nil {
			return nil, fmt.Errorf("failed to scan sweep cell: %w", err)
		}

		// Cells arrive in row-major order, so a new row always starts at col 0.
		if row == len(grid.Counts) {
			grid.Types = append(grid.Types, []int64{})
			grid.Thresholds = append(grid.Thresholds, []int64{})
			grid.Counts = append(grid.Counts, []int64{})
		}
		if row != len(grid.Counts)-1 || col != len(grid.Counts[row]) {
			return nil, fmt.Errorf("sweep %s has a gap at cell (%d,%d)", sweepID, row, col)
		}

		grid.Types[row] = append(grid.Types[row], typ)
		grid.Thresholds[row] = append(grid.Thresholds[row], threshold)
		grid.Counts[row] = append(grid.Counts[row], count)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sweep cells: %w", err)
	}

	return grid, nil
}
