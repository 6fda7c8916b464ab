package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const (
	dropTables = `
		DROP TABLE IF EXISTS sweep_cells;
		DROP TABLE IF EXISTS sweeps;
		DROP TABLE IF EXISTS counts;
	`

	createTables = `
		CREATE TABLE IF NOT EXISTS counts (
			type INTEGER NOT NULL,
			threshold INTEGER NOT NULL,
			strategy TEXT NOT NULL,
			basis TEXT NOT NULL,
			count INTEGER NOT NULL,
			PRIMARY KEY (type, threshold, strategy, basis)
		);

		CREATE TABLE IF NOT EXISTS sweeps (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL,
			min_type INTEGER NOT NULL,
			max_type INTEGER NOT NULL,
			min_threshold INTEGER NOT NULL,
			max_threshold INTEGER NOT NULL,
			granularity INTEGER NOT NULL,
			basis TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS sweep_cells (
			sweep_id TEXT NOT NULL,
			row_index INTEGER NOT NULL,
			col_index INTEGER NOT NULL,
			type INTEGER NOT NULL,
			threshold INTEGER NOT NULL,
			count INTEGER NOT NULL,
			FOREIGN KEY (sweep_id) REFERENCES sweeps(id),
			PRIMARY KEY (sweep_id, row_index, col_index)
		);
	`
)

// InitDB opens the SQLite database at dbPath and creates missing tables.
func InitDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the schema if it does not exist yet.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(createTables); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Reset drops every table and recreates an empty schema.
func Reset(db *sql.DB) error {
	if _, err := db.Exec(dropTables); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return Migrate(db)
}
