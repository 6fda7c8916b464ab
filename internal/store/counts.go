package store

import (
	"database/sql"
	"fmt"

	"hamming-numbers/internal/hamming"
	"hamming-numbers/internal/primes"
)

// CountKey identifies one cached count.
type CountKey struct {
	Type      int64
	Threshold int64
	Strategy  hamming.Strategy
	Basis     primes.Basis
}

// GetCount returns a cached count. The boolean is false when nothing is stored.
func GetCount(db *sql.DB, key CountKey) (int64, bool, error) {
	query := `SELECT count FROM counts WHERE type = ? AND threshold = ? AND strategy = ? AND basis = ?`

	var count int64
	err := db.QueryRow(query, key.Type, key.Threshold, string(key.Strategy), string(key.Basis)).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to query count: %w", err)
	}

	return count, true, nil
}

// SaveCount stores a count, replacing any previous value for the same key.
func SaveCount(db *sql.DB, key CountKey, count int64) error {
	query := `INSERT OR REPLACE INTO counts (type, threshold, strategy, basis, count) VALUES (?, ?, ?, ?, ?)`

	if _, err := db.Exec(query, key.Type, key.Threshold, string(key.Strategy), string(key.Basis), count); err != nil {
		return fmt.Errorf("failed to save count: %w", err)
	}

	return nil
}
