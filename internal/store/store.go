// Package store persists sweep runs to SQLite so repeated analyses of the
// same dataset can be compared later without rerunning them.
package store

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/velocimetry/velcorr/internal/sweep"
)

// Store wraps the SQLite database holding sweep runs.
type Store struct {
	db *sql.DB
}

// Run describes one recorded sweep.
type Run struct {
	ID               string
	Source           string
	Width            int
	Height           int
	ConversionFactor float64
	CreatedAt        time.Time
}

// Open opens (creating if needed) the results database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			source TEXT,
			width INTEGER,
			height INTEGER,
			conversion_factor DOUBLE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS run_results (
			run_id TEXT,
			radius INTEGER,
			radius_units DOUBLE,
			corr_score DOUBLE,
			n_observed INTEGER,
			n_ge4 INTEGER,
			n_eq8 INTEGER,
			PRIMARY KEY (run_id, radius),
			FOREIGN KEY (run_id) REFERENCES runs(run_id)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores a sweep run with its per-radius results and returns the
// run ID. A missing score is stored as NULL.
func (s *Store) RecordRun(run Run, results []sweep.RadiusResult) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err = tx.Exec(
		"INSERT INTO runs (run_id, source, width, height, conversion_factor, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.Source, run.Width, run.Height, run.ConversionFactor, run.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, res := range results {
		score := sql.NullFloat64{Float64: res.Score, Valid: !math.IsNaN(res.Score)}
		_, err = tx.Exec(
			"INSERT INTO run_results (run_id, radius, radius_units, corr_score, n_observed, n_ge4, n_eq8) VALUES (?, ?, ?, ?, ?, ?, ?)",
			run.ID, res.Radius, res.RadiusUnits, score, res.NObserved, res.NGE4, res.NEQ8,
		)
		if err != nil {
			return "", fmt.Errorf("inserting result for radius %d: %w", res.Radius, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return run.ID, nil
}

// Results returns the recorded per-radius results of a run, radius
// ascending.
func (s *Store) Results(runID string) ([]sweep.RadiusResult, error) {
	rows, err := s.db.Query(
		"SELECT radius, radius_units, corr_score, n_observed, n_ge4, n_eq8 FROM run_results WHERE run_id = ? ORDER BY radius ASC",
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sweep.RadiusResult
	for rows.Next() {
		var res sweep.RadiusResult
		var score sql.NullFloat64
		if err := rows.Scan(&res.Radius, &res.RadiusUnits, &score, &res.NObserved, &res.NGE4, &res.NEQ8); err != nil {
			return nil, err
		}
		if score.Valid {
			res.Score = score.Float64
		} else {
			res.Score = math.NaN()
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// Runs lists recorded runs, most recent first.
func (s *Store) Runs() ([]Run, error) {
	rows, err := s.db.Query(
		"SELECT run_id, source, width, height, conversion_factor, created_at FROM runs ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Source, &r.Width, &r.Height, &r.ConversionFactor, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
