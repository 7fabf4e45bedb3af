// Package persistence provides the SQLite results archive. The archive
// is write-only: runs, season results, and final island snapshots are
// recorded for later analysis and never read back into the simulation.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talverin/tradewinds/internal/engine"
)

// DB wraps a SQLite connection for the results archive.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite archive at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		scenario TEXT NOT NULL,
		started_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS seasons (
		run_id TEXT NOT NULL,
		season INTEGER NOT NULL,
		monsoon TEXT NOT NULL,
		attempts INTEGER NOT NULL,
		successes INTEGER NOT NULL,
		success_rate REAL NOT NULL,
		trade INTEGER NOT NULL,
		cultural INTEGER NOT NULL,
		routes INTEGER NOT NULL,
		PRIMARY KEY (run_id, season)
	);

	CREATE TABLE IF NOT EXISTS island_stats (
		run_id TEXT NOT NULL,
		island_id TEXT NOT NULL,
		type TEXT NOT NULL,
		connections INTEGER NOT NULL,
		centrality REAL NOT NULL,
		PRIMARY KEY (run_id, island_id)
	);

	CREATE INDEX IF NOT EXISTS idx_seasons_run ON seasons(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// BeginRun records a new run and returns its id.
func (db *DB) BeginRun(seed int64, scenario string) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		"INSERT INTO runs (id, seed, scenario, started_at) VALUES (?, ?, ?, ?)",
		id, seed, scenario, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// SaveSeason appends one season result to a run.
func (db *DB) SaveSeason(runID string, r engine.SeasonResult) error {
	_, err := db.conn.Exec(`INSERT INTO seasons
		(run_id, season, monsoon, attempts, successes, success_rate, trade, cultural, routes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, r.Season, r.Wind, r.Attempts, r.Successes, r.SuccessRate,
		r.Trade, r.Cultural, r.Routes,
	)
	if err != nil {
		return fmt.Errorf("insert season %d: %w", r.Season, err)
	}
	return nil
}

// SaveSeasons appends a batch of season results to a run.
func (db *DB) SaveSeasons(runID string, results []engine.SeasonResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT INTO seasons
		(run_id, season, monsoon, attempts, successes, success_rate, trade, cultural, routes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range results {
		_, err := stmt.Exec(
			runID, r.Season, r.Wind, r.Attempts, r.Successes, r.SuccessRate,
			r.Trade, r.Cultural, r.Routes,
		)
		if err != nil {
			return fmt.Errorf("insert season %d: %w", r.Season, err)
		}
	}

	return tx.Commit()
}

// SaveIslandStats writes the final per-island snapshot for a run.
// Replaces any earlier snapshot for the same run, so repeated saves
// during shutdown are harmless.
func (db *DB) SaveIslandStats(runID string, islands []engine.IslandStats) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Preparex(`INSERT OR REPLACE INTO island_stats
		(run_id, island_id, type, connections, centrality)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, isl := range islands {
		_, err := stmt.Exec(runID, isl.ID, isl.Type, len(isl.Connections), isl.Centrality)
		if err != nil {
			return fmt.Errorf("insert island %s: %w", isl.ID, err)
		}
	}

	return tx.Commit()
}

// SaveRun archives a completed run in one call: the run row, the whole
// season history, and the final island snapshot.
func (db *DB) SaveRun(sim *engine.Simulation, scenario string) (string, error) {
	id, err := db.BeginRun(sim.Seed(), scenario)
	if err != nil {
		return "", err
	}

	history := sim.History()
	if err := db.SaveSeasons(id, history); err != nil {
		return "", fmt.Errorf("save seasons: %w", err)
	}
	if err := db.SaveIslandStats(id, sim.NetworkStats().Islands); err != nil {
		return "", fmt.Errorf("save island stats: %w", err)
	}

	slog.Info("run archived", "run", id, "seasons", len(history))
	return id, nil
}
