// Package storage keeps the Dog Dash run history and best scores in a
// SQLite file through the pure-Go modernc.org/sqlite driver.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// sqliteTime is the layout of CURRENT_TIMESTAMP values.
const sqliteTime = "2006-01-02 15:04:05"

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id    TEXT NOT NULL,
	course     TEXT NOT NULL DEFAULT '',
	score      INTEGER NOT NULL,
	cause      TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

CREATE TABLE IF NOT EXISTS best_scores (
	key        TEXT PRIMARY KEY,
	value      INTEGER NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`

// CauseFinish marks a run that reached the finish line.
const CauseFinish = "finish"

// Store is the run and best-score database. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// ScoreEntry is one finished attempt.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Course    string // Level ID, empty for the endless run
	Score     int
	Cause     string // spike, block, pit, fall or finish
	CreatedAt time.Time
}

// BestEntry is a persisted best score.
type BestEntry struct {
	Key       string
	Value     int
	UpdatedAt time.Time
}

// RunStats aggregates the run history of one mode.
type RunStats struct {
	Runs     int
	Best     int
	Average  float64
	Finished int // Runs that reached a finish line
	LastRun  time.Time
}

// Open opens the database at path, creating the file, its directory and
// the schema as needed. A leading ~ expands to the home directory.
func Open(path string) (*Store, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: expand home: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrate %s: %w", path, err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun records a finished attempt and returns its row ID.
func (s *Store) SaveRun(e ScoreEntry) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO scores (game_id, course, score, cause) VALUES (?, ?, ?, ?)",
		e.GameID, e.Course, e.Score, e.Cause,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save run: %w", err)
	}
	return res.LastInsertId()
}

// TopRuns returns the best limit runs of a mode, highest score first.
// Equal scores keep the order they were played in.
func (s *Store) TopRuns(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, course, score, cause, created_at FROM scores
		 WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: query runs: %w", err)
	}
	defer rows.Close()

	var runs []ScoreEntry
	for rows.Next() {
		var (
			e  ScoreEntry
			at any
		)
		if err := rows.Scan(&e.ID, &e.GameID, &e.Course, &e.Score, &e.Cause, &at); err != nil {
			return nil, fmt.Errorf("storage: scan run: %w", err)
		}
		e.CreatedAt = parseTime(at)
		runs = append(runs, e)
	}
	return runs, rows.Err()
}

// ClearRuns deletes the run history of a mode. Best scores are kept.
func (s *Store) ClearRuns(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: clear runs: %w", err)
	}
	return nil
}

// Stats aggregates the run history of a mode. A mode without runs yields
// zero stats.
func (s *Store) Stats(gameID string) (RunStats, error) {
	var (
		st   RunStats
		last any
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(cause = ?), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		CauseFinish, gameID,
	).Scan(&st.Runs, &st.Best, &st.Average, &st.Finished, &last)
	if err != nil {
		return RunStats{}, fmt.Errorf("storage: stats %s: %w", gameID, err)
	}
	st.LastRun = parseTime(last)
	return st, nil
}

// Causes counts the runs of a mode by what ended them.
func (s *Store) Causes(gameID string) (map[string]int, error) {
	rows, err := s.db.Query(
		"SELECT cause, COUNT(*) FROM scores WHERE game_id = ? GROUP BY cause",
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: query causes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			cause string
			n     int
		)
		if err := rows.Scan(&cause, &n); err != nil {
			return nil, fmt.Errorf("storage: scan cause: %w", err)
		}
		counts[cause] = n
	}
	return counts, rows.Err()
}

// LoadBest returns the best score stored under key, or 0 if there is none.
func (s *Store) LoadBest(key string) (int, error) {
	var value int
	err := s.db.QueryRow("SELECT value FROM best_scores WHERE key = ?", key).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("storage: load best %q: %w", key, err)
	}
	return value, nil
}

// SaveBest stores value under key. A stored value is never lowered, so
// concurrent sessions racing on the same key keep the highest score.
func (s *Store) SaveBest(key string, value int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET
			value = MAX(best_scores.value, excluded.value),
			updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: save best %q: %w", key, err)
	}
	return nil
}

// BestScores lists every persisted best score ordered by key.
func (s *Store) BestScores() ([]BestEntry, error) {
	rows, err := s.db.Query("SELECT key, value, updated_at FROM best_scores ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("storage: query bests: %w", err)
	}
	defer rows.Close()

	var bests []BestEntry
	for rows.Next() {
		var (
			e  BestEntry
			at any
		)
		if err := rows.Scan(&e.Key, &e.Value, &at); err != nil {
			return nil, fmt.Errorf("storage: scan best: %w", err)
		}
		e.UpdatedAt = parseTime(at)
		bests = append(bests, e)
	}
	return bests, rows.Err()
}

// parseTime converts a scanned DATETIME, which the driver may return as
// time.Time or as text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
