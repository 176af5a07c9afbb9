// Package storage provides SQLite-based persistence for finished game results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// sqliteTime is the layout SQLite's CURRENT_TIMESTAMP produces.
const sqliteTime = "2006-01-02 15:04:05"

// ErrNotFound is returned when a result does not exist.
var ErrNotFound = errors.New("storage: result not found")

// Store manages the SQLite database connection for result history.
type Store struct {
	db *sql.DB
}

// Result is one finished game.
type Result struct {
	ID        string
	Scoring   string // scoring rule the score was computed with
	Score     int
	MaxTile   int
	Moves     int
	Won       bool
	CreatedAt time.Time
}

// Stats aggregates the results recorded for one scoring rule.
type Stats struct {
	Games      int
	Wins       int
	HighScore  int
	AvgScore   float64
	BestTile   int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id TEXT PRIMARY KEY,
			scoring TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(scoring, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished game. An empty ID is filled with a new
// UUID. Returns the stored ID.
func (s *Store) SaveResult(ctx context.Context, r Result) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (id, scoring, score, max_tile, moves, won)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Scoring, r.Score, r.MaxTile, r.Moves, r.Won,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save result: %w", err)
	}

	return r.ID, nil
}

// TopResults retrieves the top N results for a scoring rule, best first.
func (s *Store) TopResults(ctx context.Context, scoring string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, scoring, score, max_tile, moves, won, created_at
		 FROM results
		 WHERE scoring = ?
		 ORDER BY score DESC, created_at ASC
		 LIMIT ?`,
		scoring, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Scoring, &r.Score, &r.MaxTile, &r.Moves, &r.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// ResultByID looks up a single result. It returns ErrNotFound when no
// result has the given ID.
func (s *Store) ResultByID(ctx context.Context, id string) (Result, error) {
	var r Result
	var createdAt any
	err := s.db.QueryRowContext(ctx,
		`SELECT id, scoring, score, max_tile, moves, won, created_at
		 FROM results WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Scoring, &r.Score, &r.MaxTile, &r.Moves, &r.Won, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, ErrNotFound
	}
	if err != nil {
		return Result{}, fmt.Errorf("storage: cannot get result: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// HighScore returns the highest score for a scoring rule.
// Returns 0 if no results exist.
func (s *Store) HighScore(ctx context.Context, scoring string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM results WHERE scoring = ?",
		scoring,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Count returns the number of results recorded for a scoring rule.
func (s *Store) Count(ctx context.Context, scoring string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM results WHERE scoring = ?",
		scoring,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count results: %w", err)
	}
	return n, nil
}

// Stats aggregates all results for a scoring rule.
func (s *Store) Stats(ctx context.Context, scoring string) (Stats, error) {
	var st Stats
	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(MAX(max_tile), 0), MAX(created_at)
		 FROM results WHERE scoring = ?`,
		scoring,
	).Scan(&st.Games, &st.Wins, &st.HighScore, &st.AvgScore, &st.BestTile, &lastPlayed)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	st.LastPlayed = parseTime(lastPlayed)
	return st, nil
}

// ClearResults deletes all results for a scoring rule.
func (s *Store) ClearResults(ctx context.Context, scoring string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE scoring = ?", scoring)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
