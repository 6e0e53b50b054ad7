// Package storage keeps a history of finished rounds in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultLimit is used when a query is made with a non-positive limit.
const DefaultLimit = 10

// Store manages the SQLite database connection for round history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// RoundRecord is one finished round.
type RoundRecord struct {
	ID           string
	GameID       string
	Player       string
	Score        int
	RawScore     float64
	Ticks        int
	Pipes        int
	Duration     time.Duration
	NewHighScore bool
	CreatedAt    time.Time
}

// Stats aggregates the stored history of one game.
type Stats struct {
	GameID     string
	Rounds     int
	BestScore  int
	AvgScore   float64
	TotalTicks int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("storage: empty database path")
	}

	// Expand ~ to home directory
	if dbPath[0] == '~' {
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

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS rounds (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			raw_score REAL NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			pipes INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			new_high_score INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(game_id, score DESC);
		CREATE INDEX IF NOT EXISTS idx_rounds_recent ON rounds(game_id, created_at DESC);
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

// SaveRound records a finished round and returns its generated ID.
// ID and CreatedAt on the record are ignored.
func (s *Store) SaveRound(r RoundRecord) (string, error) {
	if r.GameID == "" {
		return "", errors.New("storage: round has no game id")
	}

	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO rounds
		 (id, game_id, player, score, raw_score, ticks, pipes, duration_ms, new_high_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		r.GameID,
		r.Player,
		r.Score,
		r.RawScore,
		r.Ticks,
		r.Pipes,
		r.Duration.Milliseconds(),
		boolToInt(r.NewHighScore),
		s.now().UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}

	return id, nil
}

// TopRounds retrieves the best N rounds for the given game, highest first.
// Equal scores are ordered oldest first.
func (s *Store) TopRounds(gameID string, limit int) ([]RoundRecord, error) {
	return s.queryRounds(
		`WHERE game_id = ? ORDER BY score DESC, seq ASC LIMIT ?`,
		gameID, normalizeLimit(limit),
	)
}

// RecentRounds retrieves the latest N rounds for the given game, newest first.
func (s *Store) RecentRounds(gameID string, limit int) ([]RoundRecord, error) {
	return s.queryRounds(
		`WHERE game_id = ? ORDER BY seq DESC LIMIT ?`,
		gameID, normalizeLimit(limit),
	)
}

func (s *Store) queryRounds(clause string, args ...any) ([]RoundRecord, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, player, score, raw_score, ticks, pipes, duration_ms, new_high_score, created_at
		 FROM rounds `+clause,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []RoundRecord
	for rows.Next() {
		var (
			r          RoundRecord
			durationMs int64
			newHigh    int
			createdAt  int64
		)
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.Player,
			&r.Score,
			&r.RawScore,
			&r.Ticks,
			&r.Pipes,
			&durationMs,
			&newHigh,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.NewHighScore = newHigh != 0
		r.CreatedAt = time.UnixMilli(createdAt)
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rounds, nil
}

// BestScore returns the highest recorded score for the given game.
// Returns 0 if no rounds exist.
func (s *Store) BestScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM rounds WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// GameStats retrieves aggregated statistics for a game.
func (s *Store) GameStats(gameID string) (*Stats, error) {
	stats := &Stats{GameID: gameID}

	var lastPlayed sql.NullInt64
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(ticks), 0), MAX(created_at)
		 FROM rounds WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Rounds, &stats.BestScore, &stats.AvgScore, &stats.TotalTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	if lastPlayed.Valid {
		stats.LastPlayed = time.UnixMilli(lastPlayed.Int64)
	}

	return stats, nil
}

// ClearRounds deletes the history of the given game.
func (s *Store) ClearRounds(gameID string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
