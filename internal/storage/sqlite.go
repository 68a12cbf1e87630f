// Package storage provides SQLite-based persistence for finished matches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store manages the SQLite database connection for match history.
// It is safe for concurrent use; serve mode shares one Store across sessions.
type Store struct {
	db *sqlx.DB
}

// MatchResult is one finished match.
type MatchResult struct {
	ID         int64
	Mode       string // "1v1" or "1vAI"
	LeftScore  int
	RightScore int
	Winner     string // "Left" or "Right"
	Duration   time.Duration
	FinishedAt time.Time
}

// matchRow is the database form of MatchResult. Times are unix milliseconds.
type matchRow struct {
	ID         int64  `db:"id"`
	Mode       string `db:"mode"`
	LeftScore  int    `db:"left_score"`
	RightScore int    `db:"right_score"`
	Winner     string `db:"winner"`
	DurationMS int64  `db:"duration_ms"`
	FinishedAt int64  `db:"finished_at"`
}

func (r matchRow) result() MatchResult {
	return MatchResult{
		ID:         r.ID,
		Mode:       r.Mode,
		LeftScore:  r.LeftScore,
		RightScore: r.RightScore,
		Winner:     r.Winner,
		Duration:   time.Duration(r.DurationMS) * time.Millisecond,
		FinishedAt: time.UnixMilli(r.FinishedAt),
	}
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Sessions in serve mode write concurrently; wait for the lock instead of failing
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
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

// migrate applies the embedded migrations.
// The migrate instance is not closed: that would close the shared *sql.DB.
func (s *Store) migrate() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("cannot read migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(s.db.DB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("cannot create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("cannot create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(m MatchResult) (int64, error) {
	if m.FinishedAt.IsZero() {
		m.FinishedAt = time.Now()
	}

	result, err := s.db.NamedExec(
		`INSERT INTO matches (mode, left_score, right_score, winner, duration_ms, finished_at)
		 VALUES (:mode, :left_score, :right_score, :winner, :duration_ms, :finished_at)`,
		matchRow{
			Mode:       m.Mode,
			LeftScore:  m.LeftScore,
			RightScore: m.RightScore,
			Winner:     m.Winner,
			DurationMS: m.Duration.Milliseconds(),
			FinishedAt: m.FinishedAt.UnixMilli(),
		},
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []matchRow
	err := s.db.Select(&rows,
		`SELECT id, mode, left_score, right_score, winner, duration_ms, finished_at
		 FROM matches
		 ORDER BY finished_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}

	results := make([]MatchResult, 0, len(rows))
	for _, r := range rows {
		results = append(results, r.result())
	}
	return results, nil
}

// ClearMatches deletes the whole history.
func (s *Store) ClearMatches() error {
	if _, err := s.db.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// ModeStats contains win totals for one mode.
type ModeStats struct {
	Mode      string
	Matches   int
	LeftWins  int
	RightWins int
	Played    time.Duration // Total running time
}

// Stats contains aggregated match statistics.
type Stats struct {
	Matches   int
	LeftWins  int
	RightWins int
	ByMode    map[string]*ModeStats
}

// Stats aggregates wins per side and per mode.
func (s *Store) Stats() (*Stats, error) {
	var rows []struct {
		Mode    string `db:"mode"`
		Winner  string `db:"winner"`
		Count   int    `db:"count"`
		TotalMS int64  `db:"total_ms"`
	}
	err := s.db.Select(&rows,
		`SELECT mode, winner, COUNT(*) AS count, COALESCE(SUM(duration_ms), 0) AS total_ms
		 FROM matches
		 GROUP BY mode, winner`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats := &Stats{ByMode: make(map[string]*ModeStats)}
	for _, r := range rows {
		ms, ok := stats.ByMode[r.Mode]
		if !ok {
			ms = &ModeStats{Mode: r.Mode}
			stats.ByMode[r.Mode] = ms
		}
		ms.Matches += r.Count
		ms.Played += time.Duration(r.TotalMS) * time.Millisecond
		stats.Matches += r.Count

		switch r.Winner {
		case "Left":
			ms.LeftWins += r.Count
			stats.LeftWins += r.Count
		case "Right":
			ms.RightWins += r.Count
			stats.RightWins += r.Count
		}
	}

	return stats, nil
}
