// Package storage provides SQLite-based persistence for saver session history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Session modes.
const (
	ModeRun     = "run"
	ModePreview = "preview"
	ModeSSH     = "ssh"
)

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session is one finished saver run.
type Session struct {
	ID         int64
	SessionID  string // uuid, generated on save when empty
	Mode       string
	StartedAt  time.Time
	Duration   time.Duration
	Ticks      int64
	Pieces     int64
	Lines      int64
	Wipes      int64
	ExitReason string // "key", "mouse", "signal", "disconnect"
}

// Totals aggregates all recorded sessions.
type Totals struct {
	Sessions int
	Duration time.Duration
	Ticks    int64
	Pieces   int64
	Lines    int64
	Wipes    int64
	LastRun  time.Time
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// Run migrations
	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished session and returns the row ID.
func (s *Store) SaveSession(sess Session) (int64, error) {
	if sess.SessionID == "" {
		sess.SessionID = uuid.NewString()
	}
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO sessions
		 (session_id, mode, started_at, duration_ms, ticks, pieces, lines, wipes, exit_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.SessionID,
		sess.Mode,
		sess.StartedAt.UnixMilli(),
		sess.Duration.Milliseconds(),
		sess.Ticks,
		sess.Pieces,
		sess.Lines,
		sess.Wipes,
		sess.ExitReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, mode, started_at, duration_ms, ticks, pieces, lines, wipes, exit_reason
		 FROM sessions
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var startedMS, durationMS int64
		if err := rows.Scan(
			&sess.ID,
			&sess.SessionID,
			&sess.Mode,
			&startedMS,
			&durationMS,
			&sess.Ticks,
			&sess.Pieces,
			&sess.Lines,
			&sess.Wipes,
			&sess.ExitReason,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sess.StartedAt = time.UnixMilli(startedMS)
		sess.Duration = time.Duration(durationMS) * time.Millisecond
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// Totals returns aggregated statistics over all sessions.
func (s *Store) Totals() (*Totals, error) {
	t := &Totals{}
	var durationMS int64
	var lastRun sql.NullInt64

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(duration_ms), 0), COALESCE(SUM(ticks), 0),
		        COALESCE(SUM(pieces), 0), COALESCE(SUM(lines), 0), COALESCE(SUM(wipes), 0),
		        MAX(started_at)
		 FROM sessions`,
	).Scan(&t.Sessions, &durationMS, &t.Ticks, &t.Pieces, &t.Lines, &t.Wipes, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get totals: %w", err)
	}

	t.Duration = time.Duration(durationMS) * time.Millisecond
	if lastRun.Valid {
		t.LastRun = time.UnixMilli(lastRun.Int64)
	}
	return t, nil
}

// ClearSessions deletes all recorded sessions.
func (s *Store) ClearSessions() error {
	if _, err := s.db.Exec("DELETE FROM sessions"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}
