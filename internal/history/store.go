// Package history persists finished timer sessions to sqlite so the
// API can serve usage history across daemon restarts.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Session and interval outcome values as stored.
const (
	OutcomeRunning   = "running"
	OutcomeCompleted = "completed"
	OutcomeAborted   = "aborted"
	OutcomeCancelled = "cancelled"
)

// ErrNotFound is returned when a session or interval row does not exist.
var ErrNotFound = errors.New("history: not found")

// Session is one recorded timer session with its intervals.
type Session struct {
	ID         string
	StartedAt  time.Time
	FinishedAt *time.Time
	Outcome    string
	Schedule   []string
	Completed  int
	Intervals  []Interval
}

// Interval is one work or break slot inside a session.
type Interval struct {
	Index         int
	Kind          string
	StartedAt     time.Time
	FinishedAt    *time.Time
	Outcome       string
	PausedSeconds float64
}

// Store records sessions and intervals in a sqlite database.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and applies the schema.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Bus handlers write from separate goroutines; a single connection
	// serializes them and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return s, nil
}

// migrate creates the database schema
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at DATETIME NOT NULL,
			finished_at DATETIME,
			outcome TEXT NOT NULL DEFAULT 'running',
			schedule TEXT NOT NULL,
			completed_intervals INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS intervals (
			session_id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			kind TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			finished_at DATETIME,
			outcome TEXT NOT NULL DEFAULT 'running',
			paused_seconds REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (session_id, idx)
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// StartSession inserts a new session row in the running state.
func (s *Store) StartSession(ctx context.Context, id string, schedule []string, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, started_at, outcome, schedule)
		VALUES (?, ?, ?, ?)
	`, id, startedAt, OutcomeRunning, strings.Join(schedule, ","))
	return err
}

// FinishSession closes a session row with its outcome.
func (s *Store) FinishSession(ctx context.Context, id, outcome string, finishedAt time.Time, completed int) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET finished_at = ?, outcome = ?, completed_intervals = ?
		WHERE id = ?
	`, finishedAt, outcome, completed, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// StartInterval inserts a new interval row in the running state.
func (s *Store) StartInterval(ctx context.Context, sessionID string, index int, kind string, startedAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO intervals (session_id, idx, kind, started_at, outcome)
		VALUES (?, ?, ?, ?, ?)
	`, sessionID, index, kind, startedAt, OutcomeRunning)
	return err
}

// FinishInterval closes an interval row with its outcome.
func (s *Store) FinishInterval(ctx context.Context, sessionID string, index int, outcome string, finishedAt time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE intervals SET finished_at = ?, outcome = ?
		WHERE session_id = ? AND idx = ?
	`, finishedAt, outcome, sessionID, index)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// AddIntervalPause accumulates paused time on an interval row.
func (s *Store) AddIntervalPause(ctx context.Context, sessionID string, index int, pausedSeconds float64) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE intervals SET paused_seconds = paused_seconds + ?
		WHERE session_id = ? AND idx = ?
	`, pausedSeconds, sessionID, index)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// RecentSessions returns the most recently started sessions, newest
// first, with their intervals attached.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]*Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, outcome, schedule, completed_intervals
		FROM sessions ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var session Session
		var finishedAt sql.NullTime
		var schedule string

		if err := rows.Scan(&session.ID, &session.StartedAt, &finishedAt,
			&session.Outcome, &schedule, &session.Completed); err != nil {
			return nil, err
		}
		if finishedAt.Valid {
			t := finishedAt.Time
			session.FinishedAt = &t
		}
		if schedule != "" {
			session.Schedule = strings.Split(schedule, ",")
		}

		sessions = append(sessions, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, session := range sessions {
		intervals, err := s.sessionIntervals(ctx, session.ID)
		if err != nil {
			return nil, err
		}
		session.Intervals = intervals
	}

	return sessions, nil
}

func (s *Store) sessionIntervals(ctx context.Context, sessionID string) ([]Interval, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, kind, started_at, finished_at, outcome, paused_seconds
		FROM intervals WHERE session_id = ? ORDER BY idx
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var intervals []Interval
	for rows.Next() {
		var interval Interval
		var finishedAt sql.NullTime

		if err := rows.Scan(&interval.Index, &interval.Kind, &interval.StartedAt,
			&finishedAt, &interval.Outcome, &interval.PausedSeconds); err != nil {
			return nil, err
		}
		if finishedAt.Valid {
			t := finishedAt.Time
			interval.FinishedAt = &t
		}

		intervals = append(intervals, interval)
	}
	return intervals, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
