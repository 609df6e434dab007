package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // pure-Go sqlite driver

	"github.com/codeGROOVE-dev/steady/pkg/session"
)

// SQLiteStore keeps sessions in a local SQLite database. Timestamps
// are stored as RFC 3339 UTC strings so that range comparisons work
// lexicographically.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenSQLite opens (or creates) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral store.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	s := &SQLiteStore{db: db, logger: logger}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("sqlite store opened", "path", path)
	return s, nil
}

func (s *SQLiteStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_user_started ON sessions(user_id, started_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("creating sessions table: %w", err)
	}
	return nil
}

// Insert stores a session, replacing any existing row with the same
// id. Ingestion idempotency is this layer's responsibility, not the
// engine's.
func (s *SQLiteStore) Insert(ctx context.Context, sess session.Session) error {
	const stmt = `
INSERT INTO sessions (id, user_id, started_at, ended_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  user_id = excluded.user_id,
  started_at = excluded.started_at,
  ended_at = excluded.ended_at
`
	_, err := s.db.ExecContext(ctx, stmt,
		sess.ID,
		sess.UserID,
		sess.StartedAt.UTC().Format(time.RFC3339Nano),
		sess.EndedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting session %s: %w", sess.ID, err)
	}
	return nil
}

// SessionsForUser returns all sessions for userID started within
// [from, to].
func (s *SQLiteStore) SessionsForUser(ctx context.Context, userID string, from, to time.Time) ([]session.Session, error) {
	const query = `
SELECT id, user_id, started_at, ended_at
FROM sessions
WHERE user_id = ? AND started_at >= ? AND started_at <= ?
ORDER BY started_at
`
	rows, err := s.db.QueryContext(ctx, query,
		userID,
		from.UTC().Format(time.RFC3339Nano),
		to.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("querying sessions for %s: %w", userID, err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Debug("failed to close session rows", "error", closeErr)
		}
	}()

	var sessions []session.Session
	for rows.Next() {
		var (
			sess               session.Session
			startedAt, endedAt string
		)
		if err := rows.Scan(&sess.ID, &sess.UserID, &startedAt, &endedAt); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		if sess.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parsing started_at for session %s: %w", sess.ID, err)
		}
		if sess.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, fmt.Errorf("parsing ended_at for session %s: %w", sess.ID, err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session rows: %w", err)
	}

	s.logger.Debug("sessions fetched", "user_id", userID, "count", len(sessions))
	return sessions, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
