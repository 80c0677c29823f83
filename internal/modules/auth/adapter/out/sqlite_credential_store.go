package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"climblog/internal/modules/auth/domain"
	authout "climblog/internal/modules/auth/port/out"
	"climblog/internal/platform/clock"
	apperrors "climblog/internal/platform/errors"

	_ "modernc.org/sqlite"
)

// SQLiteCredentialStore keeps the token in a small key-value table so it
// survives restarts of the client.
type SQLiteCredentialStore struct {
	db    *sql.DB
	clock clock.Clock
}

var _ authout.CredentialStore = (*SQLiteCredentialStore)(nil)

func NewSQLiteCredentialStore(dbPath string, clock clock.Clock) (*SQLiteCredentialStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteCredentialStore{db: db, clock: clock}
	if err := store.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteCredentialStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

func (s *SQLiteCredentialStore) Get(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, domain.TokenKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return value, nil
}

func (s *SQLiteCredentialStore) Set(ctx context.Context, token string) error {
	const stmt = `
INSERT INTO kv (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at;
`
	if _, err := s.db.ExecContext(ctx, stmt, domain.TokenKey, token, s.clock.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

func (s *SQLiteCredentialStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, domain.TokenKey); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

func (s *SQLiteCredentialStore) UpdatedAt(ctx context.Context) (time.Time, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM kv WHERE key = ?`, domain.TokenKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, apperrors.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read credential timestamp: %w", err)
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse credential timestamp: %w", err)
	}
	return ts, nil
}

func (s *SQLiteCredentialStore) Close() error {
	return s.db.Close()
}
