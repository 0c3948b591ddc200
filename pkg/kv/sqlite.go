package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pkgdb "github.com/unowned-ai/moodlog/pkg/db"
)

const (
	getItemStatement = `
	SELECT value FROM kv_items WHERE key = ?
	`

	setItemStatement = `
	INSERT INTO kv_items (key, value) VALUES (?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = unixepoch()
	`

	deleteItemStatement = `
	DELETE FROM kv_items WHERE key = ?
	`
)

// SQLiteStore keeps values in the kv_items table of a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an already upgraded database connection.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenSQLiteStore opens the database at path and brings its schema up to date.
func OpenSQLiteStore(path string, wal bool, syncMode string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("kv: sqlite database path required")
	}
	if !strings.HasPrefix(path, ":memory:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("kv: ensure database directory: %w", err)
		}
	}
	dbConn, err := pkgdb.OpenDBConnection(path, wal, syncMode)
	if err != nil {
		return nil, err
	}
	if err := pkgdb.UpgradeDB(dbConn, path, pkgdb.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to initialize/upgrade database schema for '%s': %w", path, err)
	}
	return NewSQLiteStore(dbConn), nil
}

// DB returns the underlying connection.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, getItemStatement, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("kv: read %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, setItemStatement, key, string(value)); err != nil {
		return fmt.Errorf("kv: write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, deleteItemStatement, key); err != nil {
		return fmt.Errorf("kv: erase %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
