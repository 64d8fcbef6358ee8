// Package storage persists named JSON blobs in a local SQLite database.
//
// The tracker core reads and writes whole collections under fixed keys
// (tasks, goals, stats, badges, theme). Reads that fail for any reason
// report absence rather than an error so callers can fall back to
// defaults; writes are best-effort.
package storage

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// Well-known blob keys.
const (
	KeyTasks  = "tasks"
	KeyGoals  = "goals"
	KeyStats  = "stats"
	KeyBadges = "badges"
	KeyTheme  = "theme"
)

// Store is the persistence contract consumed by the tracker. Load reports
// absence (false) on a missing key or any read failure; Save is best-effort
// and its error is logged by the caller, never fatal.
type Store interface {
	Load(key string) ([]byte, bool)
	Save(key string, value []byte) error
	Close() error
}

// DB is the SQLite-backed Store.
type DB struct {
	db     *sql.DB
	logger *slog.Logger
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &DB{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory SQLite store for testing.
func NewMemory() (*DB, error) {
	return New(":memory:", nil)
}

func (s *DB) Close() error {
	return s.db.Close()
}

func (s *DB) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *DB) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS blobs (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// Load returns the blob stored under key, or absence if the key is missing
// or the read fails.
func (s *DB) Load(key string) ([]byte, bool) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		s.logger.Warn("blob read failed", "key", key, "error", err)
		return nil, false
	}
	return value, true
}

// Save upserts the blob stored under key.
func (s *DB) Save(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("save blob %q: %w", key, err)
	}
	return nil
}

// DefaultDBPath returns ~/.config/prodflow/prodflow.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "prodflow", "prodflow.db"), nil
}
