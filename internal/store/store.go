package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db *sqlx.DB
}

// Open creates a Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates tables on first use.
func Open(dsn string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}

	// SQLite has a single writer; one connection serializes all
	// read-modify-write cycles through the pool.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// DB returns the underlying handle for raw queries.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return &StorageError{Op: p, Err: err}
		}
	}
	return nil
}

// initSchema creates the tables if they don't exist.
func initSchema(db *sqlx.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS proficiency_records (
			student_id      TEXT NOT NULL,
			level           TEXT NOT NULL,
			scope_key       TEXT NOT NULL,
			alpha           REAL NOT NULL,
			beta            REAL NOT NULL,
			mean_ability    REAL NOT NULL,
			confidence      REAL NOT NULL,
			sample_count    INTEGER NOT NULL,
			forgetting_rate REAL NOT NULL,
			last_updated    TIMESTAMP NOT NULL,
			PRIMARY KEY (student_id, level, scope_key)
		)`,
		`CREATE TABLE IF NOT EXISTS activity_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			attempt_id TEXT NOT NULL,
			student_id TEXT NOT NULL,
			module_id  TEXT NOT NULL,
			domain     TEXT NOT NULL,
			correct    INTEGER NOT NULL,
			total      INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_events_student
			ON activity_events (student_id, module_id)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return &StorageError{Op: "init schema", Err: err}
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LEXIQ_DB environment variable
// 2. $XDG_DATA_HOME/lexiq/lexiq.db
// 3. ~/.local/share/lexiq/lexiq.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LEXIQ_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "lexiq", "lexiq.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
