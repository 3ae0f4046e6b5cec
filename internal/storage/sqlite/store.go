package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitharbor/internal/constants"
	"github.com/julianstephens/habitharbor/internal/migration"
	"github.com/julianstephens/habitharbor/internal/storage"
	"github.com/julianstephens/habitharbor/migrations"
)

// HistoryLimit is how many previous blobs are kept in kv_history.
const HistoryLimit = 50

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Init opens the database, creating it if needed, and applies migrations.
func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps writes serialized within the process.
	db.SetMaxOpenConns(1)
	s.db = db

	if err := s.runMigrations(); err != nil {
		s.db.Close()
		s.db = nil
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() ([]byte, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM kv_store WHERE key = ?", constants.StorageKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read habits: %w", err)
	}
	return []byte(value), nil
}

// Save replaces the stored blob and moves the previous one into kv_history.
func (s *Store) Save(data []byte) error {
	if err := s.Init(); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO kv_history (key, value, saved_at)
		SELECT key, value, updated_at FROM kv_store WHERE key = ?`, constants.StorageKey); err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		constants.StorageKey, string(data), now); err != nil {
		return fmt.Errorf("failed to save habits: %w", err)
	}

	if _, err := tx.Exec(`
		DELETE FROM kv_history WHERE key = ? AND id NOT IN (
			SELECT id FROM kv_history WHERE key = ? ORDER BY id DESC LIMIT ?
		)`, constants.StorageKey, constants.StorageKey, HistoryLimit); err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}
	return nil
}

// HistoryCount returns how many previous blobs are retained.
func (s *Store) HistoryCount() (int, error) {
	if err := s.Init(); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM kv_history WHERE key = ?", constants.StorageKey).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB exposes the connection for diagnostics and backups.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// ValidateSchema reports whether the database is at the latest schema version.
func (s *Store) ValidateSchema() error {
	if err := s.Init(); err != nil {
		return err
	}
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.SQLite).Check()
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	_, err = migration.NewRunner(s.db, subFS, migration.SQLite).Migrate()
	return err
}
