// Package storage provides SQLite implementations of the storage ports.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/dvidx/tempo/internal/ports"
)

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db        *sql.DB
	statsRepo ports.StatsRepository
	stateRepo ports.StateRepository
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance.
func New(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	storage := &sqliteStorage{
		db:        db,
		statsRepo: newStatsRepository(db),
		stateRepo: newStateRepository(db),
	}

	if err := storage.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// NewMemory creates a new in-memory SQLite storage instance for testing.
func NewMemory() (ports.Storage, error) {
	return New(":memory:")
}

// Stats returns the completion ledger repository.
func (s *sqliteStorage) Stats() ports.StatsRepository {
	return s.statsRepo
}

// TimerState returns the persisted snapshot repository.
func (s *sqliteStorage) TimerState() ports.StateRepository {
	return s.stateRepo
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS completions (
		day TEXT PRIMARY KEY,
		count INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS streak (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		current INTEGER NOT NULL DEFAULT 0,
		last_day TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS timer_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		phase TEXT NOT NULL,
		running INTEGER NOT NULL,
		started_at DATETIME,
		ends_at DATETIME,
		remaining_ms INTEGER,
		cycle_count INTEGER NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}
