// Package state persists validation run history in SQLite.
//
// Each validation run is stored as one row in validation_runs plus one row
// per field comparison in validation_results. The schema is managed with
// embedded goose migrations.
package state

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// Store is a SQLite-backed validation run store.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewStore creates a new run store instance.
// If logger is nil, a discard logger is used.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{logger: logger}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *Store) Open(path string) error {
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open run store: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping run store: %w", err)
	}

	s.db = db
	s.path = path
	s.logger.Debug("run store opened", slog.String("path", path))
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
