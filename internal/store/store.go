// Package store provides SQLite persistence for armsight analysis reports.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store represents a SQLite database connection for storing analysis reports.
type Store struct {
	db   *sql.DB
	path string
}

// New creates a new Store with the given database path.
// It opens the database connection, enables foreign keys, and runs migrations.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Reports table - one row per completed analysis run
		`CREATE TABLE IF NOT EXISTS reports (
			id TEXT PRIMARY KEY,
			video_filename TEXT NOT NULL,
			identity TEXT NOT NULL CHECK(identity IN ('LEFT', 'RIGHT')),
			technique_primary TEXT NOT NULL,
			technique_data TEXT NOT NULL DEFAULT '{}',
			risk_data TEXT NOT NULL DEFAULT '[]',
			strength_data TEXT NOT NULL DEFAULT '{}',
			recommendations TEXT NOT NULL DEFAULT '[]',
			frames_analyzed INTEGER NOT NULL DEFAULT 0,
			duration REAL NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Index for listing reports per video
		`CREATE INDEX IF NOT EXISTS idx_reports_video_filename ON reports(video_filename)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
