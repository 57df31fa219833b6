package repository

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// DB wraps the sql connection pool shared by the repositories
type DB struct {
	*sql.DB
}

// NewDB opens a Postgres connection and verifies it
func NewDB(databaseURL string) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{DB: db}, nil
}

// EnsureSchema creates the tables used by the repositories if missing
func (db *DB) EnsureSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS trained_models (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			algorithm TEXT NOT NULL,
			accuracy DOUBLE PRECISION NOT NULL,
			precision_score DOUBLE PRECISION NOT NULL,
			recall_score DOUBLE PRECISION NOT NULL,
			f1_score DOUBLE PRECISION NOT NULL,
			loss DOUBLE PRECISION NOT NULL,
			training_time_ms BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS job_events (
			id BIGSERIAL PRIMARY KEY,
			job_id UUID NOT NULL,
			at TIMESTAMPTZ NOT NULL,
			from_status TEXT,
			to_status TEXT NOT NULL,
			reason TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS job_events_job_id_idx ON job_events (job_id, at);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
