package pg

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Open connects to PostgreSQL with the given DSN and ensures the
// media_records schema exists.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create media_records table: %w", err)
	}
	return db, nil
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS media_records (
    id                   TEXT PRIMARY KEY,
    owner                TEXT NOT NULL,
    file_name            TEXT NOT NULL,
    source_location      TEXT NOT NULL,
    storage_path         TEXT NOT NULL DEFAULT '',
    transcription_job_id TEXT NOT NULL DEFAULT '',
    transcript           TEXT NOT NULL DEFAULT '',
    keywords             TEXT NOT NULL DEFAULT '',
    candidate_clips      TEXT NOT NULL DEFAULT '',
    package_link         TEXT NOT NULL DEFAULT '',
    created_at           TIMESTAMPTZ NOT NULL,
    updated_at           TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_media_records_owner ON media_records(owner);
CREATE INDEX IF NOT EXISTS idx_media_records_job ON media_records(transcription_job_id);
`
