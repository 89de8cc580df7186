package store

import (
	"context"
	"database/sql"
)

type Store struct {
	DB *sql.DB
}

func New(db *sql.DB) *Store { return &Store{DB: db} }

func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS session (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	access_token TEXT NOT NULL DEFAULT '',
	user_json TEXT,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS notion_exports (
	application_id TEXT PRIMARY KEY,
	notion_page_id TEXT NOT NULL,
	exported_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`)
	return err
}
