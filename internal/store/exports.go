package store

import (
	"context"
	"database/sql"
	"errors"
)

// SaveNotionPageID records the Notion page created for an application.
func (s *Store) SaveNotionPageID(ctx context.Context, applicationID, notionPageID string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO notion_exports (application_id, notion_page_id)
		VALUES (?, ?)
		ON CONFLICT(application_id) DO UPDATE
		SET notion_page_id = excluded.notion_page_id,
		    exported_at = CURRENT_TIMESTAMP`,
		applicationID, notionPageID,
	)
	return err
}

// NotionPageID returns "" when the application was never exported.
func (s *Store) NotionPageID(ctx context.Context, applicationID string) (string, error) {
	var pageID string
	err := s.DB.QueryRowContext(ctx,
		`SELECT notion_page_id FROM notion_exports WHERE application_id = ?`,
		applicationID,
	).Scan(&pageID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return pageID, err
}
