package store

import (
	"context"
	"database/sql"
	"errors"
)

// SessionRecord is the raw persisted session: an opaque token and the user
// profile as stored JSON. Decoding the user is the caller's concern.
type SessionRecord struct {
	AccessToken string
	UserJSON    []byte
}

// LoadSession returns nil, nil when no session row exists.
func (s *Store) LoadSession(ctx context.Context) (*SessionRecord, error) {
	var (
		token string
		user  sql.NullString
	)
	row := s.DB.QueryRowContext(ctx, `SELECT access_token, user_json FROM session WHERE id = 1`)
	switch err := row.Scan(&token, &user); {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		return nil, err
	}
	rec := &SessionRecord{AccessToken: token}
	if user.Valid && user.String != "" {
		rec.UserJSON = []byte(user.String)
	}
	return rec, nil
}

// SaveSession replaces token and user together.
func (s *Store) SaveSession(ctx context.Context, rec SessionRecord) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO session (id, access_token, user_json, updated_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE
		SET access_token = excluded.access_token,
		    user_json = excluded.user_json,
		    updated_at = CURRENT_TIMESTAMP`,
		rec.AccessToken,
		nullableJSON(rec.UserJSON),
	)
	return err
}

// UpdateSessionToken changes only the token, creating the row if needed.
func (s *Store) UpdateSessionToken(ctx context.Context, token string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO session (id, access_token, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE
		SET access_token = excluded.access_token,
		    updated_at = CURRENT_TIMESTAMP`,
		token,
	)
	return err
}

// UpdateSessionUser changes only the user profile, creating the row if needed.
// A nil user clears the stored profile.
func (s *Store) UpdateSessionUser(ctx context.Context, userJSON []byte) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO session (id, user_json, updated_at)
		VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE
		SET user_json = excluded.user_json,
		    updated_at = CURRENT_TIMESTAMP`,
		nullableJSON(userJSON),
	)
	return err
}

func (s *Store) DeleteSession(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM session WHERE id = 1`)
	return err
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
