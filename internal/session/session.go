// Package session keeps the bearer token and user profile on the device.
//
// Every operation is fail-soft: storage errors are logged and turned into a
// nil result or a no-op, so callers never handle storage failures.
package session

import (
	"context"
	"encoding/json"
	"log"

	"zift.local/internal/domain"
	"zift.local/internal/store"
)

// Backend is the persistence the session store writes through.
// *store.Store satisfies it.
type Backend interface {
	LoadSession(ctx context.Context) (*store.SessionRecord, error)
	SaveSession(ctx context.Context, rec store.SessionRecord) error
	UpdateSessionToken(ctx context.Context, token string) error
	UpdateSessionUser(ctx context.Context, userJSON []byte) error
	DeleteSession(ctx context.Context) error
}

type Store struct {
	backend Backend
}

func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Get returns the stored session, or nil when none is stored or it cannot be
// read. A stored user that fails to decode is treated as absent.
func (s *Store) Get(ctx context.Context) *domain.Session {
	rec, err := s.backend.LoadSession(ctx)
	if err != nil {
		log.Printf("[session] error retrieving session: %v", err)
		return nil
	}
	if rec == nil || (rec.AccessToken == "" && len(rec.UserJSON) == 0) {
		return nil
	}
	return &domain.Session{
		AccessToken: rec.AccessToken,
		User:        decodeUser(rec.UserJSON),
	}
}

// Set stores token and user in one write.
func (s *Store) Set(ctx context.Context, sess domain.Session) {
	userJSON, err := encodeUser(sess.User)
	if err != nil {
		log.Printf("[session] error encoding user: %v", err)
		return
	}
	if err := s.backend.SaveSession(ctx, store.SessionRecord{
		AccessToken: sess.AccessToken,
		UserJSON:    userJSON,
	}); err != nil {
		log.Printf("[session] error storing session: %v", err)
	}
}

// Clear removes token and user in one write.
func (s *Store) Clear(ctx context.Context) {
	if err := s.backend.DeleteSession(ctx); err != nil {
		log.Printf("[session] error clearing session: %v", err)
	}
}

func (s *Store) SetToken(ctx context.Context, token string) {
	if err := s.backend.UpdateSessionToken(ctx, token); err != nil {
		log.Printf("[session] error storing token: %v", err)
	}
}

// Token returns "" when no token is stored or it cannot be read.
func (s *Store) Token(ctx context.Context) string {
	rec, err := s.backend.LoadSession(ctx)
	if err != nil {
		log.Printf("[session] error retrieving token: %v", err)
		return ""
	}
	if rec == nil {
		return ""
	}
	return rec.AccessToken
}

func (s *Store) RemoveToken(ctx context.Context) {
	if err := s.backend.UpdateSessionToken(ctx, ""); err != nil {
		log.Printf("[session] error removing token: %v", err)
	}
}

func (s *Store) SetUser(ctx context.Context, user *domain.User) {
	userJSON, err := encodeUser(user)
	if err != nil {
		log.Printf("[session] error encoding user: %v", err)
		return
	}
	if err := s.backend.UpdateSessionUser(ctx, userJSON); err != nil {
		log.Printf("[session] error storing user: %v", err)
	}
}

// User returns nil when no user is stored, it cannot be read, or it is
// malformed.
func (s *Store) User(ctx context.Context) *domain.User {
	rec, err := s.backend.LoadSession(ctx)
	if err != nil {
		log.Printf("[session] error retrieving user: %v", err)
		return nil
	}
	if rec == nil {
		return nil
	}
	return decodeUser(rec.UserJSON)
}

func (s *Store) RemoveUser(ctx context.Context) {
	if err := s.backend.UpdateSessionUser(ctx, nil); err != nil {
		log.Printf("[session] error removing user: %v", err)
	}
}

func encodeUser(u *domain.User) ([]byte, error) {
	if u == nil {
		return nil, nil
	}
	return json.Marshal(u)
}

func decodeUser(b []byte) *domain.User {
	if len(b) == 0 {
		return nil
	}
	var u domain.User
	if err := json.Unmarshal(b, &u); err != nil {
		log.Printf("[session] ignoring malformed stored user: %v", err)
		return nil
	}
	return &u
}
