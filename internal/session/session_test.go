package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zift.local/internal/domain"
	"zift.local/internal/store"
)

func newSQLiteSession(t *testing.T) *Store {
	t.Helper()
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "session.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st := store.New(db)
	require.NoError(t, st.Migrate(context.Background()))
	return New(st)
}

// failingBackend fails every call, standing in for broken device storage.
type failingBackend struct{}

var errDisk = errors.New("disk I/O error")

func (failingBackend) LoadSession(context.Context) (*store.SessionRecord, error) {
	return nil, errDisk
}
func (failingBackend) SaveSession(context.Context, store.SessionRecord) error { return errDisk }
func (failingBackend) UpdateSessionToken(context.Context, string) error       { return errDisk }
func (failingBackend) UpdateSessionUser(context.Context, []byte) error        { return errDisk }
func (failingBackend) DeleteSession(context.Context) error                    { return errDisk }

// memBackend stores the raw record so tests can plant malformed data.
type memBackend struct {
	rec *store.SessionRecord
}

func (m *memBackend) LoadSession(context.Context) (*store.SessionRecord, error) { return m.rec, nil }
func (m *memBackend) SaveSession(_ context.Context, rec store.SessionRecord) error {
	m.rec = &rec
	return nil
}
func (m *memBackend) UpdateSessionToken(_ context.Context, token string) error {
	if m.rec == nil {
		m.rec = &store.SessionRecord{}
	}
	m.rec.AccessToken = token
	return nil
}
func (m *memBackend) UpdateSessionUser(_ context.Context, userJSON []byte) error {
	if m.rec == nil {
		m.rec = &store.SessionRecord{}
	}
	m.rec.UserJSON = userJSON
	return nil
}
func (m *memBackend) DeleteSession(context.Context) error {
	m.rec = nil
	return nil
}

func TestTokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteSession(t)

	assert.Empty(t, s.Token(ctx))

	s.SetToken(ctx, "abc")
	assert.Equal(t, "abc", s.Token(ctx))

	s.RemoveToken(ctx)
	assert.Empty(t, s.Token(ctx))
}

func TestUserRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteSession(t)

	assert.Nil(t, s.User(ctx))

	s.SetUser(ctx, &domain.User{Name: "Asha Rao", Email: "asha@example.com", PhoneNumber: "99999"})
	u := s.User(ctx)
	require.NotNil(t, u)
	assert.Equal(t, "Asha Rao", u.Name)
	assert.Equal(t, "99999", u.PhoneNumber)

	s.RemoveUser(ctx)
	assert.Nil(t, s.User(ctx))
}

func TestSetAndClearMoveTogether(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteSession(t)

	s.Set(ctx, domain.Session{AccessToken: "tok", User: &domain.User{Email: "a@b.com"}})

	got := s.Get(ctx)
	require.NotNil(t, got)
	assert.True(t, got.Valid())
	assert.Equal(t, "a@b.com", got.User.Email)

	s.Clear(ctx)
	assert.Nil(t, s.Get(ctx))
	assert.Empty(t, s.Token(ctx))
	assert.Nil(t, s.User(ctx))
}

func TestStorageFailureIsSoft(t *testing.T) {
	ctx := context.Background()
	s := New(failingBackend{})

	assert.Empty(t, s.Token(ctx))
	assert.Nil(t, s.User(ctx))
	assert.Nil(t, s.Get(ctx))

	assert.NotPanics(t, func() {
		s.SetToken(ctx, "x")
		s.RemoveToken(ctx)
		s.SetUser(ctx, &domain.User{Name: "x"})
		s.RemoveUser(ctx)
		s.Set(ctx, domain.Session{AccessToken: "x"})
		s.Clear(ctx)
	})
}

func TestMalformedUserIsAbsent(t *testing.T) {
	ctx := context.Background()
	mb := &memBackend{rec: &store.SessionRecord{AccessToken: "tok", UserJSON: []byte("{not json")}}
	s := New(mb)

	assert.Nil(t, s.User(ctx))
	got := s.Get(ctx)
	require.NotNil(t, got)
	assert.Equal(t, "tok", got.AccessToken)
	assert.Nil(t, got.User)
}
