package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zift.local/internal/api"
	"zift.local/internal/auth"
	"zift.local/internal/domain"
	"zift.local/internal/nav"
	"zift.local/internal/session"
	"zift.local/internal/store"
)

type backend struct {
	mu         sync.Mutex
	logoutAuth string
	logouts    int
	failLogout bool
}

func setup(t *testing.T) (*App, *session.Store, *backend) {
	t.Helper()
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "zift.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	st := store.New(db)
	require.NoError(t, st.Migrate(context.Background()))
	sess := session.New(st)

	b := &backend{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /user/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":     "Login successful",
			"accessToken": "T",
			"user":        domain.User{ID: "u1", Name: "Asha Rao", Email: "asha@x.io"},
		})
	})
	mux.HandleFunc("POST /user/logout", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.logouts++
		b.logoutAuth = r.Header.Get("Authorization")
		fail := b.failLogout
		b.mu.Unlock()
		if fail {
			http.Error(w, `{"message":"session store unavailable"}`, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := api.New(srv.URL, 5*time.Second, sess)
	return New(client, sess, nil), sess, b
}

func TestStartWithoutSessionShowsAuth(t *testing.T) {
	a, _, _ := setup(t)
	assert.Equal(t, ModeAuth, a.Start(context.Background()))
	require.NotNil(t, a.Auth())
	assert.Equal(t, auth.StateLogin, a.Auth().State())
	assert.Nil(t, a.Main())
}

func TestStartWithSessionShowsMain(t *testing.T) {
	a, sess, _ := setup(t)
	sess.Set(context.Background(), domain.Session{AccessToken: "T", User: &domain.User{Name: "Asha"}})

	assert.Equal(t, ModeMain, a.Start(context.Background()))
	require.NotNil(t, a.Main())
	assert.Equal(t, nav.TabHome, a.Main().ActiveTab())
	assert.Equal(t, "Asha", a.User().Name)
}

func TestLoginSwitchesToMain(t *testing.T) {
	a, sess, _ := setup(t)
	var modes []Mode
	a.OnModeChange = func(m Mode) { modes = append(modes, m) }
	a.Start(context.Background())

	err := a.Auth().Login(context.Background(), auth.LoginForm{Email: "asha@x.io", Password: "pw"})
	require.NoError(t, err)

	stored := sess.Get(context.Background())
	require.NotNil(t, stored)
	assert.Equal(t, "T", stored.AccessToken)
	assert.Equal(t, "asha@x.io", stored.User.Email)

	assert.Equal(t, ModeMain, a.Mode())
	assert.Equal(t, nav.TabHome, a.Main().ActiveTab())
	assert.Equal(t, []Mode{ModeAuth, ModeMain}, modes)
}

func TestLogoutFromSettingsClearsSession(t *testing.T) {
	a, sess, b := setup(t)
	sess.Set(context.Background(), domain.Session{AccessToken: "T", User: &domain.User{Name: "Asha"}})
	a.Start(context.Background())

	main := a.Main()
	main.SelectTab(nav.TabProfile)
	main.OpenSettings()
	main.Logout()

	assert.Equal(t, 1, b.logouts)
	assert.Equal(t, "Bearer T", b.logoutAuth)
	assert.Nil(t, sess.Get(context.Background()))
	assert.Equal(t, ModeAuth, a.Mode())
	assert.Equal(t, auth.StateLogin, a.Auth().State())
}

func TestLogoutSurvivesBackendFailure(t *testing.T) {
	a, sess, b := setup(t)
	b.failLogout = true
	sess.Set(context.Background(), domain.Session{AccessToken: "T"})
	a.Start(context.Background())

	a.Logout(context.Background())

	assert.Equal(t, 1, b.logouts)
	assert.Nil(t, sess.Get(context.Background()))
	assert.Equal(t, ModeAuth, a.Mode())
}
