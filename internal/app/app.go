// Package app is the root of the client: it shows the auth flow until a
// session exists and the main view after that.
package app

import (
	"context"
	"log"
	"sync"

	"zift.local/internal/auth"
	"zift.local/internal/domain"
	"zift.local/internal/identity"
	"zift.local/internal/nav"
)

type Mode string

const (
	ModeAuth Mode = "auth"
	ModeMain Mode = "main"
)

type Gateway interface {
	auth.Gateway
	Logout(ctx context.Context) error
}

type SessionStore interface {
	Get(ctx context.Context) *domain.Session
	Set(ctx context.Context, sess domain.Session)
	Clear(ctx context.Context)
}

type App struct {
	api     Gateway
	session SessionStore
	google  identity.IDTokenSource

	// OnModeChange, when set, is called after every switch between the auth
	// flow and the main view.
	OnModeChange func(Mode)

	mu   sync.Mutex
	ctx  context.Context
	mode Mode
	auth *auth.Controller
	main *nav.Controller
	user *domain.User
}

// New builds the root. google may be nil when federated sign-in is off.
func New(gw Gateway, sess SessionStore, google identity.IDTokenSource) *App {
	return &App{api: gw, session: sess, google: google, ctx: context.Background()}
}

// Start picks the first view from the stored session.
func (a *App) Start(ctx context.Context) Mode {
	a.mu.Lock()
	a.ctx = context.WithoutCancel(ctx)
	a.mu.Unlock()

	if sess := a.session.Get(ctx); sess.Valid() {
		log.Printf("[app] restored session for %s", userLabel(sess.User))
		a.showMain(sess.User)
		return ModeMain
	}
	a.showAuth()
	return ModeAuth
}

func (a *App) showAuth() {
	ctrl := auth.NewController(a.api, a.session, a.google, a.onAuthenticated)
	a.mu.Lock()
	a.mode = ModeAuth
	a.auth = ctrl
	a.main = nil
	a.user = nil
	a.mu.Unlock()
	a.notify(ModeAuth)
}

func (a *App) showMain(u *domain.User) {
	ctrl := nav.New(a.logoutFromNav)
	a.mu.Lock()
	a.mode = ModeMain
	a.main = ctrl
	a.auth = nil
	a.user = u
	a.mu.Unlock()
	a.notify(ModeMain)
}

func (a *App) onAuthenticated(u *domain.User) {
	a.showMain(u)
}

func (a *App) logoutFromNav() {
	a.mu.Lock()
	ctx := a.ctx
	a.mu.Unlock()
	a.Logout(ctx)
}

// Logout tells the backend, forgets the session and returns to login. A failed
// backend call does not keep the user signed in.
func (a *App) Logout(ctx context.Context) {
	if err := a.api.Logout(ctx); err != nil {
		log.Printf("[app] logout request failed: %v", err)
	}
	a.session.Clear(ctx)
	log.Printf("[app] signed out")
	a.showAuth()
}

func (a *App) notify(m Mode) {
	if a.OnModeChange != nil {
		a.OnModeChange(m)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Auth is the auth flow, or nil in the main view.
func (a *App) Auth() *auth.Controller {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.auth
}

// Main is the main view's navigation, or nil during the auth flow.
func (a *App) Main() *nav.Controller {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.main
}

// User is the user the main view was opened for.
func (a *App) User() *domain.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func userLabel(u *domain.User) string {
	if u == nil {
		return "<unknown user>"
	}
	return u.Email
}
