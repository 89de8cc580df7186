package screens

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"zift.local/internal/api"
	"zift.local/internal/domain"
)

// ErrProfileIncomplete blocks making a profile public before it has a phone
// number and an uploaded resume.
var ErrProfileIncomplete = errors.New("add a phone number and upload your resume before making your profile public")

var ErrNameRequired = errors.New("name is required")

type ProfileAPI interface {
	Profile(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, upd api.ProfileUpdate) error
}

type ResumeService interface {
	Upload(ctx context.Context, path string) error
	View(ctx context.Context) (json.RawMessage, error)
}

// UserStore keeps the signed-in user's cached profile current.
type UserStore interface {
	SetUser(ctx context.Context, u *domain.User)
}

func canGoPublic(phone string, resumeUploaded bool) bool {
	return strings.TrimSpace(phone) != "" && resumeUploaded
}

type Profile struct {
	api     ProfileAPI
	resume  ResumeService
	session UserStore
	nav     Navigator

	User *Resource[*domain.User]
}

// NewProfile loads the profile; an unauthenticated answer leaves User nil.
func NewProfile(client ProfileAPI, resume ResumeService, session UserStore, nav Navigator) *Profile {
	p := &Profile{api: client, resume: resume, session: session, nav: nav}
	p.User = NewResource(func(ctx context.Context) (*domain.User, error) {
		u, err := client.Profile(ctx)
		if err != nil {
			return nil, fmt.Errorf("profile: %w", err)
		}
		if u != nil {
			session.SetUser(ctx, u)
		}
		return u, nil
	})
	return p
}

func (p *Profile) SetPublic(ctx context.Context, public bool) error {
	u := p.User.Data()
	if public && (u == nil || !canGoPublic(u.PhoneNumber, u.IsResumeUploaded)) {
		return ErrProfileIncomplete
	}
	if err := p.api.UpdateProfile(ctx, api.ProfileUpdate{PublicProfile: &public}); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return p.User.Refresh(ctx)
}

func (p *Profile) UploadResume(ctx context.Context, path string) error {
	if err := p.resume.Upload(ctx, path); err != nil {
		return err
	}
	return p.User.Refresh(ctx)
}

func (p *Profile) ViewResume(ctx context.Context) (json.RawMessage, error) {
	return p.resume.View(ctx)
}

func (p *Profile) OpenApplied()   { p.nav.GoToApplied() }
func (p *Profile) OpenSettings()  { p.nav.OpenSettings() }
func (p *Profile) OpenAnalytics() { p.nav.OpenAnalytics() }

func (p *Profile) EditProfile() {
	p.nav.OpenEditProfile(p.User.Data())
}

// EditProfile is the form opened from the profile tab.
type EditProfile struct {
	api     ProfileAPI
	session UserStore
	nav     Navigator
	user    domain.User

	mu     sync.Mutex
	name   string
	phone  string
	public bool
}

func NewEditProfile(client ProfileAPI, session UserStore, nav Navigator, user *domain.User) *EditProfile {
	e := &EditProfile{api: client, session: session, nav: nav}
	if user != nil {
		e.user = *user
	}
	e.name = e.user.Name
	e.phone = e.user.PhoneNumber
	e.public = e.user.PublicProfile
	return e
}

func (e *EditProfile) Fields() (name, phone string, public bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.name, e.phone, e.public
}

func (e *EditProfile) SetName(name string) {
	e.mu.Lock()
	e.name = name
	e.mu.Unlock()
}

func (e *EditProfile) SetPhone(phone string) {
	e.mu.Lock()
	e.phone = phone
	e.mu.Unlock()
}

func (e *EditProfile) SetPublic(public bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if public && !canGoPublic(e.phone, e.user.IsResumeUploaded) {
		return ErrProfileIncomplete
	}
	e.public = public
	return nil
}

// Save sends the form, updates the cached user and closes the form.
func (e *EditProfile) Save(ctx context.Context) error {
	name, phone, public := e.Fields()
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" {
		return ErrNameRequired
	}
	if public && !canGoPublic(phone, e.user.IsResumeUploaded) {
		return ErrProfileIncomplete
	}

	if err := e.api.UpdateProfile(ctx, api.ProfileUpdate{
		Name:          &name,
		PhoneNumber:   &phone,
		PublicProfile: &public,
	}); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	updated := e.user
	updated.Name = name
	updated.PhoneNumber = phone
	updated.PublicProfile = public
	e.session.SetUser(ctx, &updated)
	e.nav.Back()
	return nil
}

func (e *EditProfile) Cancel() { e.nav.Back() }

type Settings struct {
	nav Navigator
}

func NewSettings(nav Navigator) *Settings { return &Settings{nav: nav} }

// Logout hands off to the app root; confirmation is the caller's job.
func (s *Settings) Logout()      { s.nav.Logout() }
func (s *Settings) OpenPrivacy() { s.nav.OpenPrivacy() }
func (s *Settings) OpenTerms()   { s.nav.OpenTerms() }
