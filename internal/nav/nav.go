// Package nav owns the navigation state of the authenticated main view: the
// active tab, the tab history, and at most one full-screen overlay.
package nav

import (
	"sync"

	"zift.local/internal/domain"
)

type Tab string

const (
	TabHome    Tab = "home"
	TabSaved   Tab = "saved"
	TabApplied Tab = "applied"
	TabProfile Tab = "profile"
)

var Tabs = []Tab{TabHome, TabSaved, TabApplied, TabProfile}

type OverlayKind string

const (
	OverlayNone              OverlayKind = "none"
	OverlayJobDetail         OverlayKind = "jobDetail"
	OverlayApplicationDetail OverlayKind = "applicationDetail"
	OverlaySettings          OverlayKind = "settings"
	OverlayEditProfile       OverlayKind = "editProfile"
	OverlayAnalytics         OverlayKind = "analytics"
	OverlayPrivacyPolicy     OverlayKind = "privacyPolicy"
	OverlayTermsConditions   OverlayKind = "termsConditions"
)

// Overlay is a tagged union: JobID is set only for OverlayJobDetail,
// ApplicationID only for OverlayApplicationDetail and User only for
// OverlayEditProfile.
type Overlay struct {
	Kind          OverlayKind  `json:"kind"`
	JobID         string       `json:"jobId,omitempty"`
	ApplicationID string       `json:"applicationId,omitempty"`
	User          *domain.User `json:"user,omitempty"`
}

func None() Overlay                       { return Overlay{Kind: OverlayNone} }
func JobDetail(id string) Overlay         { return Overlay{Kind: OverlayJobDetail, JobID: id} }
func ApplicationDetail(id string) Overlay { return Overlay{Kind: OverlayApplicationDetail, ApplicationID: id} }
func Settings() Overlay                   { return Overlay{Kind: OverlaySettings} }
func EditProfile(u *domain.User) Overlay  { return Overlay{Kind: OverlayEditProfile, User: u} }
func Analytics() Overlay                  { return Overlay{Kind: OverlayAnalytics} }
func PrivacyPolicy() Overlay              { return Overlay{Kind: OverlayPrivacyPolicy} }
func TermsConditions() Overlay            { return Overlay{Kind: OverlayTermsConditions} }

func (o Overlay) Active() bool { return o.Kind != "" && o.Kind != OverlayNone }

// Snapshot is a copy of the navigation state safe to hand to other goroutines.
type Snapshot struct {
	ActiveTab     Tab      `json:"activeTab"`
	Overlay       Overlay  `json:"overlay"`
	TabHistory    []Tab    `json:"tabHistory"`
	ReturnTo      *Overlay `json:"returnTo,omitempty"`
	TabBarVisible bool     `json:"tabBarVisible"`
}

type Controller struct {
	onLogout func()

	mu            sync.Mutex
	activeTab     Tab
	overlay       Overlay
	history       []Tab
	overlayReturn *Overlay
}

// New starts on the home tab with no overlay. onLogout is invoked by Logout.
func New(onLogout func()) *Controller {
	if onLogout == nil {
		onLogout = func() {}
	}
	return &Controller{
		onLogout:  onLogout,
		activeTab: TabHome,
		overlay:   None(),
		history:   []Tab{TabHome},
	}
}

// SelectTab switches tabs. It is ignored while an overlay covers the tab bar.
func (c *Controller) SelectTab(t Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.overlay.Active() {
		return
	}
	c.selectTabLocked(t)
}

func (c *Controller) selectTabLocked(t Tab) {
	if c.history[len(c.history)-1] != t {
		c.history = append(c.history, t)
	}
	c.activeTab = t
}

// Open shows an overlay in place of the current one. Privacy and terms opened
// from settings return to settings.
func (c *Controller) Open(o Overlay) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !o.Active() {
		c.overlay = None()
		c.overlayReturn = nil
		return
	}
	legal := o.Kind == OverlayPrivacyPolicy || o.Kind == OverlayTermsConditions
	if legal && c.overlay.Kind == OverlaySettings {
		prev := c.overlay
		c.overlayReturn = &prev
	} else {
		c.overlayReturn = nil
	}
	c.overlay = o
}

// Back reports whether it consumed the back action. When it returns false the
// caller may exit the app.
func (c *Controller) Back() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.overlay.Active() {
		if c.overlayReturn != nil {
			c.overlay = *c.overlayReturn
			c.overlayReturn = nil
		} else {
			c.overlay = None()
		}
		return true
	}
	if len(c.history) > 1 {
		c.history = c.history[:len(c.history)-1]
		c.activeTab = c.history[len(c.history)-1]
		return true
	}
	return false
}

func (c *Controller) TabBarVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.overlay.Active()
}

func (c *Controller) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeTab
}

func (c *Controller) Overlay() Overlay {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.overlay
}

// Logout hands control back to the parent. Navigation state is left as is;
// the parent discards the controller.
func (c *Controller) Logout() {
	c.onLogout()
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		ActiveTab:     c.activeTab,
		Overlay:       c.overlay,
		TabHistory:    append([]Tab(nil), c.history...),
		TabBarVisible: !c.overlay.Active(),
	}
	if c.overlayReturn != nil {
		r := *c.overlayReturn
		s.ReturnTo = &r
	}
	return s
}

func (c *Controller) SelectJob(id string)            { c.Open(JobDetail(id)) }
func (c *Controller) SelectApplication(id string)    { c.Open(ApplicationDetail(id)) }
func (c *Controller) OpenSettings()                  { c.Open(Settings()) }
func (c *Controller) OpenEditProfile(u *domain.User) { c.Open(EditProfile(u)) }
func (c *Controller) OpenAnalytics()                 { c.Open(Analytics()) }
func (c *Controller) OpenPrivacy()                   { c.Open(PrivacyPolicy()) }
func (c *Controller) OpenTerms()                     { c.Open(TermsConditions()) }

// GoToApplied closes any overlay and switches to the applied tab.
func (c *Controller) GoToApplied() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overlay = None()
	c.overlayReturn = nil
	c.selectTabLocked(TabApplied)
}
