package shell

import (
	"context"
	"log"

	"zift.local/internal/nav"
	"zift.local/internal/screens"
)

// views holds the screens of one main-view session. Tab screens live as long
// as the session; the overlay screen is rebuilt whenever the overlay changes.
type views struct {
	nav *nav.Controller

	home    *screens.Home
	saved   *screens.SavedJobs
	applied *screens.AppliedJobs
	profile *screens.Profile

	overlay   nav.Overlay
	job       *screens.JobDetail
	appDetail *screens.ApplicationDetail
	edit      *screens.EditProfile
	analytics *screens.Analytics
	settings  *screens.Settings
}

// current returns the screens for the active main view, creating and loading
// whatever the visible view needs.
func (s *Shell) current(ctx context.Context) *views {
	n := s.deps.App.Main()
	if s.views == nil || s.views.nav != n {
		if s.views != nil && s.views.home != nil {
			s.views.home.Close()
		}
		s.views = &views{nav: n, overlay: nav.None()}
	}
	v := s.views
	client := s.deps.API

	if o := n.Overlay(); o != v.overlay {
		v.overlay = o
		v.job, v.appDetail, v.edit, v.analytics, v.settings = nil, nil, nil, nil, nil
		switch o.Kind {
		case nav.OverlayJobDetail:
			v.job = screens.NewJobDetail(client, o.JobID)
			load("job", v.job.Job.Load(ctx))
		case nav.OverlayApplicationDetail:
			v.appDetail = screens.NewApplicationDetail(client, n, o.ApplicationID)
			load("application", v.appDetail.Detail.Load(ctx))
		case nav.OverlayEditProfile:
			v.edit = screens.NewEditProfile(client, s.deps.Session, n, o.User)
		case nav.OverlayAnalytics:
			v.analytics = screens.NewAnalytics(client)
			load("analytics", v.analytics.Stats.Load(ctx))
		case nav.OverlaySettings:
			v.settings = screens.NewSettings(n)
		}
	}

	switch n.ActiveTab() {
	case nav.TabHome:
		if v.home == nil {
			v.home = screens.NewHome(client, n, s.deps.App.User(), s.deps.SearchDebounce)
			v.home.OnChange = func() {
				if n.TabBarVisible() && n.ActiveTab() == nav.TabHome {
					s.renderHome(v.home)
				}
			}
			load("home", v.home.Load(ctx))
		}
	case nav.TabSaved:
		if v.saved == nil {
			v.saved = screens.NewSavedJobs(client, n)
			load("saved", v.saved.Jobs.Load(ctx))
		}
	case nav.TabApplied:
		if v.applied == nil {
			v.applied = screens.NewAppliedJobs(client, n)
			load("applied", v.applied.Data.Load(ctx))
		}
	case nav.TabProfile:
		if v.profile == nil {
			v.profile = screens.NewProfile(client, s.deps.Resume, s.deps.Session, n)
			load("profile", v.profile.User.Load(ctx))
		}
	}
	return v
}

// load logs a failed initial fetch; the screen shows the error itself.
func load(screen string, err error) {
	if err != nil {
		log.Printf("[shell] error loading %s: %v", screen, err)
	}
}
