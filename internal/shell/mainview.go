package shell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"zift.local/internal/nav"
)

var errNotHere = errors.New("that command is not available on this screen")

func (s *Shell) mainCommand(ctx context.Context, cmd string, args []string) error {
	n := s.deps.App.Main()
	v := s.current(ctx)
	overlay := n.Overlay()

	switch cmd {
	case "home", "saved", "applied", "profile", "tab":
		tab := nav.Tab(cmd)
		if cmd == "tab" && len(args) > 0 {
			tab = nav.Tab(strings.ToLower(args[0]))
		}
		if !validTab(tab) {
			return fmt.Errorf("unknown tab %q", tab)
		}
		if overlay.Active() {
			return errors.New("close this screen first (back)")
		}
		s.remount(v, tab)
		n.SelectTab(tab)
		return nil

	case "back":
		if !n.Back() {
			s.info("Nothing to go back to. Type quit to leave.")
		}
		return nil

	case "open":
		return s.open(v, n, args)

	case "search":
		if v.home == nil || overlay.Active() {
			return errNotHere
		}
		v.home.SetKeyword(ctx, strings.Join(args, " "))
		s.info("searching…")
		return nil

	case "filter":
		if v.home == nil || overlay.Active() {
			return errNotHere
		}
		if len(args) < 1 {
			return errors.New("usage: filter <location|experience|mode> <value>")
		}
		value := strings.Join(args[1:], " ")
		switch strings.ToLower(args[0]) {
		case "location":
			v.home.SetLocation(ctx, value)
		case "experience":
			v.home.SetExperience(ctx, value)
		case "mode", "workmode":
			v.home.SetWorkMode(ctx, value)
		default:
			return fmt.Errorf("unknown filter %q", args[0])
		}
		s.info("filtering…")
		return nil

	case "clear":
		if v.home == nil || overlay.Active() {
			return errNotHere
		}
		v.home.ClearFilters(ctx)
		return nil

	case "bookmark", "unsave":
		return s.bookmark(ctx, v, overlay, args)

	case "apply":
		if v.job == nil {
			return errNotHere
		}
		if j := v.job.Job.Data(); j != nil && j.HasApplied {
			return errors.New("you have already applied to this job")
		}
		if err := v.job.Apply(ctx); err != nil {
			return err
		}
		s.info("Application submitted.")
		return nil

	case "job":
		if v.appDetail == nil || !v.appDetail.ViewJob() {
			return errNotHere
		}
		return nil

	case "refresh":
		return s.refresh(ctx, v, n)

	case "settings":
		n.OpenSettings()
		return nil
	case "analytics":
		n.OpenAnalytics()
		return nil
	case "privacy":
		n.OpenPrivacy()
		return nil
	case "terms":
		n.OpenTerms()
		return nil

	case "applications":
		if v.profile == nil || overlay.Active() {
			return errNotHere
		}
		s.remount(v, nav.TabApplied)
		v.profile.OpenApplied()
		return nil

	case "public":
		on, err := onOff(args)
		if err != nil {
			return err
		}
		switch {
		case v.edit != nil:
			return v.edit.SetPublic(on)
		case v.profile != nil && !overlay.Active():
			return v.profile.SetPublic(ctx, on)
		}
		return errNotHere

	case "upload":
		if v.profile == nil || overlay.Active() {
			return errNotHere
		}
		if len(args) == 0 {
			return errors.New("usage: upload <file>")
		}
		if err := v.profile.UploadResume(ctx, strings.Join(args, " ")); err != nil {
			return err
		}
		s.info("Resume uploaded.")
		return nil

	case "resume":
		if v.profile == nil {
			return errNotHere
		}
		doc, err := v.profile.ViewResume(ctx)
		if err != nil {
			return err
		}
		s.printJSON(doc)
		return nil

	case "edit":
		return s.edit(v, overlay, args)

	case "save":
		if v.edit == nil {
			return errNotHere
		}
		if err := v.edit.Save(ctx); err != nil {
			return err
		}
		if v.profile != nil {
			load("profile", v.profile.User.Refresh(ctx))
		}
		s.info("Profile updated.")
		return nil

	case "export":
		if s.deps.Exporter == nil {
			return errors.New("notion export is not configured (NOTION_TOKEN, NOTION_DB_ID)")
		}
		res, err := s.deps.Exporter.Export(ctx)
		if err != nil {
			return err
		}
		s.info(fmt.Sprintf("Exported %d application(s) to Notion, %d already there, %d failed.", res.Created, res.Skipped, res.Failed))
		return nil

	case "logout":
		if !s.confirm("Log out?") {
			return nil
		}
		if v.settings != nil {
			v.settings.Logout()
		} else {
			n.Logout()
		}
		s.info("Signed out.")
		return nil
	}
	return fmt.Errorf("unknown command %q (try help)", cmd)
}

func validTab(t nav.Tab) bool {
	for _, tab := range nav.Tabs {
		if tab == t {
			return true
		}
	}
	return false
}

// remount drops a tab's screen so it is fetched again when shown.
func (s *Shell) remount(v *views, t nav.Tab) {
	switch t {
	case nav.TabHome:
		if v.home != nil {
			v.home.Close()
		}
		v.home = nil
	case nav.TabSaved:
		v.saved = nil
	case nav.TabApplied:
		v.applied = nil
	case nav.TabProfile:
		v.profile = nil
	}
}

func (s *Shell) open(v *views, n *nav.Controller, args []string) error {
	i, err := index(args)
	if err != nil {
		return err
	}
	if n.Overlay().Active() {
		return errNotHere
	}
	switch n.ActiveTab() {
	case nav.TabHome:
		jobs := v.home.Feed.Data().Jobs
		if i >= len(jobs) {
			return errOutOfRange(len(jobs))
		}
		v.home.Select(jobs[i].ID)
	case nav.TabSaved:
		jobs := v.saved.Jobs.Data()
		if i >= len(jobs) {
			return errOutOfRange(len(jobs))
		}
		v.saved.Select(jobs[i].ID)
	case nav.TabApplied:
		apps := v.applied.Data.Data().Applications
		if i >= len(apps) {
			return errOutOfRange(len(apps))
		}
		v.applied.Select(apps[i].ID)
	default:
		return errNotHere
	}
	return nil
}

func errOutOfRange(n int) error {
	if n == 0 {
		return errors.New("the list is empty")
	}
	return fmt.Errorf("pick a number between 1 and %d", n)
}

func (s *Shell) bookmark(ctx context.Context, v *views, overlay nav.Overlay, args []string) error {
	if overlay.Active() {
		return errNotHere
	}
	i, err := index(args)
	if err != nil {
		return err
	}
	switch {
	case v.home != nil && v.nav.ActiveTab() == nav.TabHome:
		jobs := v.home.Feed.Data().Jobs
		if i >= len(jobs) {
			return errOutOfRange(len(jobs))
		}
		saved, err := v.home.ToggleBookmark(ctx, jobs[i].ID)
		if err != nil {
			return err
		}
		if saved {
			s.info("Saved.")
		} else {
			s.info("Removed from saved jobs.")
		}
		return nil
	case v.saved != nil && v.nav.ActiveTab() == nav.TabSaved:
		jobs := v.saved.Jobs.Data()
		if i >= len(jobs) {
			return errOutOfRange(len(jobs))
		}
		return v.saved.Remove(ctx, jobs[i].ID)
	}
	return errNotHere
}

func (s *Shell) refresh(ctx context.Context, v *views, n *nav.Controller) error {
	switch {
	case v.job != nil:
		return v.job.Job.Refresh(ctx)
	case v.appDetail != nil:
		return v.appDetail.Detail.Refresh(ctx)
	case v.analytics != nil:
		return v.analytics.Stats.Refresh(ctx)
	case n.Overlay().Active():
		return nil
	}
	switch n.ActiveTab() {
	case nav.TabHome:
		return v.home.Refresh(ctx)
	case nav.TabSaved:
		return v.saved.Jobs.Refresh(ctx)
	case nav.TabApplied:
		return v.applied.Data.Refresh(ctx)
	case nav.TabProfile:
		return v.profile.User.Refresh(ctx)
	}
	return nil
}

func (s *Shell) edit(v *views, overlay nav.Overlay, args []string) error {
	if v.edit == nil {
		if v.profile == nil || overlay.Active() {
			return errNotHere
		}
		v.profile.EditProfile()
		return nil
	}
	if len(args) < 1 {
		return errors.New("usage: edit name <name> | edit phone <number> | edit public on|off")
	}
	value := strings.Join(args[1:], " ")
	switch strings.ToLower(args[0]) {
	case "name":
		v.edit.SetName(value)
	case "phone":
		v.edit.SetPhone(value)
	case "public":
		on, err := onOff(args[1:])
		if err != nil {
			return err
		}
		return v.edit.SetPublic(on)
	default:
		return fmt.Errorf("unknown field %q", args[0])
	}
	return nil
}

func onOff(args []string) (bool, error) {
	if len(args) == 0 {
		return false, errors.New("say on or off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "yes", "true":
		return true, nil
	case "off", "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("%q is not on or off", args[0])
}

func (s *Shell) printJSON(doc json.RawMessage) {
	if len(doc) == 0 || string(doc) == "null" {
		s.info("No resume on file yet. Use upload <file>.")
		return
	}
	var pretty any
	if err := json.Unmarshal(doc, &pretty); err != nil {
		s.printf("%s\n", doc)
		return
	}
	b, _ := json.MarshalIndent(pretty, "", "  ")
	s.printf("%s\n", b)
}
