package shell

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"zift.local/internal/app"
	"zift.local/internal/domain"
	"zift.local/internal/nav"
	"zift.local/internal/screens"
)

var statusColors = map[domain.ApplicationStatus]*color.Color{
	domain.StatusApplied:     color.New(color.FgBlue),
	domain.StatusInInterview: color.New(color.FgYellow),
	domain.StatusShortlisted: color.New(color.FgMagenta),
	domain.StatusHired:       color.New(color.FgGreen),
	domain.StatusRejected:    color.New(color.FgRed),
}

var stageColors = map[domain.StageStatus]*color.Color{
	domain.StagePending:    color.New(color.Faint),
	domain.StageInProgress: color.New(color.FgYellow),
	domain.StagePassed:     color.New(color.FgGreen),
	domain.StageRejected:   color.New(color.FgRed),
}

func statusText(st domain.ApplicationStatus) string {
	label := strings.ReplaceAll(string(st), "_", " ")
	if c, ok := statusColors[st]; ok {
		return c.Sprint(label)
	}
	return label
}

func stageText(st domain.StageStatus) string {
	label := strings.ReplaceAll(string(st), "_", " ")
	if c, ok := stageColors[st]; ok {
		return c.Sprint(label)
	}
	return label
}

func table(header []string, rows [][]string) string {
	var buf bytes.Buffer
	t := tablewriter.NewWriter(&buf)
	if header != nil {
		t.SetHeader(header)
	}
	t.SetBorder(false)
	t.SetAutoWrapText(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.AppendBulk(rows)
	t.Render()
	return buf.String()
}

func (s *Shell) render(ctx context.Context) {
	if s.deps.App.Mode() != app.ModeMain {
		s.renderAuth()
		return
	}
	v := s.current(ctx)
	o := v.nav.Overlay()
	if o.Active() {
		s.renderOverlay(v, o)
		return
	}
	s.renderTabBar(v.nav.ActiveTab())
	switch v.nav.ActiveTab() {
	case nav.TabHome:
		s.renderHome(v.home)
	case nav.TabSaved:
		s.renderSaved(v.saved)
	case nav.TabApplied:
		s.renderApplied(v.applied)
	case nav.TabProfile:
		s.renderProfile(v.profile)
	}
}

func (s *Shell) renderTabBar(active nav.Tab) {
	on := color.New(color.FgBlack, color.BgCyan)
	parts := make([]string, 0, len(nav.Tabs))
	for _, t := range nav.Tabs {
		label := " " + strings.ToUpper(string(t[:1])) + string(t[1:]) + " "
		if t == active {
			parts = append(parts, on.Sprint(label))
		} else {
			parts = append(parts, s.faint.Sprint(label))
		}
	}
	s.printf("\n%s\n", strings.Join(parts, " "))
}

// status prints the loading or error line of a resource and reports whether
// there is data worth drawing.
func status[T any](s *Shell, st screens.ResourceState[T]) bool {
	switch {
	case st.Loading:
		s.printf("%s\n", s.faint.Sprint("loading…"))
		return false
	case st.Err != nil:
		s.fail(st.Err)
		return st.Loaded
	case st.Refreshing:
		s.printf("%s\n", s.faint.Sprint("refreshing…"))
	}
	return st.Loaded
}

func (s *Shell) renderHome(h *screens.Home) {
	s.printf("%s\n", s.title.Sprint(h.Greeting()))
	f := h.Filter()
	if f.Keyword != "" || f.HasAttributeFilters() {
		s.printf("%s\n", s.faint.Sprintf("search=%q location=%q experience=%q mode=%q", f.Keyword, f.Location, f.ExperienceLevel, f.WorkMode))
	}
	if opts := h.Options.Data(); opts != nil && len(opts.Locations) > 0 {
		s.printf("%s\n", s.faint.Sprint("locations: "+strings.Join(opts.Locations, ", ")))
	}

	st := h.Feed.State()
	if !status(s, st) {
		return
	}
	if len(st.Data.Jobs) == 0 {
		s.printf("No jobs found. Try another search or clear the filters.\n")
		return
	}
	now := time.Now()
	rows := make([][]string, 0, len(st.Data.Jobs))
	for i, j := range st.Data.Jobs {
		mark := ""
		if st.Data.Bookmarked[j.ID] {
			mark = "★"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1), mark, jobTitle(j), j.PostedBy.CompanyName(), j.Location,
			screens.FormatSalary(j.SalaryRange), screens.FormatPosted(j.CreatedAt, now),
		})
	}
	s.printf("%s", table([]string{"#", "", "Role", "Company", "Location", "Salary", "Posted"}, rows))
}

func jobTitle(j domain.Job) string {
	if j.Role != "" {
		return j.Role
	}
	return j.Title
}

func (s *Shell) renderSaved(sv *screens.SavedJobs) {
	s.printf("%s\n", s.title.Sprint("Saved jobs"))
	st := sv.Jobs.State()
	if !status(s, st) {
		return
	}
	if sv.Jobs.Empty() {
		s.printf("Nothing saved yet. Use bookmark <n> on the home tab.\n")
		return
	}
	rows := make([][]string, 0, len(st.Data))
	for i, j := range st.Data {
		rows = append(rows, []string{strconv.Itoa(i + 1), jobTitle(j), j.PostedBy.CompanyName(), j.Location, screens.FormatSalary(j.SalaryRange)})
	}
	s.printf("%s", table([]string{"#", "Role", "Company", "Location", "Salary"}, rows))
}

func (s *Shell) renderApplied(a *screens.AppliedJobs) {
	s.printf("%s\n", s.title.Sprint("Applied jobs"))
	st := a.Data.State()
	if !status(s, st) {
		return
	}
	stats := st.Data.Stats
	s.printf("total %d · applied %d · interviewed %d · hired %d · rejected %d\n",
		stats.TotalApplications, stats.Applied, stats.Interviewed, stats.Hired, stats.Rejected)
	if a.Empty() {
		s.printf("You have not applied to any jobs yet.\n")
		return
	}
	rows := make([][]string, 0, len(st.Data.Applications))
	for i, item := range st.Data.Applications {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), item.Job.Role, item.Job.Location, statusText(item.Status),
			item.Progress, strconv.Itoa(item.InterviewCount), item.CreatedAt.Format("Jan 2, 2006"),
		})
	}
	s.printf("%s", table([]string{"#", "Role", "Location", "Status", "Progress", "Interviews", "Applied"}, rows))
}

func (s *Shell) renderProfile(p *screens.Profile) {
	s.printf("%s\n", s.title.Sprint("Profile"))
	st := p.User.State()
	if !status(s, st) {
		return
	}
	u := st.Data
	if u == nil {
		s.printf("Your session has expired. Log out and sign in again.\n")
		return
	}
	rows := [][]string{
		{"Name", u.Name},
		{"Email", u.Email},
		{"Phone", orDash(u.PhoneNumber)},
		{"Resume", yesNo(u.IsResumeUploaded, "uploaded", "not uploaded")},
		{"Public profile", yesNo(u.PublicProfile, "on", "off")},
	}
	s.printf("%s", table(nil, rows))
	s.printf("%s\n", s.faint.Sprint("applications · edit · public on|off · upload <file> · resume · analytics · settings"))
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

func yesNo(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}

func (s *Shell) renderOverlay(v *views, o nav.Overlay) {
	switch o.Kind {
	case nav.OverlayJobDetail:
		s.renderJob(v.job)
	case nav.OverlayApplicationDetail:
		s.renderApplication(v.appDetail)
	case nav.OverlayEditProfile:
		name, phone, public := v.edit.Fields()
		s.printf("%s\n", s.title.Sprint("Edit profile"))
		s.printf("%s", table(nil, [][]string{
			{"Name", name}, {"Phone", orDash(phone)}, {"Public profile", yesNo(public, "on", "off")},
		}))
		s.printf("%s\n", s.faint.Sprint("edit name|phone|public <value> · save · back"))
	case nav.OverlaySettings:
		s.printf("%s\n", s.title.Sprint("Settings"))
		s.printf("  privacy   Privacy Policy\n  terms     Terms and Conditions\n  logout    Log out\n")
	case nav.OverlayAnalytics:
		s.renderAnalytics(v.analytics)
	case nav.OverlayPrivacyPolicy:
		doc, err := screens.PrivacyPolicy()
		s.renderDocument(doc, err)
	case nav.OverlayTermsConditions:
		doc, err := screens.TermsConditions()
		s.renderDocument(doc, err)
	}
}

func (s *Shell) renderJob(d *screens.JobDetail) {
	st := d.Job.State()
	if !status(s, st) || st.Data == nil {
		return
	}
	j := st.Data
	s.printf("%s\n%s\n", s.title.Sprint(jobTitle(*j)), j.PostedBy.CompanyName())
	s.printf("%s", table(nil, [][]string{
		{"Location", j.Location},
		{"Salary", screens.FormatSalary(j.SalaryRange)},
		{"Type", j.JobType},
		{"Experience", j.ExperienceLevel},
		{"Work mode", j.WorkMode},
		{"Openings", strconv.Itoa(j.NumberOfOpenings)},
		{"Apply by", orDash(j.LastDateToApply)},
	}))
	if len(j.SkillsRequired) > 0 {
		s.printf("Skills: %s\n", strings.Join(j.SkillsRequired, ", "))
	}
	if len(j.Benefits) > 0 {
		s.printf("Benefits: %s\n", strings.Join(j.Benefits, ", "))
	}
	if j.Description != "" {
		s.printf("\n%s\n", j.Description)
	}
	if len(j.InterviewStages) > 0 {
		rows := make([][]string, 0, len(j.InterviewStages))
		for _, tpl := range j.InterviewStages {
			rows = append(rows, []string{strconv.Itoa(tpl.StageOrder), tpl.StageName, tpl.InterviewType})
		}
		s.printf("\n%s", table([]string{"#", "Stage", "Type"}, rows))
	}
	if j.HasApplied {
		s.printf("%s\n", s.good.Sprint("✓ Applied"))
	} else {
		s.printf("%s\n", s.faint.Sprint("apply · back"))
	}
}

func (s *Shell) renderApplication(d *screens.ApplicationDetail) {
	st := d.Detail.State()
	if !status(s, st) || st.Data == nil {
		return
	}
	detail := st.Data
	role := "Application"
	if detail.Job != nil {
		role = jobTitle(*detail.Job)
	}
	s.printf("%s  %s\n", s.title.Sprint(role), statusText(detail.Application.Status))
	if r := detail.Application.RejectionDetails; r != nil && r.Reason != "" {
		s.printf("%s\n", s.warn.Sprint("Reason: "+r.Reason))
	}
	rows := make([][]string, 0, len(detail.Stages))
	for _, stage := range detail.Stages {
		when := ""
		if stage.Interview != nil && stage.Interview.ScheduledAt != nil {
			when = stage.Interview.ScheduledAt.Format("Jan 2 15:04")
		}
		current := ""
		if stage.IsCurrentStage {
			current = "◀"
		}
		rows = append(rows, []string{strconv.Itoa(stage.StageOrder), stage.StageName, stage.InterviewType, stageText(stage.StageStatus), when, current})
	}
	if len(rows) > 0 {
		s.printf("%s", table([]string{"#", "Stage", "Type", "Status", "Scheduled", ""}, rows))
	}
	s.printf("%s\n", s.faint.Sprint("job · back"))
}

func (s *Shell) renderAnalytics(a *screens.Analytics) {
	s.printf("%s\n", s.title.Sprint("Analytics"))
	st := a.Stats.State()
	if !status(s, st) {
		return
	}
	data := st.Data
	if d := data.Dashboard; d != nil {
		s.printf("solved %d of %d problems · %d designs\n", d.SolvedProblems, d.TotalProblems, d.TotalDesigns)
	}
	if u := data.User; u != nil {
		s.printf("attempted %d · correct %d · wrong %d · success %.0f%%\n",
			u.ProblemsAttempted, u.ProblemsCorrect, u.ProblemsWrong, data.SuccessRate())
		if len(u.FrameworkStats) > 0 {
			rows := make([][]string, 0, len(u.FrameworkStats))
			for _, f := range u.FrameworkStats {
				rows = append(rows, []string{f.Framework, strconv.Itoa(f.TotalAttempts), strconv.Itoa(f.CorrectSolutions), fmt.Sprintf("%.1f", f.AverageScore)})
			}
			s.printf("%s", table([]string{"Framework", "Attempts", "Correct", "Avg score"}, rows))
		}
	}
	if len(data.Difficulty) > 0 {
		parts := make([]string, 0, len(data.Difficulty))
		for _, d := range data.Difficulty {
			parts = append(parts, fmt.Sprintf("%s %d", d.Name, d.Value))
		}
		s.printf("by difficulty: %s\n", strings.Join(parts, " · "))
	}
	if data.Dashboard == nil && data.User == nil && len(data.Difficulty) == 0 {
		s.printf("No activity yet.\n")
	}
}

func (s *Shell) renderDocument(doc screens.Document, err error) {
	if err != nil {
		s.fail(err)
		return
	}
	s.printf("%s\n", s.title.Sprint(doc.Title))
	for _, p := range doc.Intro {
		s.printf("%s\n\n", p)
	}
	for _, sec := range doc.Sections {
		s.printf("%s\n", color.New(color.Bold).Sprint(sec.Heading))
		if sec.Text != "" {
			s.printf("%s\n", sec.Text)
		}
		for _, item := range sec.Items {
			s.printf("  • %s\n", item)
		}
		s.printf("\n")
	}
}
