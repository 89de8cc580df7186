package screens

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"zift.local/internal/api"
	"zift.local/internal/domain"
)

// fakeBackend is an in-memory stand-in for the Zift API.
type fakeBackend struct {
	mu         sync.Mutex
	hits       map[string]int
	queries    []string
	jobs       []domain.Job
	bookmarked map[string]bool
	applied    map[string]bool
	user       domain.User
	updates    []map[string]any
	failStats  bool
}

func newFakeBackend(t *testing.T) (*fakeBackend, *api.Client) {
	t.Helper()
	b := &fakeBackend{
		hits: map[string]int{},
		jobs: []domain.Job{
			{ID: "j1", Title: "Go Developer", Role: "Backend", SalaryRange: "1200000-1500000"},
			{ID: "j2", Title: "SRE", Role: "Infra"},
			{ID: "broken", Title: "Flaky", Role: "Unknown"},
		},
		bookmarked: map[string]bool{"j2": true},
		applied:    map[string]bool{},
		user:       domain.User{ID: "u1", Name: "Asha Rao", Email: "asha@x.io"},
	}

	mux := http.NewServeMux()
	list := func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.queries = append(b.queries, r.URL.Path+"?"+r.URL.RawQuery)
		jobs := b.jobs
		b.mu.Unlock()
		writeJSON(w, map[string]any{"success": true, "data": map[string]any{"jobs": jobs}})
	}
	mux.HandleFunc("GET /user/jobs", list)
	mux.HandleFunc("GET /user/jobs/search", list)
	mux.HandleFunc("GET /user/jobs/filters", list)
	mux.HandleFunc("GET /user/jobs/filter-options", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"success": true, "data": domain.FilterOptions{Locations: []string{"Pune"}}})
	})
	mux.HandleFunc("GET /user/jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := r.PathValue("id")
		writeJSON(w, map[string]any{"success": true, "data": domain.Job{ID: id, Title: "Go Developer", HasApplied: b.applied[id]}})
	})
	mux.HandleFunc("GET /user/bookmarks/status/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "broken" {
			http.Error(w, `{"message":"boom"}`, http.StatusInternalServerError)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, map[string]bool{"isBookmarked": b.bookmarked[id]})
	})
	mux.HandleFunc("POST /user/bookmarks/toggle/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		b.mu.Lock()
		defer b.mu.Unlock()
		b.bookmarked[id] = !b.bookmarked[id]
		writeJSON(w, map[string]bool{"isBookmarked": b.bookmarked[id]})
	})
	mux.HandleFunc("GET /user/bookmarks", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		var jobs []domain.Job
		for _, j := range b.jobs {
			if b.bookmarked[j.ID] {
				jobs = append(jobs, j)
			}
		}
		writeJSON(w, map[string]any{"jobs": jobs})
	})
	mux.HandleFunc("POST /user/applications/apply", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			JobID string `json:"jobId"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		b.applied[body.JobID] = true
		b.mu.Unlock()
		writeJSON(w, map[string]any{"success": true})
	})
	mux.HandleFunc("GET /user/applications", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"success": true, "data": map[string]any{
			"applications": []domain.ApplicationSummary{{ID: "a1", Status: domain.StatusApplied, Job: domain.JobSummary{ID: "j1", Role: "Backend"}}},
		}})
	})
	mux.HandleFunc("GET /user/applications/stats", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		fail := b.failStats
		b.mu.Unlock()
		if fail {
			http.Error(w, `{"message":"stats down"}`, http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"success": true, "data": domain.ApplicationStats{TotalApplications: 1, Applied: 1}})
	})
	mux.HandleFunc("GET /user/applications/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"success": true, "data": domain.ApplicationDetail{
			Application: domain.Application{ID: r.PathValue("id"), Status: domain.StatusInInterview},
			Stages: []domain.Stage{
				{StageName: "Onsite", StageOrder: 3},
				{StageName: "Screen", StageOrder: 1, StageStatus: domain.StagePassed},
				{StageName: "Technical", StageOrder: 2, StageStatus: domain.StageInProgress},
			},
			Job: &domain.Job{ID: "j1", Title: "Go Developer"},
		}})
	})
	mux.HandleFunc("GET /user/get-user-profile-data", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, map[string]any{"authenticated": true, "user": b.user})
	})
	mux.HandleFunc("PUT /user/profile", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.updates = append(b.updates, body)
		if v, ok := body["makeprofilepublic"].(bool); ok {
			b.user.PublicProfile = v
		}
		writeJSON(w, map[string]any{"success": true})
	})
	mux.HandleFunc("GET /user/dashboard-stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"success": true, "data": map[string]any{"userStats": domain.DashboardStats{SolvedProblems: 3, TotalProblems: 10}}})
	})
	mux.HandleFunc("GET /user/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"success": true, "stats": domain.UserStats{ProblemsAttempted: 4, ProblemsCorrect: 3}})
	})
	mux.HandleFunc("GET /user/difficulty-stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"success": false})
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.hits[r.Method+" "+r.URL.Path]++
		b.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return b, api.New(srv.URL, 5*time.Second, nil)
}

func (b *fakeBackend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[key]
}

func (b *fakeBackend) searches() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// recordingNav records the intents screens send.
type recordingNav struct {
	mu    sync.Mutex
	calls []string
	user  *domain.User
}

func (n *recordingNav) record(s string) {
	n.mu.Lock()
	n.calls = append(n.calls, s)
	n.mu.Unlock()
}

func (n *recordingNav) SelectJob(id string)         { n.record("job:" + id) }
func (n *recordingNav) SelectApplication(id string) { n.record("application:" + id) }
func (n *recordingNav) OpenSettings()               { n.record("settings") }
func (n *recordingNav) OpenEditProfile(u *domain.User) {
	n.user = u
	n.record("editProfile")
}
func (n *recordingNav) OpenAnalytics() { n.record("analytics") }
func (n *recordingNav) OpenPrivacy()   { n.record("privacy") }
func (n *recordingNav) OpenTerms()     { n.record("terms") }
func (n *recordingNav) GoToApplied()   { n.record("applied") }
func (n *recordingNav) Back() bool {
	n.record("back")
	return true
}
func (n *recordingNav) Logout() { n.record("logout") }

type memUsers struct {
	user *domain.User
}

func (m *memUsers) SetUser(_ context.Context, u *domain.User) { m.user = u }
