package screens

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"zift.local/internal/domain"
)

// bookmarkChecks bounds the per-job bookmark status requests in flight.
const bookmarkChecks = 8

type HomeAPI interface {
	ListJobs(ctx context.Context, f domain.Filter) (*domain.JobPage, error)
	FilterOptions(ctx context.Context) (*domain.FilterOptions, error)
	BookmarkStatus(ctx context.Context, jobID string) (bool, error)
	ToggleBookmark(ctx context.Context, jobID string) (bool, error)
}

// JobFeed is one page of the home listing with the bookmark state of each job.
type JobFeed struct {
	Jobs       []domain.Job
	Bookmarked map[string]bool
}

type Home struct {
	api      HomeAPI
	nav      Navigator
	user     *domain.User
	debounce *Debouncer
	now      func() time.Time

	// OnChange, when set, runs after a debounced search has finished.
	OnChange func()

	Feed    *Resource[JobFeed]
	Options *Resource[*domain.FilterOptions]

	mu     sync.Mutex
	filter domain.Filter
}

func NewHome(api HomeAPI, nav Navigator, user *domain.User, debounce time.Duration) *Home {
	h := &Home{
		api:      api,
		nav:      nav,
		user:     user,
		debounce: NewDebouncer(debounce),
		now:      time.Now,
		filter:   domain.DefaultFilter(),
	}
	h.Feed = NewResource(h.fetchFeed)
	h.Options = NewResource(api.FilterOptions)
	return h
}

func (h *Home) Greeting() string {
	return Greeting(h.now()) + ", " + h.user.FirstName()
}

func (h *Home) Filter() domain.Filter {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.filter
}

// Load fetches the filter options and the first page of jobs.
func (h *Home) Load(ctx context.Context) error {
	if err := h.Options.Load(ctx); err != nil {
		log.Printf("[home] error loading filter options: %v", err)
	}
	return h.Feed.Load(ctx)
}

func (h *Home) Refresh(ctx context.Context) error {
	return h.Feed.Refresh(ctx)
}

func (h *Home) fetchFeed(ctx context.Context) (JobFeed, error) {
	page, err := h.api.ListJobs(ctx, h.Filter())
	if err != nil {
		return JobFeed{}, fmt.Errorf("list jobs: %w", err)
	}
	return JobFeed{Jobs: page.Jobs, Bookmarked: h.bookmarkStates(ctx, page.Jobs)}, nil
}

// bookmarkStates asks the server about each job. A failed check counts as
// not bookmarked.
func (h *Home) bookmarkStates(ctx context.Context, jobs []domain.Job) map[string]bool {
	states := make([]bool, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bookmarkChecks)
	for i, job := range jobs {
		g.Go(func() error {
			ok, err := h.api.BookmarkStatus(gctx, job.ID)
			if err != nil {
				log.Printf("[home] bookmark status %s: %v", job.ID, err)
				return nil
			}
			states[i] = ok
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]bool, len(jobs))
	for i, job := range jobs {
		out[job.ID] = states[i]
	}
	return out
}

func (h *Home) SetKeyword(ctx context.Context, keyword string) {
	h.change(ctx, func(f *domain.Filter) { f.Keyword = keyword })
}

func (h *Home) SetLocation(ctx context.Context, location string) {
	h.change(ctx, func(f *domain.Filter) { f.Location = location })
}

func (h *Home) SetExperience(ctx context.Context, level string) {
	h.change(ctx, func(f *domain.Filter) { f.ExperienceLevel = level })
}

func (h *Home) SetWorkMode(ctx context.Context, mode string) {
	h.change(ctx, func(f *domain.Filter) { f.WorkMode = mode })
}

// ClearFilters resets every filter and reloads.
func (h *Home) ClearFilters(ctx context.Context) {
	h.change(ctx, func(f *domain.Filter) { *f = domain.DefaultFilter() })
}

// change updates the filter now and schedules the fetch. Earlier fetches that
// are already in flight are not cancelled; the last response to land wins.
func (h *Home) change(ctx context.Context, edit func(*domain.Filter)) {
	h.mu.Lock()
	edit(&h.filter)
	h.filter.Page = 1
	h.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	h.debounce.Trigger(func() {
		if err := h.Feed.Load(bg); err != nil {
			log.Printf("[home] error loading jobs: %v", err)
		}
		if h.OnChange != nil {
			h.OnChange()
		}
	})
}

// ToggleBookmark flips the bookmark and records the state the server reports.
func (h *Home) ToggleBookmark(ctx context.Context, jobID string) (bool, error) {
	state, err := h.api.ToggleBookmark(ctx, jobID)
	if err != nil {
		return false, fmt.Errorf("toggle bookmark: %w", err)
	}
	h.Feed.Update(func(f JobFeed) JobFeed {
		next := make(map[string]bool, len(f.Bookmarked)+1)
		for k, v := range f.Bookmarked {
			next[k] = v
		}
		next[jobID] = state
		f.Bookmarked = next
		return f
	})
	return state, nil
}

func (h *Home) Select(jobID string) {
	h.nav.SelectJob(jobID)
}

// Close stops any pending search.
func (h *Home) Close() {
	h.debounce.Stop()
}
