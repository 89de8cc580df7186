package screens

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"zift.local/internal/domain"
)

type JobDetailAPI interface {
	Job(ctx context.Context, id string) (*domain.Job, error)
	Apply(ctx context.Context, jobID string) error
}

type JobDetail struct {
	api JobDetailAPI
	id  string

	Job *Resource[*domain.Job]
}

func NewJobDetail(api JobDetailAPI, jobID string) *JobDetail {
	d := &JobDetail{api: api, id: jobID}
	d.Job = NewResource(func(ctx context.Context) (*domain.Job, error) {
		return api.Job(ctx, jobID)
	})
	return d
}

// Apply submits an application and reloads the job so HasApplied is current.
func (d *JobDetail) Apply(ctx context.Context) error {
	if err := d.api.Apply(ctx, d.id); err != nil {
		return fmt.Errorf("apply: %w", err)
	}
	return d.Job.Refresh(ctx)
}

type ApplicationsAPI interface {
	Applications(ctx context.Context, page, limit int) ([]domain.ApplicationSummary, error)
	ApplicationStats(ctx context.Context) (*domain.ApplicationStats, error)
}

// AppliedData is what the applied tab shows.
type AppliedData struct {
	Applications []domain.ApplicationSummary
	Stats        domain.ApplicationStats
}

const (
	applicationsPage  = 1
	applicationsLimit = 50
)

type AppliedJobs struct {
	nav Navigator

	Data *Resource[AppliedData]
}

// NewAppliedJobs fetches the list and the stats together. If either fails
// both are shown empty.
func NewAppliedJobs(api ApplicationsAPI, nav Navigator) *AppliedJobs {
	a := &AppliedJobs{nav: nav}
	a.Data = NewResource(func(ctx context.Context) (AppliedData, error) {
		var out AppliedData
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			apps, err := api.Applications(gctx, applicationsPage, applicationsLimit)
			out.Applications = apps
			return err
		})
		g.Go(func() error {
			stats, err := api.ApplicationStats(gctx)
			if stats != nil {
				out.Stats = *stats
			}
			return err
		})
		if err := g.Wait(); err != nil {
			return AppliedData{}, fmt.Errorf("applied jobs: %w", err)
		}
		return out, nil
	}).ResetOnError()
	return a
}

func (a *AppliedJobs) Empty() bool {
	s := a.Data.State()
	return s.Loaded && !s.Loading && len(s.Data.Applications) == 0
}

func (a *AppliedJobs) Select(applicationID string) { a.nav.SelectApplication(applicationID) }

func (a *AppliedJobs) SelectJob(jobID string) { a.nav.SelectJob(jobID) }

type ApplicationDetailAPI interface {
	Application(ctx context.Context, id string) (*domain.ApplicationDetail, error)
}

type ApplicationDetail struct {
	nav Navigator

	Detail *Resource[*domain.ApplicationDetail]
}

func NewApplicationDetail(api ApplicationDetailAPI, nav Navigator, applicationID string) *ApplicationDetail {
	d := &ApplicationDetail{nav: nav}
	d.Detail = NewResource(func(ctx context.Context) (*domain.ApplicationDetail, error) {
		detail, err := api.Application(ctx, applicationID)
		if err != nil || detail == nil {
			return detail, err
		}
		detail.Stages = NormalizeStages(detail.Stages)
		return detail, nil
	})
	return d
}

// NormalizeStages returns the stages in display order with a missing status
// read as pending.
func NormalizeStages(stages []domain.Stage) []domain.Stage {
	out := slices.Clone(stages)
	for i := range out {
		if out[i].StageStatus == "" {
			out[i].StageStatus = domain.StagePending
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Stage) int {
		return cmp.Compare(a.StageOrder, b.StageOrder)
	})
	return out
}

// ViewJob opens the posting the application was made to.
func (d *ApplicationDetail) ViewJob() bool {
	detail := d.Detail.Data()
	if detail == nil || detail.Job == nil {
		return false
	}
	d.nav.SelectJob(detail.Job.ID)
	return true
}

type SavedJobsAPI interface {
	Bookmarks(ctx context.Context) ([]domain.Job, error)
	ToggleBookmark(ctx context.Context, jobID string) (bool, error)
}

type SavedJobs struct {
	api SavedJobsAPI
	nav Navigator

	Jobs *Resource[[]domain.Job]
}

func NewSavedJobs(api SavedJobsAPI, nav Navigator) *SavedJobs {
	return &SavedJobs{api: api, nav: nav, Jobs: NewListResource(api.Bookmarks)}
}

func (s *SavedJobs) Select(jobID string) { s.nav.SelectJob(jobID) }

// Remove un-bookmarks a job and reloads the list.
func (s *SavedJobs) Remove(ctx context.Context, jobID string) error {
	if _, err := s.api.ToggleBookmark(ctx, jobID); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return s.Jobs.Refresh(ctx)
}
