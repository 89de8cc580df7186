package screens

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"zift.local/internal/domain"
)

type AnalyticsAPI interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
	UserStats(ctx context.Context) (*domain.UserStats, error)
	DifficultyStats(ctx context.Context) ([]domain.DifficultyStat, error)
}

// AnalyticsData holds whichever stats the server returned; nil parts were
// absent or unsuccessful.
type AnalyticsData struct {
	Dashboard  *domain.DashboardStats
	User       *domain.UserStats
	Difficulty []domain.DifficultyStat
}

// SuccessRate is the share of attempted problems solved correctly, in percent.
func (a AnalyticsData) SuccessRate() float64 {
	if a.User == nil || a.User.ProblemsAttempted == 0 {
		return 0
	}
	return float64(a.User.ProblemsCorrect) * 100 / float64(a.User.ProblemsAttempted)
}

type Analytics struct {
	Stats *Resource[AnalyticsData]
}

func NewAnalytics(api AnalyticsAPI) *Analytics {
	return &Analytics{Stats: NewResource(func(ctx context.Context) (AnalyticsData, error) {
		var out AnalyticsData
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			out.Dashboard, err = api.DashboardStats(gctx)
			return err
		})
		g.Go(func() (err error) {
			out.User, err = api.UserStats(gctx)
			return err
		})
		g.Go(func() (err error) {
			out.Difficulty, err = api.DifficultyStats(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return AnalyticsData{}, fmt.Errorf("analytics: %w", err)
		}
		return out, nil
	})}
}
