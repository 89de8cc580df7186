package api

import (
	"context"

	"zift.local/internal/domain"
)

// DashboardStats returns nil when the payload is missing or not successful.
func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var out envelope[struct {
		UserStats *domain.DashboardStats `json:"userStats"`
	}]
	if err := c.Get(ctx, "/user/dashboard-stats", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, nil
	}
	return out.Data.UserStats, nil
}

func (c *Client) UserStats(ctx context.Context) (*domain.UserStats, error) {
	var out struct {
		Success bool              `json:"success"`
		Stats   *domain.UserStats `json:"stats"`
	}
	if err := c.Get(ctx, "/user/stats", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, nil
	}
	return out.Stats, nil
}

func (c *Client) DifficultyStats(ctx context.Context) ([]domain.DifficultyStat, error) {
	var out envelope[struct {
		DifficultyStats []domain.DifficultyStat `json:"difficultyStats"`
	}]
	if err := c.Get(ctx, "/user/difficulty-stats", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, nil
	}
	return out.Data.DifficultyStats, nil
}
