package api

import (
	"context"
	"net/url"
	"strconv"

	"zift.local/internal/domain"
)

func (c *Client) Apply(ctx context.Context, jobID string) error {
	return c.Post(ctx, "/user/applications/apply", map[string]string{"jobId": jobID}, nil)
}

func (c *Client) Applications(ctx context.Context, page, limit int) ([]domain.ApplicationSummary, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var out envelope[struct {
		Applications []domain.ApplicationSummary `json:"applications"`
	}]
	if err := c.Get(ctx, "/user/applications", q, &out); err != nil {
		return nil, err
	}
	if out.Data.Applications == nil {
		return []domain.ApplicationSummary{}, nil
	}
	return out.Data.Applications, nil
}

func (c *Client) ApplicationStats(ctx context.Context) (*domain.ApplicationStats, error) {
	var out envelope[*domain.ApplicationStats]
	if err := c.Get(ctx, "/user/applications/stats", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) Application(ctx context.Context, id string) (*domain.ApplicationDetail, error) {
	var out envelope[*domain.ApplicationDetail]
	if err := c.Get(ctx, "/user/applications/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
