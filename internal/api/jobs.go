package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"zift.local/internal/domain"
)

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ListJobs picks the listing endpoint from the filter: a keyword searches,
// dropdown filters filter, and otherwise the plain paginated list is used.
func (c *Client) ListJobs(ctx context.Context, f domain.Filter) (*domain.JobPage, error) {
	path, query := jobsQuery(f)
	var out envelope[domain.JobPage]
	if err := c.Get(ctx, path, query, &out); err != nil {
		return nil, err
	}
	if out.Data.Jobs == nil {
		out.Data.Jobs = []domain.Job{}
	}
	return &out.Data, nil
}

func jobsQuery(f domain.Filter) (string, url.Values) {
	q := url.Values{}
	add := func(key, value string) {
		if value != "" && value != "0" {
			q.Set(key, value)
		}
	}
	all := func() {
		add("keyword", strings.TrimSpace(f.Keyword))
		add("page", strconv.Itoa(f.Page))
		add("limit", strconv.Itoa(f.Limit))
		add("location", f.Location)
		add("experienceLevel", f.ExperienceLevel)
		add("workerMode", f.WorkMode)
	}

	switch {
	case strings.TrimSpace(f.Keyword) != "":
		all()
		return "/user/jobs/search", q
	case f.HasAttributeFilters():
		all()
		return "/user/jobs/filters", q
	default:
		q.Set("page", strconv.Itoa(f.Page))
		q.Set("limit", strconv.Itoa(f.Limit))
		return "/user/jobs", q
	}
}

func (c *Client) FilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	var out envelope[*domain.FilterOptions]
	if err := c.Get(ctx, "/user/jobs/filter-options", nil, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return &domain.FilterOptions{}, nil
	}
	return out.Data, nil
}

func (c *Client) Job(ctx context.Context, id string) (*domain.Job, error) {
	var out envelope[*domain.Job]
	if err := c.Get(ctx, "/user/jobs/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
