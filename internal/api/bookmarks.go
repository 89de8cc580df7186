package api

import (
	"context"
	"net/url"

	"zift.local/internal/domain"
)

type bookmarkState struct {
	IsBookmarked bool `json:"isBookmarked"`
}

func (c *Client) Bookmarks(ctx context.Context) ([]domain.Job, error) {
	var out struct {
		Jobs []domain.Job `json:"jobs"`
	}
	if err := c.Get(ctx, "/user/bookmarks", nil, &out); err != nil {
		return nil, err
	}
	if out.Jobs == nil {
		return []domain.Job{}, nil
	}
	return out.Jobs, nil
}

// BookmarkStatus asks whether one job is bookmarked. There is no batch
// endpoint, so list screens call this once per job.
func (c *Client) BookmarkStatus(ctx context.Context, jobID string) (bool, error) {
	var out bookmarkState
	if err := c.Get(ctx, "/user/bookmarks/status/"+url.PathEscape(jobID), nil, &out); err != nil {
		return false, err
	}
	return out.IsBookmarked, nil
}

// ToggleBookmark flips the bookmark and returns the server's new state.
func (c *Client) ToggleBookmark(ctx context.Context, jobID string) (bool, error) {
	var out bookmarkState
	if err := c.Post(ctx, "/user/bookmarks/toggle/"+url.PathEscape(jobID), nil, &out); err != nil {
		return false, err
	}
	return out.IsBookmarked, nil
}
