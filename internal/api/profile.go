package api

import (
	"context"
	"encoding/json"

	"zift.local/internal/domain"
)

// ProfileUpdate is a partial update; nil fields are not sent.
type ProfileUpdate struct {
	Name          *string `json:"name,omitempty"`
	PhoneNumber   *string `json:"phoneNumber,omitempty"`
	PublicProfile *bool   `json:"makeprofilepublic,omitempty"`
}

// Profile returns nil when the backend reports the caller as unauthenticated.
func (c *Client) Profile(ctx context.Context) (*domain.User, error) {
	var out struct {
		Authenticated bool         `json:"authenticated"`
		User          *domain.User `json:"user"`
	}
	if err := c.Get(ctx, "/user/get-user-profile-data", nil, &out); err != nil {
		return nil, err
	}
	if !out.Authenticated {
		return nil, nil
	}
	return out.User, nil
}

func (c *Client) UpdateProfile(ctx context.Context, upd ProfileUpdate) error {
	return c.Put(ctx, "/user/profile", upd, nil)
}

// SaveResume stores a parsed resume document as-is.
func (c *Client) SaveResume(ctx context.Context, doc json.RawMessage) error {
	return c.Post(ctx, "/resume/save", doc, nil)
}

func (c *Client) Resume(ctx context.Context) (json.RawMessage, error) {
	var out envelope[json.RawMessage]
	if err := c.Get(ctx, "/resume/get", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
