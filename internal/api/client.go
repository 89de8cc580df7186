// Package api is the single HTTP gateway to the Zift backend.
//
// Every request goes through one resty client configured with the base
// address, a cookie jar, and a request middleware that attaches the stored
// bearer token. Failures are returned as *TransportError (no response) or
// *Error (non-2xx response); nothing is retried.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// TokenSource yields the current bearer token, or "" when there is none.
type TokenSource interface {
	Token(ctx context.Context) string
}

type Client struct {
	http   *resty.Client
	tokens TokenSource
}

// New builds the gateway. resty.New attaches a cookie jar, so cookies set by
// the backend are sent back on later calls.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	c := &Client{
		http:   resty.New(),
		tokens: tokens,
	}
	c.http.
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(c.authorize)
	return c
}

// authorize attaches the bearer token when one is stored. Without a token
// the request goes out unauthenticated.
func (c *Client) authorize(_ *resty.Client, r *resty.Request) error {
	r.SetHeader("X-Request-ID", uuid.NewString())
	if c.tokens == nil {
		return nil
	}
	if token := c.tokens.Token(r.Context()); token != "" {
		r.SetAuthToken(token)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	resp, err := req.Get(path)
	return decode(resp, err, "GET", path, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	switch b := body.(type) {
	case nil:
	case json.RawMessage:
		// resty would sniff raw bytes as text/plain
		req.SetHeader("Content-Type", "application/json").SetBody([]byte(b))
	default:
		req.SetBody(b)
	}
	resp, err := req.Post(path)
	return decode(resp, err, "POST", path, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Put(path)
	return decode(resp, err, "PUT", path, out)
}

func decode(resp *resty.Response, err error, method, path string, out any) error {
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}
	if resp.IsError() {
		return newError(resp.StatusCode(), resp.Body())
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("api call failed: decode %s %s: %w", method, path, err)
	}
	return nil
}
