// Package notion mirrors the user's job applications into a Notion tracker
// database.
package notion

import (
	"context"
	"net/http"

	gnt "github.com/dstotijn/go-notion"

	"zift.local/internal/domain"
)

type Client struct {
	api        *gnt.Client
	databaseID string
}

func New(token, databaseID string) *Client {
	return newWithHTTP(token, databaseID, nil)
}

func newWithHTTP(token, databaseID string, hc *http.Client) *Client {
	var opts []gnt.ClientOption
	if hc != nil {
		opts = append(opts, gnt.WithHTTPClient(hc))
	}
	return &Client{
		api:        gnt.NewClient(token, opts...),
		databaseID: databaseID,
	}
}

func (c *Client) DatabaseID() string { return c.databaseID }

// Ping just tries a tiny QueryDatabase to see if the DB is reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.api.QueryDatabase(ctx, c.databaseID, &gnt.DatabaseQuery{
		PageSize: 1,
	})
	return err
}

// SearchDatabases lists the databases the integration can see.
func (c *Client) SearchDatabases(ctx context.Context) ([]gnt.Database, error) {
	resp, err := c.api.Search(ctx, &gnt.SearchOpts{
		Filter: &gnt.SearchFilter{
			Property: "object",
			Value:    "database",
		},
		PageSize: 20,
	})
	if err != nil {
		return nil, err
	}

	var dbs []gnt.Database
	for _, obj := range resp.Results {
		if db, ok := obj.(gnt.Database); ok {
			dbs = append(dbs, db)
		}
	}
	return dbs, nil
}

func richText(s string) []gnt.RichText {
	if s == "" {
		return nil
	}
	return []gnt.RichText{{Text: &gnt.Text{Content: s}}}
}

func selectOption(name string) *gnt.SelectOptions {
	return &gnt.SelectOptions{Name: name}
}

func applicationProperties(app domain.ApplicationSummary) gnt.DatabasePageProperties {
	props := gnt.DatabasePageProperties{}

	// Position is the database's title property.
	position := app.Job.Role
	if position == "" {
		position = "Application " + app.ID
	}
	props["Position"] = gnt.DatabasePageProperty{Title: richText(position)}

	if app.Job.Location != "" {
		props["Location"] = gnt.DatabasePageProperty{RichText: richText(app.Job.Location)}
	}
	if app.Job.SalaryRange != "" {
		props["Salary"] = gnt.DatabasePageProperty{RichText: richText(app.Job.SalaryRange)}
	}
	if app.Job.JobType != "" {
		props["Job Type"] = gnt.DatabasePageProperty{Select: selectOption(app.Job.JobType)}
	}
	if app.Status != "" {
		props["Status"] = gnt.DatabasePageProperty{Select: selectOption(string(app.Status))}
	}
	if app.Progress != "" {
		props["Progress"] = gnt.DatabasePageProperty{RichText: richText(app.Progress)}
	}

	interviews := float64(app.InterviewCount)
	props["Interviews"] = gnt.DatabasePageProperty{Number: &interviews}

	if !app.CreatedAt.IsZero() {
		props["Applied"] = gnt.DatabasePageProperty{
			Date: &gnt.Date{Start: gnt.NewDateTime(app.CreatedAt, false)},
		}
	}
	return props
}

// CreateApplicationPage adds one row to the tracker and returns its page id.
func (c *Client) CreateApplicationPage(ctx context.Context, app domain.ApplicationSummary) (string, error) {
	props := applicationProperties(app)

	page, err := c.api.CreatePage(ctx, gnt.CreatePageParams{
		ParentType:             gnt.ParentTypeDatabase,
		ParentID:               c.databaseID,
		DatabasePageProperties: &props,
	})
	if err != nil {
		return "", err
	}
	return page.ID, nil
}
