package notion

import (
	"context"
	"fmt"
	"log"

	"zift.local/internal/domain"
)

const exportPageSize = 50

type ApplicationSource interface {
	Applications(ctx context.Context, page, limit int) ([]domain.ApplicationSummary, error)
}

// Ledger remembers which applications already have a tracker page.
// *store.Store satisfies it.
type Ledger interface {
	NotionPageID(ctx context.Context, applicationID string) (string, error)
	SaveNotionPageID(ctx context.Context, applicationID, notionPageID string) error
}

type ExportResult struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

type Exporter struct {
	client *Client
	apps   ApplicationSource
	ledger Ledger
}

func NewExporter(client *Client, apps ApplicationSource, ledger Ledger) *Exporter {
	return &Exporter{client: client, apps: apps, ledger: ledger}
}

// Export creates a tracker page for every application not exported before.
// One failed page does not stop the rest.
func (e *Exporter) Export(ctx context.Context) (ExportResult, error) {
	var res ExportResult

	apps, err := e.apps.Applications(ctx, 1, exportPageSize)
	if err != nil {
		return res, fmt.Errorf("list applications: %w", err)
	}

	for _, app := range apps {
		existing, err := e.ledger.NotionPageID(ctx, app.ID)
		if err != nil {
			return res, fmt.Errorf("read export ledger: %w", err)
		}
		if existing != "" {
			res.Skipped++
			continue
		}

		pageID, err := e.client.CreateApplicationPage(ctx, app)
		if err != nil {
			log.Printf("[notion] error creating page for application %s: %v", app.ID, err)
			res.Failed++
			continue
		}
		if err := e.ledger.SaveNotionPageID(ctx, app.ID, pageID); err != nil {
			return res, fmt.Errorf("record export: %w", err)
		}
		res.Created++
	}

	log.Printf("[notion] export done: created=%d skipped=%d failed=%d", res.Created, res.Skipped, res.Failed)
	return res, nil
}
