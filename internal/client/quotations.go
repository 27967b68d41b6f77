package client

import (
	"context"
	"strconv"

	"github.com/catalyst-cloud/distil-go/internal/http"
	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// QuotationsManager implements distil.QuotationsManager.
type QuotationsManager struct {
	base
}

// NewQuotationsManager creates a quotations manager.
func NewQuotationsManager(httpClient *http.Client) *QuotationsManager {
	manager := &QuotationsManager{}
	manager.httpClient = httpClient
	manager.owner = manager

	return manager
}

// List returns the current month-to-date quotation for a project.
func (m *QuotationsManager) List(ctx context.Context, opts *distil.QuotationListOptions) ([]distil.Resource, error) {
	params := distil.NewQueryParams()

	if opts != nil {
		if opts.ProjectID != "" {
			params.WithFilter("project_id", opts.ProjectID)
		}

		if opts.Detailed {
			params.WithFilter("detailed", strconv.FormatBool(opts.Detailed))
		}

		if len(opts.Regions) > 0 {
			params.WithFilter("regions", opts.Regions...)
		}
	}

	return m.list(ctx, "/v2/quotations"+params.Encode(), "quotations", "Quotation")
}
