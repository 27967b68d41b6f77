package client

import (
	"context"
	"strconv"

	"github.com/catalyst-cloud/distil-go/internal/http"
	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// InvoicesManager implements distil.InvoicesManager.
type InvoicesManager struct {
	base
}

// NewInvoicesManager creates an invoices manager.
func NewInvoicesManager(httpClient *http.Client) *InvoicesManager {
	manager := &InvoicesManager{}
	manager.httpClient = httpClient
	manager.owner = manager

	return manager
}

// List returns invoices issued for a project over a time range. Detailed
// asks the server to break each invoice down per resource.
func (m *InvoicesManager) List(ctx context.Context, opts *distil.InvoiceListOptions) ([]distil.Resource, error) {
	params := distil.NewQueryParams()

	if opts != nil {
		if opts.ProjectID != "" {
			params.WithFilter("project_id", opts.ProjectID)
		}

		if opts.Start != "" {
			params.WithFilter("start", opts.Start)
		}

		if opts.End != "" {
			params.WithFilter("end", opts.End)
		}

		if opts.Detailed {
			params.WithFilter("detailed", strconv.FormatBool(opts.Detailed))
		}

		if len(opts.Regions) > 0 {
			params.WithFilter("regions", opts.Regions...)
		}
	}

	return m.list(ctx, "/v2/invoices"+params.Encode(), "invoices", "Invoice")
}
