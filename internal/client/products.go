package client

import (
	"context"

	"github.com/catalyst-cloud/distil-go/internal/http"
	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// ProductsManager implements distil.ProductsManager.
type ProductsManager struct {
	base
}

// NewProductsManager creates a products manager.
func NewProductsManager(httpClient *http.Client) *ProductsManager {
	manager := &ProductsManager{}
	manager.httpClient = httpClient
	manager.owner = manager

	return manager
}

// List returns the rated products, optionally restricted to regions.
func (m *ProductsManager) List(ctx context.Context, opts *distil.ProductListOptions) ([]distil.Resource, error) {
	params := distil.NewQueryParams()
	if opts != nil && len(opts.Regions) > 0 {
		params.WithFilter("regions", opts.Regions...)
	}

	return m.list(ctx, "/v2/products"+params.Encode(), "products", "Product")
}
