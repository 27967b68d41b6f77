package client

import (
	"github.com/catalyst-cloud/distil-go/internal/http"
	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// Client is the concrete distil.Client. It holds the resolved service URL,
// the authenticated transport and one manager per resource family.
type Client struct {
	endpoint   string
	httpClient *http.Client

	products     *ProductsManager
	measurements *MeasurementsManager
	invoices     *InvoicesManager
	quotations   *QuotationsManager
	credits      *CreditsManager
	health       *HealthManager

	extensions map[string]any
}

// New assembles a client around an authenticated transport rooted at
// endpoint.
func New(endpoint string, httpClient *http.Client) *Client {
	return &Client{
		endpoint:     endpoint,
		httpClient:   httpClient,
		products:     NewProductsManager(httpClient),
		measurements: NewMeasurementsManager(httpClient),
		invoices:     NewInvoicesManager(httpClient),
		quotations:   NewQuotationsManager(httpClient),
		credits:      NewCreditsManager(httpClient),
		health:       NewHealthManager(httpClient),
		extensions:   make(map[string]any),
	}
}

// Products implements distil.Client.
func (c *Client) Products() distil.ProductsManager {
	return c.products
}

// Measurements implements distil.Client.
func (c *Client) Measurements() distil.MeasurementsManager {
	return c.measurements
}

// Invoices implements distil.Client.
func (c *Client) Invoices() distil.InvoicesManager {
	return c.invoices
}

// Quotations implements distil.Client.
func (c *Client) Quotations() distil.QuotationsManager {
	return c.quotations
}

// Credits implements distil.Client.
func (c *Client) Credits() distil.CreditsManager {
	return c.credits
}

// Health implements distil.Client.
func (c *Client) Health() distil.HealthManager {
	return c.health
}

// AttachExtensions instantiates extension managers against this client. Later
// extensions with the same name override earlier ones.
func (c *Client) AttachExtensions(extensions []distil.Extension) {
	for _, extension := range extensions {
		if extension.Name == "" || extension.NewManager == nil {
			continue
		}

		c.extensions[extension.Name] = extension.NewManager(c)
	}
}

// Extension implements distil.Client.
func (c *Client) Extension(name string) (any, bool) {
	manager, ok := c.extensions[name]

	return manager, ok
}

// Endpoint implements distil.Client.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// HTTPClient exposes the underlying transport for extension managers.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}
