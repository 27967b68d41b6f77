package distil

import (
	"context"
	"time"
)

// Logger is the structured logger used by the HTTP layer when Debug is
// enabled. The core library logs nothing on its own.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Session is an externally managed identity session. When supplied, token
// retrieval and endpoint lookup are delegated to it instead of the built-in
// keystone client.
type Session interface {
	// Token returns a valid bearer token for the session.
	Token(ctx context.Context) (string, error)
	// Endpoint resolves the service URL for the given service type,
	// interface (public/internal/admin) and region. Region may be empty.
	Endpoint(ctx context.Context, serviceType, iface, region string) (string, error)
}

// Extension attaches an additional named manager to the client at
// construction time. NewManager is invoked with the client being built;
// the result is exposed via Client.Extension(Name).
type Extension struct {
	Name       string
	NewManager func(c Client) any
}

// Endpoint interface selectors.
const (
	InterfacePublic   = "public"
	InterfaceInternal = "internal"
	InterfaceAdmin    = "admin"
)

// DefaultServiceType is the catalog service type Distil registers under.
const DefaultServiceType = "rating"

// Config carries everything needed to build a Client.
//
// # Authentication precedence
//
//  1. AuthToken + DistilURL: the token is used directly and the identity
//     service is never contacted. AuthToken without DistilURL is a
//     configuration error.
//  2. Session: token retrieval and endpoint lookup are delegated to it.
//  3. Username/Password (+ project/domain fields): a keystone client is
//     built from AuthURL, the identity version is auto-discovered (v3
//     preferred over v2 when both are available) and a token plus service
//     catalog are obtained through a password authentication.
type Config struct {
	// Identity credentials.
	Username          string
	Password          string
	UserID            string
	UserDomainID      string
	UserDomainName    string
	ProjectID         string
	ProjectName       string
	ProjectDomainID   string
	ProjectDomainName string

	// AuthURL is the identity service root, e.g.
	// "https://keystone.example.com:5000".
	AuthURL string

	// RegionName restricts catalog endpoint lookup to an exact region.
	RegionName string
	// Interface selects the endpoint interface: public (default),
	// internal or admin.
	Interface string
	// ServiceType is the catalog service type; defaults to "rating".
	ServiceType string
	// ServiceName optionally restricts lookup to a named service.
	ServiceName string

	// AuthToken short-circuits authentication; requires DistilURL.
	AuthToken string
	// DistilURL skips catalog endpoint resolution when set.
	DistilURL string

	// Session delegates token and endpoint resolution when set.
	Session Session

	// TLS options for both the identity and the Distil transport.
	Insecure   bool
	CACert     string
	ClientCert string
	ClientKey  string

	// Transport tuning.
	Retries      int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	HTTPTimeout  time.Duration

	// Debug enables HTTP request/response logging through Logger.
	Debug  bool
	Logger Logger

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// APIVersion selects the API version; defaults to "2". Versions
	// outside DefaultAPIVersion() fail construction with
	// *VersionNotFoundError.
	APIVersion string

	// TokenCache caches identity tokens across client constructions.
	// Nil disables caching.
	TokenCache *CacheConfig
	// CachedTokenLifetime bounds how long a cached token is reused.
	CachedTokenLifetime time.Duration

	// Extensions are attached as named managers after the built-in ones.
	Extensions []Extension

	// APIKey is a legacy alias for Password.
	//
	// Deprecated: use Password.
	APIKey string
	// TenantID is a legacy alias for ProjectID.
	//
	// Deprecated: use ProjectID.
	TenantID string
	// TenantName is a legacy alias for ProjectName.
	//
	// Deprecated: use ProjectName.
	TenantName string
	// OSCache is the legacy keyring toggle.
	//
	// Deprecated: use TokenCache.
	OSCache bool
	// ProxyToken is accepted for backward compatibility and ignored.
	//
	// Deprecated: no replacement.
	ProxyToken string
	// ProxyTenantID is accepted for backward compatibility and ignored.
	//
	// Deprecated: no replacement.
	ProxyTenantID string
}

// ProductListOptions filter product listings.
type ProductListOptions struct {
	Regions []string
}

// MeasurementListOptions filter usage measurement listings.
type MeasurementListOptions struct {
	ProjectID string
	Start     string
	End       string
	Regions   []string
}

// InvoiceListOptions filter invoice listings.
type InvoiceListOptions struct {
	ProjectID string
	Start     string
	End       string
	Detailed  bool
	Regions   []string
}

// QuotationListOptions filter quotation listings.
type QuotationListOptions struct {
	ProjectID string
	Detailed  bool
	Regions   []string
}

// ProductsManager lists rated products.
type ProductsManager interface {
	List(ctx context.Context, opts *ProductListOptions) ([]Resource, error)
}

// MeasurementsManager lists raw usage measurements.
type MeasurementsManager interface {
	List(ctx context.Context, opts *MeasurementListOptions) ([]Resource, error)
}

// InvoicesManager lists issued invoices.
type InvoicesManager interface {
	List(ctx context.Context, opts *InvoiceListOptions) ([]Resource, error)
}

// QuotationsManager lists current-month quotations.
type QuotationsManager interface {
	List(ctx context.Context, opts *QuotationListOptions) ([]Resource, error)
}

// CreditsManager lists and redeems credits.
type CreditsManager interface {
	List(ctx context.Context, projectID string) ([]Resource, error)
	Create(ctx context.Context, code string) (*Resource, error)
}

// HealthManager reports service health.
type HealthManager interface {
	Get(ctx context.Context) (*Resource, error)
}

// Client is the top-level object to access the Distil API. A Client always
// holds a resolved service URL and a token source once constructed.
//
// Clients are intended for single-owner sequential use; callers needing
// concurrency should serialize access or build one Client per worker.
type Client interface {
	Products() ProductsManager
	Measurements() MeasurementsManager
	Invoices() InvoicesManager
	Quotations() QuotationsManager
	Credits() CreditsManager
	Health() HealthManager

	// Extension returns a manager attached via Config.Extensions.
	Extension(name string) (any, bool)

	// Endpoint returns the resolved Distil service URL.
	Endpoint() string
}
