package auth

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/catalyst-cloud/distil-go/internal/constants"
	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// Credentials identify a user and scope for keystone authentication.
type Credentials struct {
	Username          string
	Password          string
	UserID            string
	UserDomainID      string
	UserDomainName    string
	ProjectID         string
	ProjectName       string
	ProjectDomainID   string
	ProjectDomainName string
}

// Endpoint is one interface/region/URL triple from the service catalog.
type Endpoint struct {
	Interface string
	Region    string
	RegionID  string
	URL       string
}

// CatalogEntry is one service in the catalog.
type CatalogEntry struct {
	Type      string
	Name      string
	Endpoints []Endpoint
}

// Catalog is the service catalog returned alongside a token.
type Catalog []CatalogEntry

// Endpoint scans the catalog for the first endpoint matching the service
// type, interface and, when given, exact region (by region name or ID).
func (c Catalog) Endpoint(serviceType, serviceName, iface, region string) (string, error) {
	for _, entry := range c {
		if entry.Type != serviceType {
			continue
		}

		if serviceName != "" && entry.Name != serviceName {
			continue
		}

		for _, endpoint := range entry.Endpoints {
			if endpoint.Interface != iface {
				continue
			}

			if region != "" && region != endpoint.Region && region != endpoint.RegionID {
				continue
			}

			return endpoint.URL, nil
		}
	}

	return "", fmt.Errorf("%w: service type %q, interface %q, region %q",
		distil.ErrEndpointNotFound, serviceType, iface, region)
}

// AuthResult is a freshly issued token plus the catalog it came with.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	Catalog   Catalog
}

// IdentityClient talks to a keystone-style identity service. It discovers
// whether the service speaks the v2 or v3 protocol and authenticates with
// the newer one when both are available.
type IdentityClient struct {
	authURL    string
	httpClient *http.Client
}

// NewIdentityClient creates an identity client for the given auth URL.
// tlsConfig may be nil.
func NewIdentityClient(authURL string, tlsConfig *tls.Config) *IdentityClient {
	httpClient := &http.Client{Timeout: constants.ShortHTTPTimeout}
	if tlsConfig != nil {
		httpClient.Transport = &http.Transport{TLSClientConfig: tlsConfig}
	}

	return &IdentityClient{
		authURL:    strings.TrimSuffix(authURL, "/"),
		httpClient: httpClient,
	}
}

type versionLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type identityVersion struct {
	ID     string        `json:"id"`
	Status string        `json:"status"`
	Links  []versionLink `json:"links"`
}

func (v identityVersion) selfLink() string {
	for _, link := range v.Links {
		if link.Rel == "self" {
			return strings.TrimSuffix(link.Href, "/")
		}
	}

	return ""
}

// DiscoverVersions asks the identity root which protocol versions it speaks
// and returns the v2 and v3 root URLs; either may be empty.
func (c *IdentityClient) DiscoverVersions(ctx context.Context) (string, string, error) {
	body, err := c.getJSON(ctx, c.authURL)
	if err != nil {
		return "", "", fmt.Errorf("discovering identity versions: %w", err)
	}

	var discovered struct {
		Versions struct {
			Values []identityVersion `json:"values"`
		} `json:"versions"`
		Version *identityVersion `json:"version"`
	}

	err = json.Unmarshal(body, &discovered)
	if err != nil {
		return "", "", fmt.Errorf("parsing identity version document: %w", err)
	}

	versions := discovered.Versions.Values
	if discovered.Version != nil {
		versions = append(versions, *discovered.Version)
	}

	var v2URL, v3URL string

	for _, version := range versions {
		switch {
		case strings.HasPrefix(version.ID, "v3"):
			v3URL = version.selfLink()
		case strings.HasPrefix(version.ID, "v2"):
			v2URL = version.selfLink()
		}
	}

	return v2URL, v3URL, nil
}

// Authenticate obtains a token and service catalog, preferring the v3
// protocol when the identity service offers both.
func (c *IdentityClient) Authenticate(ctx context.Context, creds Credentials) (*AuthResult, error) {
	v2URL, v3URL, err := c.DiscoverVersions(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case v3URL != "":
		return c.authenticateV3(ctx, v3URL, creds)
	case v2URL != "":
		return c.authenticateV2(ctx, v2URL, creds)
	default:
		return nil, distil.ErrIdentityVersionUndetermined
	}
}

func domainRef(id, name string) map[string]string {
	switch {
	case id != "":
		return map[string]string{"id": id}
	case name != "":
		return map[string]string{"name": name}
	default:
		return nil
	}
}

func (c *IdentityClient) authenticateV3(ctx context.Context, rootURL string, creds Credentials) (*AuthResult, error) {
	user := map[string]any{"password": creds.Password}
	if creds.UserID != "" {
		user["id"] = creds.UserID
	} else {
		user["name"] = creds.Username
	}

	if domain := domainRef(creds.UserDomainID, creds.UserDomainName); domain != nil {
		user["domain"] = domain
	}

	auth := map[string]any{
		"identity": map[string]any{
			"methods":  []string{"password"},
			"password": map[string]any{"user": user},
		},
	}

	project := map[string]any{}
	if creds.ProjectID != "" {
		project["id"] = creds.ProjectID
	} else if creds.ProjectName != "" {
		project["name"] = creds.ProjectName
	}

	if domain := domainRef(creds.ProjectDomainID, creds.ProjectDomainName); domain != nil {
		project["domain"] = domain
	}

	if len(project) > 0 {
		auth["scope"] = map[string]any{"project": project}
	}

	payload := map[string]any{"auth": auth}

	resp, body, err := c.postJSON(ctx, rootURL+"/auth/tokens", payload)
	if err != nil {
		return nil, fmt.Errorf("v3 authentication: %w", err)
	}

	token := resp.Header.Get("X-Subject-Token")
	if token == "" {
		return nil, distil.ErrNotAuthorized
	}

	var decoded struct {
		Token struct {
			ExpiresAt time.Time `json:"expires_at"`
			Catalog   []struct {
				Type      string `json:"type"`
				Name      string `json:"name"`
				Endpoints []struct {
					Interface string `json:"interface"`
					Region    string `json:"region"`
					RegionID  string `json:"region_id"`
					URL       string `json:"url"`
				} `json:"endpoints"`
			} `json:"catalog"`
		} `json:"token"`
	}

	err = json.Unmarshal(body, &decoded)
	if err != nil {
		return nil, fmt.Errorf("parsing v3 token response: %w", err)
	}

	catalog := make(Catalog, 0, len(decoded.Token.Catalog))

	for _, entry := range decoded.Token.Catalog {
		normalized := CatalogEntry{Type: entry.Type, Name: entry.Name}
		for _, endpoint := range entry.Endpoints {
			normalized.Endpoints = append(normalized.Endpoints, Endpoint{
				Interface: endpoint.Interface,
				Region:    endpoint.Region,
				RegionID:  endpoint.RegionID,
				URL:       endpoint.URL,
			})
		}

		catalog = append(catalog, normalized)
	}

	return &AuthResult{
		Token:     token,
		ExpiresAt: decoded.Token.ExpiresAt,
		Catalog:   catalog,
	}, nil
}

func (c *IdentityClient) authenticateV2(ctx context.Context, rootURL string, creds Credentials) (*AuthResult, error) {
	auth := map[string]any{
		"passwordCredentials": map[string]string{
			"username": creds.Username,
			"password": creds.Password,
		},
	}

	if creds.ProjectID != "" {
		auth["tenantId"] = creds.ProjectID
	} else if creds.ProjectName != "" {
		auth["tenantName"] = creds.ProjectName
	}

	payload := map[string]any{"auth": auth}

	_, body, err := c.postJSON(ctx, rootURL+"/tokens", payload)
	if err != nil {
		return nil, fmt.Errorf("v2 authentication: %w", err)
	}

	var decoded struct {
		Access struct {
			Token struct {
				ID      string    `json:"id"`
				Expires time.Time `json:"expires"`
			} `json:"token"`
			ServiceCatalog []struct {
				Type      string `json:"type"`
				Name      string `json:"name"`
				Endpoints []struct {
					Region      string `json:"region"`
					PublicURL   string `json:"publicURL"`
					InternalURL string `json:"internalURL"`
					AdminURL    string `json:"adminURL"`
				} `json:"endpoints"`
			} `json:"serviceCatalog"`
		} `json:"access"`
	}

	err = json.Unmarshal(body, &decoded)
	if err != nil {
		return nil, fmt.Errorf("parsing v2 token response: %w", err)
	}

	if decoded.Access.Token.ID == "" {
		return nil, distil.ErrNotAuthorized
	}

	catalog := make(Catalog, 0, len(decoded.Access.ServiceCatalog))

	for _, entry := range decoded.Access.ServiceCatalog {
		normalized := CatalogEntry{Type: entry.Type, Name: entry.Name}

		// v2 folds the three interfaces into one endpoint record.
		for _, endpoint := range entry.Endpoints {
			for iface, endpointURL := range map[string]string{
				distil.InterfacePublic:   endpoint.PublicURL,
				distil.InterfaceInternal: endpoint.InternalURL,
				distil.InterfaceAdmin:    endpoint.AdminURL,
			} {
				if endpointURL == "" {
					continue
				}

				normalized.Endpoints = append(normalized.Endpoints, Endpoint{
					Interface: iface,
					Region:    endpoint.Region,
					URL:       endpointURL,
				})
			}
		}

		catalog = append(catalog, normalized)
	}

	return &AuthResult{
		Token:     decoded.Access.Token.ID,
		ExpiresAt: decoded.Access.Token.Expires,
		Catalog:   catalog,
	}, nil
}

func (c *IdentityClient) getJSON(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	// Identity roots answer 300 Multiple Choices for version listings.
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, distil.NewAPIError(resp.StatusCode, body)
	}

	return body, nil
}

func (c *IdentityClient) postJSON(ctx context.Context, requestURL string, payload any) (*http.Response, []byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, nil, distil.NewAPIError(resp.StatusCode, body)
	}

	return resp, body, nil
}
