// Package distilclient provides the main entry point for creating Distil API
// clients.
package distilclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"strings"

	"github.com/catalyst-cloud/distil-go/internal/auth"
	"github.com/catalyst-cloud/distil-go/internal/client"
	"github.com/catalyst-cloud/distil-go/internal/constants"
	"github.com/catalyst-cloud/distil-go/internal/http"
	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// New creates a Distil client from config. Configuration is validated and
// deprecated fields are folded into their replacements before any network
// traffic; authentication and catalog endpoint resolution then follow the
// precedence documented on distil.Config.
func New(ctx context.Context, config *distil.Config) (distil.Client, error) {
	if config == nil {
		return nil, distil.ErrConfigRequired
	}

	// Fold deprecated fields on a copy; the caller's config stays untouched.
	cfg := *config
	config = &cfg

	applyDeprecatedFields(config)

	apiVersion := config.APIVersion
	if apiVersion == "" {
		apiVersion = distil.DefaultAPIVersion().Max
	}

	if !distil.DefaultAPIVersion().Supported(apiVersion) {
		return nil, &distil.VersionNotFoundError{Version: apiVersion}
	}

	if config.AuthToken != "" && config.DistilURL == "" {
		return nil, distil.ErrTokenRequiresURL
	}

	tlsConfig, err := buildTLSConfig(config)
	if err != nil {
		return nil, err
	}

	tokenManager, endpoint, err := resolveAuth(ctx, config, tlsConfig)
	if err != nil {
		return nil, err
	}

	// A client is only handed out with a token in hand; a token source that
	// cannot produce one fails construction, not the first request.
	token, err := tokenManager.GetToken(ctx)
	if err != nil {
		return nil, err
	}

	if token == "" {
		return nil, distil.ErrNotAuthorized
	}

	endpoint = strings.TrimSuffix(endpoint, "/")

	httpClient := http.NewClient(endpoint, tokenManager, transportOptions(config, tlsConfig, apiVersion)...)

	built := client.New(endpoint, httpClient)
	built.AttachExtensions(config.Extensions)

	return built, nil
}

// resolveAuth picks the token source and service URL per the documented
// precedence: explicit token, then session, then keystone password auth.
func resolveAuth(ctx context.Context, config *distil.Config, tlsConfig *tls.Config) (http.TokenManager, string, error) {
	serviceType := config.ServiceType
	if serviceType == "" {
		serviceType = distil.DefaultServiceType
	}

	iface := config.Interface
	if iface == "" {
		iface = distil.InterfacePublic
	}

	if config.AuthToken != "" {
		return auth.NewStaticTokenManager(config.AuthToken), config.DistilURL, nil
	}

	if config.Session != nil {
		endpoint := config.DistilURL
		if endpoint == "" {
			resolved, err := config.Session.Endpoint(ctx, serviceType, iface, config.RegionName)
			if err != nil {
				return nil, "", fmt.Errorf("resolving endpoint through session: %w", err)
			}

			endpoint = resolved
		}

		return auth.NewSessionTokenManager(config.Session), endpoint, nil
	}

	if config.AuthURL == "" {
		return nil, "", distil.ErrAuthURLRequired
	}

	if config.Password == "" || (config.Username == "" && config.UserID == "") {
		return nil, "", distil.ErrCredentialsRequired
	}

	identity := auth.NewIdentityClient(config.AuthURL, tlsConfig)
	keystone := auth.NewKeystoneTokenManager(identity, auth.Credentials{
		Username:          config.Username,
		Password:          config.Password,
		UserID:            config.UserID,
		UserDomainID:      config.UserDomainID,
		UserDomainName:    config.UserDomainName,
		ProjectID:         config.ProjectID,
		ProjectName:       config.ProjectName,
		ProjectDomainID:   config.ProjectDomainID,
		ProjectDomainName: config.ProjectDomainName,
	})

	endpoint := config.DistilURL
	if endpoint == "" {
		catalog, err := keystone.Catalog(ctx)
		if err != nil {
			return nil, "", err
		}

		endpoint, err = catalog.Endpoint(serviceType, config.ServiceName, iface, config.RegionName)
		if err != nil {
			return nil, "", err
		}
	}

	tokenManager, err := wrapWithCache(config, keystone)
	if err != nil {
		return nil, "", err
	}

	return tokenManager, endpoint, nil
}

// wrapWithCache layers the configured token cache over the keystone manager.
func wrapWithCache(config *distil.Config, keystone *auth.KeystoneTokenManager) (http.TokenManager, error) {
	if config.TokenCache == nil {
		return keystone, nil
	}

	cache, err := distil.NewCacheFromConfig(config.TokenCache)
	if err != nil {
		return nil, fmt.Errorf("building token cache: %w", err)
	}

	lifetime := config.CachedTokenLifetime
	if lifetime <= 0 {
		lifetime = constants.DefaultCachedTokenLifetime
	}

	return auth.NewCachingTokenManager(keystone, cache, config.AuthURL, config.Username, lifetime), nil
}

// transportOptions maps config onto transport options.
func transportOptions(config *distil.Config, tlsConfig *tls.Config, apiVersion string) []http.Option {
	opts := []http.Option{http.WithAPIVersion(apiVersion)}

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.Retries > 0 || config.RetryWaitMin > 0 || config.RetryWaitMax > 0 {
		retries := config.Retries
		if retries <= 0 {
			retries = constants.DefaultRetryMax
		}

		waitMin := config.RetryWaitMin
		if waitMin <= 0 {
			waitMin = constants.DefaultRetryWaitMin
		}

		waitMax := config.RetryWaitMax
		if waitMax <= 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, http.WithRetryConfig(retries, waitMin, waitMax))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, http.WithTimeout(config.HTTPTimeout))
	}

	if tlsConfig != nil {
		opts = append(opts, http.WithTLSConfig(tlsConfig))
	}

	return opts
}

// buildTLSConfig assembles TLS settings from config; nil means defaults.
func buildTLSConfig(config *distil.Config) (*tls.Config, error) {
	if !config.Insecure && config.CACert == "" && config.ClientCert == "" {
		return nil, nil
	}

	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: config.Insecure, // #nosec G402 -- explicit opt-in
	}

	if config.CACert != "" {
		pem, err := os.ReadFile(config.CACert)
		if err != nil {
			return nil, fmt.Errorf("reading CA certificate: %w", err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("parsing CA certificate %s: no certificates found", config.CACert)
		}

		tlsConfig.RootCAs = pool
	}

	if config.ClientCert != "" {
		cert, err := tls.LoadX509KeyPair(config.ClientCert, config.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("loading client certificate: %w", err)
		}

		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

// applyDeprecatedFields folds legacy config fields into their replacements,
// warning once per field that was set.
func applyDeprecatedFields(config *distil.Config) {
	warn := func(msg string) {
		if config.Logger != nil {
			config.Logger.Warn(msg, nil)

			return
		}

		fmt.Fprintln(os.Stderr, "WARNING: "+msg)
	}

	if config.APIKey != "" {
		warn("Config.APIKey is deprecated, use Config.Password")

		if config.Password == "" {
			config.Password = config.APIKey
		}
	}

	if config.TenantID != "" {
		warn("Config.TenantID is deprecated, use Config.ProjectID")

		if config.ProjectID == "" {
			config.ProjectID = config.TenantID
		}
	}

	if config.TenantName != "" {
		warn("Config.TenantName is deprecated, use Config.ProjectName")

		if config.ProjectName == "" {
			config.ProjectName = config.TenantName
		}
	}

	if config.OSCache {
		warn("Config.OSCache is deprecated, use Config.TokenCache")

		if config.TokenCache == nil {
			config.TokenCache = distil.DefaultCacheConfig()
		}
	}

	if config.ProxyToken != "" {
		warn("Config.ProxyToken is deprecated and ignored")
	}

	if config.ProxyTenantID != "" {
		warn("Config.ProxyTenantID is deprecated and ignored")
	}
}
