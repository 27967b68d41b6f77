// Package constants centralizes defaults shared across the library and CLI.
package constants

import "time"

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for API requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as identity
	// version discovery.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum backoff between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum backoff between retries.
	DefaultRetryWaitMax = 30 * time.Second
)

// Identity defaults.
const (
	// DefaultCachedTokenLifetime bounds how long a cached identity token
	// is reused before re-authenticating.
	DefaultCachedTokenLifetime = 300 * time.Second

	// TokenExpiryBuffer treats tokens expiring this soon as expired.
	TokenExpiryBuffer = 30 * time.Second
)

// DefaultUserAgent identifies this client on the wire.
const DefaultUserAgent = "distil-go"
