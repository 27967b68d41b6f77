package distil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Static configuration errors raised during client construction, before any
// request is issued.
var (
	ErrConfigRequired              = errors.New("config is required")
	ErrAuthURLRequired             = errors.New("auth URL is required when no token or session is supplied")
	ErrCredentialsRequired         = errors.New("username and password are required to authenticate")
	ErrTokenRequiresURL            = errors.New("token-based authentication requires both an auth token and a Distil URL")
	ErrNotAuthorized               = errors.New("not authorized: no token obtained from the identity service")
	ErrEndpointNotFound            = errors.New("could not find a Distil endpoint in the service catalog")
	ErrIdentityVersionUndetermined = errors.New("unable to determine the identity service version from the given auth URL")
)

// ErrFieldNotFound is wrapped by Resource.Field for missing fields.
var ErrFieldNotFound = errors.New("field not found")

// VersionNotFoundError reports a requested API version this client does not
// support.
type VersionNotFoundError struct {
	Version string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("API version %q is not supported", e.Version)
}

// APIError carries the HTTP status and decoded error body of a non-2xx
// response.
type APIError struct {
	StatusCode int
	Title      string
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s (HTTP %d)", e.Title, e.StatusCode)
	}

	return fmt.Sprintf("%s: %s (HTTP %d)", e.Title, e.Detail, e.StatusCode)
}

// titles mirror the usual REST status-to-error mapping.
var statusTitles = map[int]string{
	http.StatusBadRequest:            "Bad Request",
	http.StatusUnauthorized:          "Unauthorized",
	http.StatusForbidden:             "Forbidden",
	http.StatusNotFound:              "Not Found",
	http.StatusMethodNotAllowed:      "Method Not Allowed",
	http.StatusConflict:              "Conflict",
	http.StatusRequestEntityTooLarge: "Over Limit",
	http.StatusUnsupportedMediaType:  "Unsupported Media Type",
	http.StatusUnprocessableEntity:   "Unprocessable Entity",
	http.StatusTooManyRequests:       "Rate Limit Exceeded",
	http.StatusInternalServerError:   "Internal Server Error",
	http.StatusNotImplemented:        "Not Implemented",
	http.StatusServiceUnavailable:    "Service Unavailable",
}

// NewAPIError maps a non-2xx response to its typed error, extracting a
// detail message from the common error body shapes.
func NewAPIError(statusCode int, body []byte) *APIError {
	title, ok := statusTitles[statusCode]
	if !ok {
		title = "HTTP Error"
	}

	return &APIError{
		StatusCode: statusCode,
		Title:      title,
		Detail:     errorDetail(body),
	}
}

func errorDetail(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var decoded map[string]any
	if json.Unmarshal(body, &decoded) != nil {
		return strings.TrimSpace(string(body))
	}

	for _, key := range []string{"error_message", "message", "detail", "faultstring"} {
		if msg, ok := decoded[key].(string); ok && msg != "" {
			return msg
		}
	}

	if nested, ok := decoded["error"].(map[string]any); ok {
		if msg, ok := nested["message"].(string); ok && msg != "" {
			return msg
		}
	}

	return strings.TrimSpace(string(body))
}

func hasStatus(err error, statusCode int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == statusCode
	}

	return false
}

// IsBadRequest checks if the error is a bad request error.
func IsBadRequest(err error) bool {
	return hasStatus(err, http.StatusBadRequest)
}

// IsUnauthorized checks if the error is an authorization failure.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a forbidden error.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsConflict checks if the error is a conflict error.
func IsConflict(err error) bool {
	return hasStatus(err, http.StatusConflict)
}

// IsServerError checks if the error carries a 5xx status.
func IsServerError(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= http.StatusInternalServerError
	}

	return false
}
