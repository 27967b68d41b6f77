package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

type staticTokens struct {
	token     string
	refreshed atomic.Int32
}

func (s *staticTokens) GetToken(ctx context.Context) (string, error) {
	return s.token, nil
}

func (s *staticTokens) RefreshToken(ctx context.Context) error {
	s.refreshed.Add(1)
	s.token = "refreshed-token"

	return nil
}

func TestClientGet(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/products", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	resp, err := client.Get(context.Background(), "/v2/products", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"products": []}`, string(resp.Body))
}

func TestClientAuthHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-token", r.Header.Get("X-Auth-Token"))
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, &staticTokens{token: "secret-token"})

	_, err := client.Get(context.Background(), "/v2/health", nil)
	require.NoError(t, err)
}

func TestClientUserAgentAndVersionHeaders(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "distil-go-tests", r.Header.Get("User-Agent"))
		assert.Equal(t, "2", r.Header.Get("X-Distil-Version"))

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil,
		WithUserAgent("distil-go-tests"),
		WithAPIVersion("2"))

	_, err := client.Get(context.Background(), "/v2/health", nil)
	require.NoError(t, err)
}

func TestClientPostBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"code": "SUMMER"}`, string(body))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"credit": {"code": "SUMMER"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	resp, err := client.Post(context.Background(), "/v2/credits", map[string]string{"code": "SUMMER"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestClientErrorTranslation(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error_message": "no such thing"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	resp, err := client.Get(context.Background(), "/v2/invoices", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	apiErr := &distil.APIError{}
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "no such thing", apiErr.Detail)
	assert.True(t, distil.IsNotFound(err))
}

func TestClientNoRetryOnBadRequest(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil,
		WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))

	_, err := client.Get(context.Background(), "/v2/products", nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientRetriesServerError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil,
		WithRetryConfig(3, time.Millisecond, 5*time.Millisecond))

	resp, err := client.Get(context.Background(), "/v2/products", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientRefreshesTokenOnUnauthorized(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Auth-Token") != "refreshed-token" {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	tokens := &staticTokens{token: "stale-token"}
	client := NewClient(server.URL, tokens)

	resp, err := client.Get(context.Background(), "/v2/products", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(1), tokens.refreshed.Load())
}

func TestClientQueryValues(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "p-123", r.URL.Query().Get("project_id"))

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	_, err := client.Get(context.Background(), "/v2/credits", url.Values{"project_id": {"p-123"}})
	require.NoError(t, err)
}

func TestClientPreEncodedQueryPreserved(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "regions=nz-hlz-1,nz-por-1", r.URL.RawQuery)

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)

	_, err := client.Get(context.Background(), "/v2/products?regions=nz-hlz-1,nz-por-1", nil)
	require.NoError(t, err)
}
