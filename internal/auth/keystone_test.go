package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

func versionDocument(baseURL string, ids ...string) map[string]any {
	values := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		values = append(values, map[string]any{
			"id":     id,
			"status": "stable",
			"links": []map[string]string{
				{"rel": "self", "href": fmt.Sprintf("%s/%s", baseURL, id[:2])},
			},
		})
	}

	return map[string]any{"versions": map[string]any{"values": values}}
}

func TestDiscoverVersions(t *testing.T) {
	t.Parallel()

	var serverURL string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMultipleChoices)
		_ = json.NewEncoder(w).Encode(versionDocument(serverURL, "v3.14", "v2.0"))
	}))
	defer server.Close()

	serverURL = server.URL

	identity := NewIdentityClient(server.URL, nil)

	v2URL, v3URL, err := identity.DiscoverVersions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/v2", v2URL)
	assert.Equal(t, server.URL+"/v3", v3URL)
}

func TestDiscoverVersionsSingleVersionDocument(t *testing.T) {
	t.Parallel()

	var serverURL string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"version": map[string]any{
				"id":     "v3.14",
				"status": "stable",
				"links": []map[string]string{
					{"rel": "self", "href": serverURL + "/v3"},
				},
			},
		})
	}))
	defer server.Close()

	serverURL = server.URL

	identity := NewIdentityClient(server.URL, nil)

	v2URL, v3URL, err := identity.DiscoverVersions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, v2URL)
	assert.Equal(t, server.URL+"/v3", v3URL)
}

func TestAuthenticatePrefersV3(t *testing.T) {
	t.Parallel()

	var serverURL string

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMultipleChoices)
		_ = json.NewEncoder(w).Encode(versionDocument(serverURL, "v3.14", "v2.0"))
	})
	mux.HandleFunc("/v3/auth/tokens", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var payload struct {
			Auth struct {
				Identity struct {
					Password struct {
						User map[string]any `json:"user"`
					} `json:"password"`
				} `json:"identity"`
				Scope struct {
					Project map[string]any `json:"project"`
				} `json:"scope"`
			} `json:"auth"`
		}

		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "alice", payload.Auth.Identity.Password.User["name"])
		assert.Equal(t, "s3cret", payload.Auth.Identity.Password.User["password"])
		assert.Equal(t, "demo", payload.Auth.Scope.Project["name"])

		w.Header().Set("X-Subject-Token", "issued-token")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": map[string]any{
				"expires_at": time.Now().Add(time.Hour).Format(time.RFC3339),
				"catalog": []map[string]any{
					{
						"type": "rating",
						"name": "distil",
						"endpoints": []map[string]any{
							{
								"interface": "public",
								"region":    "nz-hlz-1",
								"url":       "https://distil.example.com:9999",
							},
						},
					},
				},
			},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	serverURL = server.URL

	identity := NewIdentityClient(server.URL, nil)

	result, err := identity.Authenticate(context.Background(), Credentials{
		Username:    "alice",
		Password:    "s3cret",
		ProjectName: "demo",
	})
	require.NoError(t, err)
	assert.Equal(t, "issued-token", result.Token)
	assert.True(t, result.ExpiresAt.After(time.Now()))

	endpoint, err := result.Catalog.Endpoint("rating", "", "public", "nz-hlz-1")
	require.NoError(t, err)
	assert.Equal(t, "https://distil.example.com:9999", endpoint)
}

func TestAuthenticateFallsBackToV2(t *testing.T) {
	t.Parallel()

	var serverURL string

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMultipleChoices)
		_ = json.NewEncoder(w).Encode(versionDocument(serverURL, "v2.0"))
	})
	mux.HandleFunc("/v2/tokens", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Auth struct {
				PasswordCredentials map[string]string `json:"passwordCredentials"`
				TenantName          string            `json:"tenantName"`
			} `json:"auth"`
		}

		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "alice", payload.Auth.PasswordCredentials["username"])
		assert.Equal(t, "demo", payload.Auth.TenantName)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"access": map[string]any{
				"token": map[string]any{
					"id":      "v2-token",
					"expires": time.Now().Add(time.Hour).Format(time.RFC3339),
				},
				"serviceCatalog": []map[string]any{
					{
						"type": "rating",
						"name": "distil",
						"endpoints": []map[string]any{
							{
								"region":      "nz-por-1",
								"publicURL":   "https://distil.example.com:9999",
								"internalURL": "https://distil.internal:9999",
							},
						},
					},
				},
			},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	serverURL = server.URL

	identity := NewIdentityClient(server.URL, nil)

	result, err := identity.Authenticate(context.Background(), Credentials{
		Username:    "alice",
		Password:    "s3cret",
		ProjectName: "demo",
	})
	require.NoError(t, err)
	assert.Equal(t, "v2-token", result.Token)

	public, err := result.Catalog.Endpoint("rating", "", "public", "nz-por-1")
	require.NoError(t, err)
	assert.Equal(t, "https://distil.example.com:9999", public)

	internal, err := result.Catalog.Endpoint("rating", "", "internal", "nz-por-1")
	require.NoError(t, err)
	assert.Equal(t, "https://distil.internal:9999", internal)
}

func TestAuthenticateNoVersions(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer server.Close()

	identity := NewIdentityClient(server.URL, nil)

	_, err := identity.Authenticate(context.Background(), Credentials{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, distil.ErrIdentityVersionUndetermined)
}

func TestAuthenticateUnauthorized(t *testing.T) {
	t.Parallel()

	var serverURL string

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMultipleChoices)
		_ = json.NewEncoder(w).Encode(versionDocument(serverURL, "v3.14"))
	})
	mux.HandleFunc("/v3/auth/tokens", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid credentials"},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	serverURL = server.URL

	identity := NewIdentityClient(server.URL, nil)

	_, err := identity.Authenticate(context.Background(), Credentials{Username: "alice", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, distil.IsUnauthorized(err))
}

func TestCatalogEndpointLookup(t *testing.T) {
	t.Parallel()

	catalog := Catalog{
		{
			Type: "identity",
			Name: "keystone",
			Endpoints: []Endpoint{
				{Interface: "public", Region: "nz-hlz-1", URL: "https://keystone.example.com:5000"},
			},
		},
		{
			Type: "rating",
			Name: "distil",
			Endpoints: []Endpoint{
				{Interface: "internal", Region: "nz-hlz-1", URL: "https://distil.internal:9999"},
				{Interface: "public", Region: "nz-hlz-1", URL: "https://distil.hlz.example.com:9999"},
				{Interface: "public", Region: "nz-por-1", URL: "https://distil.por.example.com:9999"},
			},
		},
	}

	t.Run("matches type interface and region", func(t *testing.T) {
		t.Parallel()

		url, err := catalog.Endpoint("rating", "", "public", "nz-por-1")
		require.NoError(t, err)
		assert.Equal(t, "https://distil.por.example.com:9999", url)
	})

	t.Run("empty region takes first match", func(t *testing.T) {
		t.Parallel()

		url, err := catalog.Endpoint("rating", "", "public", "")
		require.NoError(t, err)
		assert.Equal(t, "https://distil.hlz.example.com:9999", url)
	})

	t.Run("service name filter", func(t *testing.T) {
		t.Parallel()

		_, err := catalog.Endpoint("rating", "other-distil", "public", "")
		assert.ErrorIs(t, err, distil.ErrEndpointNotFound)
	})

	t.Run("unknown region", func(t *testing.T) {
		t.Parallel()

		_, err := catalog.Endpoint("rating", "", "public", "mars-1")
		assert.ErrorIs(t, err, distil.ErrEndpointNotFound)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := catalog.Endpoint("volume", "", "public", "")
		assert.ErrorIs(t, err, distil.ErrEndpointNotFound)
	})
}
