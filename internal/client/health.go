package client

import (
	"context"

	"github.com/catalyst-cloud/distil-go/internal/http"
	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// HealthManager implements distil.HealthManager.
type HealthManager struct {
	base
}

// NewHealthManager creates a health manager.
func NewHealthManager(httpClient *http.Client) *HealthManager {
	manager := &HealthManager{}
	manager.httpClient = httpClient
	manager.owner = manager

	return manager
}

// Get reports the health of the rating service.
func (m *HealthManager) Get(ctx context.Context) (*distil.Resource, error) {
	return m.get(ctx, "/v2/health", "health", "Health")
}
