package client

import (
	"context"

	"github.com/catalyst-cloud/distil-go/internal/http"
	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// CreditsManager implements distil.CreditsManager.
type CreditsManager struct {
	base
}

// NewCreditsManager creates a credits manager.
func NewCreditsManager(httpClient *http.Client) *CreditsManager {
	manager := &CreditsManager{}
	manager.httpClient = httpClient
	manager.owner = manager

	return manager
}

// List returns the credits held by a project.
func (m *CreditsManager) List(ctx context.Context, projectID string) ([]distil.Resource, error) {
	params := distil.NewQueryParams()
	if projectID != "" {
		params.WithFilter("project_id", projectID)
	}

	return m.list(ctx, "/v2/credits"+params.Encode(), "credits", "Credit")
}

// Create redeems a credit code against the authenticated project.
func (m *CreditsManager) Create(ctx context.Context, code string) (*distil.Resource, error) {
	body := map[string]string{"code": code}

	return m.create(ctx, "/v2/credits", "credit", "Credit", body)
}
