package client

import (
	"context"

	"github.com/catalyst-cloud/distil-go/internal/http"
	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// MeasurementsManager implements distil.MeasurementsManager.
type MeasurementsManager struct {
	base
}

// NewMeasurementsManager creates a measurements manager.
func NewMeasurementsManager(httpClient *http.Client) *MeasurementsManager {
	manager := &MeasurementsManager{}
	manager.httpClient = httpClient
	manager.owner = manager

	return manager
}

// List returns raw usage measurements for a project over a time range.
func (m *MeasurementsManager) List(ctx context.Context, opts *distil.MeasurementListOptions) ([]distil.Resource, error) {
	params := distil.NewQueryParams()

	if opts != nil {
		if opts.ProjectID != "" {
			params.WithFilter("project_id", opts.ProjectID)
		}

		if opts.Start != "" {
			params.WithFilter("start", opts.Start)
		}

		if opts.End != "" {
			params.WithFilter("end", opts.End)
		}

		if len(opts.Regions) > 0 {
			params.WithFilter("regions", opts.Regions...)
		}
	}

	return m.list(ctx, "/v2/measurements"+params.Encode(), "measurements", "Measurement")
}
