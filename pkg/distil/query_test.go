package distil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

func TestQueryParamsEncodeEmpty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", distil.NewQueryParams().Encode())

	var nilParams *distil.QueryParams

	assert.Equal(t, "", nilParams.Encode())
}

func TestQueryParamsEncodeEmptyValues(t *testing.T) {
	t.Parallel()

	params := &distil.QueryParams{Filters: map[string][]string{"regions": {}}}

	assert.Equal(t, "", params.Encode())
}

func TestQueryParamsEncodeCommaJoined(t *testing.T) {
	t.Parallel()

	params := distil.NewQueryParams().WithFilter("regions", "nz-hlz-1", "nz-por-1")

	assert.Equal(t, "?regions=nz-hlz-1,nz-por-1", params.Encode())
}

func TestQueryParamsEncodeSortedKeys(t *testing.T) {
	t.Parallel()

	params := distil.NewQueryParams().
		WithFilter("start", "2026-01-01").
		WithFilter("end", "2026-02-01").
		WithFilter("project_id", "p-123")

	assert.Equal(t, "?end=2026-02-01&project_id=p-123&start=2026-01-01", params.Encode())
}

func TestQueryParamsEncodeEscapesValuesNotSeparator(t *testing.T) {
	t.Parallel()

	params := distil.NewQueryParams().WithFilter("regions", "a region", "b&c")

	assert.Equal(t, "?regions=a+region,b%26c", params.Encode())
}

func TestQueryParamsWithFilterAppends(t *testing.T) {
	t.Parallel()

	params := distil.NewQueryParams().
		WithFilter("regions", "nz-hlz-1").
		WithFilter("regions", "nz-por-1")

	assert.Equal(t, "?regions=nz-hlz-1,nz-por-1", params.Encode())
}
