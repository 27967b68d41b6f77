// Package client contains the concrete Distil client and its resource
// managers.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"

	"github.com/catalyst-cloud/distil-go/internal/http"
	"github.com/catalyst-cloud/distil-go/pkg/distil"
)

// base carries the shared request/decode logic for resource managers. Each
// manager embeds it and speaks in terms of a path, a response key naming the
// payload in the JSON envelope, and the resource kind used for wrapping.
type base struct {
	httpClient *http.Client
	owner      any
}

// list GETs path and wraps each element found under responseKey. The query
// string, when any, is already encoded into path so comma-joined values
// survive verbatim.
func (b *base) list(ctx context.Context, path, responseKey, kind string) ([]distil.Resource, error) {
	resp, err := b.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", responseKey, err)
	}

	return b.decodeList(resp.Body, responseKey, kind)
}

// listWithBody POSTs body to path and wraps the listed results.
func (b *base) listWithBody(ctx context.Context, path, responseKey, kind string, body any) ([]distil.Resource, error) {
	resp, err := b.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", responseKey, err)
	}

	return b.decodeList(resp.Body, responseKey, kind)
}

// get GETs path and wraps the single object under responseKey. A 404 is not
// an error: the resource is simply absent, reported as (nil, nil).
func (b *base) get(ctx context.Context, path, responseKey, kind string) (*distil.Resource, error) {
	resp, err := b.httpClient.Get(ctx, path, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == nethttp.StatusNotFound {
			return nil, nil
		}

		return nil, fmt.Errorf("getting %s: %w", responseKey, err)
	}

	return b.decodeOne(resp.Body, responseKey, kind)
}

// create POSTs body to path and wraps the created object.
func (b *base) create(ctx context.Context, path, responseKey, kind string, body any) (*distil.Resource, error) {
	resp, err := b.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", responseKey, err)
	}

	return b.decodeOne(resp.Body, responseKey, kind)
}

// update PUTs body to path and wraps the updated object.
func (b *base) update(ctx context.Context, path, responseKey, kind string, body any) (*distil.Resource, error) {
	resp, err := b.httpClient.Put(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", responseKey, err)
	}

	return b.decodeOne(resp.Body, responseKey, kind)
}

// del DELETEs path.
func (b *base) del(ctx context.Context, path string) error {
	_, err := b.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}

	return nil
}

func (b *base) decodeList(body []byte, responseKey, kind string) ([]distil.Resource, error) {
	var envelope map[string]json.RawMessage

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", responseKey, err)
	}

	raw, ok := envelope[responseKey]
	if !ok {
		return nil, fmt.Errorf("parsing %s response: missing %q key", responseKey, responseKey)
	}

	var elements []map[string]any

	err = json.Unmarshal(raw, &elements)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", responseKey, err)
	}

	resources := make([]distil.Resource, 0, len(elements))
	for _, element := range elements {
		resources = append(resources, distil.NewNamedResource(b.owner, kind, element))
	}

	return resources, nil
}

func (b *base) decodeOne(body []byte, responseKey, kind string) (*distil.Resource, error) {
	var envelope map[string]json.RawMessage

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", responseKey, err)
	}

	raw, ok := envelope[responseKey]
	if !ok {
		// Some endpoints return the object without an envelope.
		raw = body
	}

	var fields map[string]any

	err = json.Unmarshal(raw, &fields)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", responseKey, err)
	}

	resource := distil.NewNamedResource(b.owner, kind, fields)

	return &resource, nil
}
