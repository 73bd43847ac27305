package pbx

import (
	"context"

	"github.com/grandcallpro/callctl/internal/api"
)

const extensionsEndpoint = "/v1/extensions"

// Extensions accesses the extension collection
type Extensions struct {
	client *api.Client
}

// NewExtensions creates the extensions service
func NewExtensions(client *api.Client) *Extensions {
	return &Extensions{client: client}
}

// List returns all extensions
func (s *Extensions) List(ctx context.Context) ([]Extension, error) {
	var out []Extension
	if err := s.client.Get(ctx, extensionsEndpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one extension by id
func (s *Extensions) Get(ctx context.Context, id string) (*Extension, error) {
	var out Extension
	if err := s.client.Get(ctx, extensionsEndpoint+"/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds an extension
func (s *Extensions) Create(ctx context.Context, input ExtensionInput) (*Extension, error) {
	var out Extension
	if err := s.client.Post(ctx, extensionsEndpoint, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces an extension
func (s *Extensions) Update(ctx context.Context, id string, input ExtensionInput) (*Extension, error) {
	var out Extension
	if err := s.client.Put(ctx, extensionsEndpoint+"/"+id, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an extension
func (s *Extensions) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, extensionsEndpoint+"/"+id)
}
