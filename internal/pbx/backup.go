package pbx

import (
	"context"

	"github.com/grandcallpro/callctl/internal/api"
)

const backupsEndpoint = "/v1/backups"

// Backups accesses the configuration backup collection
type Backups struct {
	client *api.Client
}

// NewBackups creates the backups service
func NewBackups(client *api.Client) *Backups {
	return &Backups{client: client}
}

// List returns all stored backups
func (s *Backups) List(ctx context.Context) ([]Backup, error) {
	var out []Backup
	if err := s.client.Get(ctx, backupsEndpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create requests a new backup and returns its record
func (s *Backups) Create(ctx context.Context) (*Backup, error) {
	var out Backup
	if err := s.client.Post(ctx, backupsEndpoint, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Restore applies a stored backup
func (s *Backups) Restore(ctx context.Context, id string) error {
	return s.client.Post(ctx, backupsEndpoint+"/"+id+"/restore", nil, nil)
}
