package pbx

import (
	"context"

	"github.com/grandcallpro/callctl/internal/api"
)

const usersEndpoint = "/v1/users"

// Users accesses the user account collection
type Users struct {
	client *api.Client
}

// NewUsers creates the users service
func NewUsers(client *api.Client) *Users {
	return &Users{client: client}
}

// List returns all user accounts
func (s *Users) List(ctx context.Context) ([]UserAccount, error) {
	var out []UserAccount
	if err := s.client.Get(ctx, usersEndpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns one user account by id
func (s *Users) Get(ctx context.Context, id string) (*UserAccount, error) {
	var out UserAccount
	if err := s.client.Get(ctx, usersEndpoint+"/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a user account
func (s *Users) Create(ctx context.Context, input UserInput) (*UserAccount, error) {
	var out UserAccount
	if err := s.client.Post(ctx, usersEndpoint, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces a user account
func (s *Users) Update(ctx context.Context, id string, input UserInput) (*UserAccount, error) {
	var out UserAccount
	if err := s.client.Put(ctx, usersEndpoint+"/"+id, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a user account
func (s *Users) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, usersEndpoint+"/"+id)
}
