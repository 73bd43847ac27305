package pbx

import (
	"context"

	"github.com/grandcallpro/callctl/internal/api"
)

const notificationsEndpoint = "/v1/notifications"

// Notifications accesses the notification history
type Notifications struct {
	client *api.Client
}

// NewNotifications creates the notifications service
func NewNotifications(client *api.Client) *Notifications {
	return &Notifications{client: client}
}

// List returns the notification history, newest first
func (s *Notifications) List(ctx context.Context) ([]Notification, error) {
	var out []Notification
	if err := s.client.Get(ctx, notificationsEndpoint, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead marks one notification as read
func (s *Notifications) MarkRead(ctx context.Context, id string) error {
	return s.client.Put(ctx, notificationsEndpoint+"/"+id+"/read", nil, nil)
}
