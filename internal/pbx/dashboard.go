package pbx

import (
	"context"

	"github.com/grandcallpro/callctl/internal/api"
)

const dashboardEndpoint = "/v1/dashboard"

// DashboardService accesses the dashboard aggregate
type DashboardService struct {
	client *api.Client
}

// NewDashboard creates the dashboard service
func NewDashboard(client *api.Client) *DashboardService {
	return &DashboardService{client: client}
}

// Get returns the summary cards and recent calls in one call
func (s *DashboardService) Get(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	if err := s.client.Get(ctx, dashboardEndpoint, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
