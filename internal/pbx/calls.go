package pbx

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/grandcallpro/callctl/internal/api"
)

const callsEndpoint = "/v1/calls"

// CallFilter narrows a call listing. Zero values mean "no constraint".
type CallFilter struct {
	Status    string // "answered" or "missed"
	Extension string
	From      time.Time
	To        time.Time
	Page      int
	PerPage   int
}

func (f CallFilter) query() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Extension != "" {
		q.Set("extension", f.Extension)
	}
	if !f.From.IsZero() {
		q.Set("from", f.From.Format(time.RFC3339))
	}
	if !f.To.IsZero() {
		q.Set("to", f.To.Format(time.RFC3339))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(f.PerPage))
	}
	return q
}

// Calls accesses the call records
type Calls struct {
	client *api.Client
}

// NewCalls creates the calls service
func NewCalls(client *api.Client) *Calls {
	return &Calls{client: client}
}

// List returns call records matching the filter
func (s *Calls) List(ctx context.Context, filter CallFilter) ([]Call, error) {
	var out []Call
	path := api.PathWithQuery(callsEndpoint, filter.query())
	if err := s.client.Get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Active returns the calls currently in progress
func (s *Calls) Active(ctx context.Context) ([]Call, error) {
	var out []Call
	if err := s.client.Get(ctx, callsEndpoint+"/active", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FilterAnswered refines an in-memory listing by answered state
func FilterAnswered(calls []Call, answered bool) []Call {
	out := make([]Call, 0, len(calls))
	for _, c := range calls {
		if c.Status.Answered == answered {
			out = append(out, c)
		}
	}
	return out
}

// SearchCalls refines an in-memory listing by origin/destiny substring
func SearchCalls(calls []Call, term string) []Call {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return calls
	}
	out := make([]Call, 0, len(calls))
	for _, c := range calls {
		if strings.Contains(strings.ToLower(c.Origin.Value), term) ||
			strings.Contains(strings.ToLower(c.Destiny.Value), term) {
			out = append(out, c)
		}
	}
	return out
}

// SortByTimestamp orders calls newest first
func SortByTimestamp(calls []Call) {
	sort.SliceStable(calls, func(i, j int) bool {
		return calls[i].Timestamp.After(calls[j].Timestamp)
	})
}
