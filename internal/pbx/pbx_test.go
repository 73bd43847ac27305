package pbx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandcallpro/callctl/internal/api"
)

func newClient(t *testing.T, handler http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL)
}

func TestExtensionsCRUD(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/extensions", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Extension{
			{ID: "e1", Number: "2001", Name: "Reception"},
			{ID: "e2", Number: "2002", Name: "Support"},
		})
	})
	mux.HandleFunc("GET /v1/extensions/e1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Extension{ID: "e1", Number: "2001", Name: "Reception"})
	})
	mux.HandleFunc("POST /v1/extensions", func(w http.ResponseWriter, r *http.Request) {
		var input ExtensionInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		_ = json.NewEncoder(w).Encode(Extension{ID: "e3", Number: input.Number, Name: input.Name})
	})
	mux.HandleFunc("PUT /v1/extensions/e1", func(w http.ResponseWriter, r *http.Request) {
		var input ExtensionInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		_ = json.NewEncoder(w).Encode(Extension{ID: "e1", Number: input.Number, Name: input.Name})
	})
	mux.HandleFunc("DELETE /v1/extensions/e2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	svc := NewExtensions(newClient(t, mux))
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	one, err := svc.Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "2001", one.Number)

	created, err := svc.Create(ctx, ExtensionInput{Number: "2003", Name: "Sales"})
	require.NoError(t, err)
	assert.Equal(t, "e3", created.ID)

	updated, err := svc.Update(ctx, "e1", ExtensionInput{Number: "2001", Name: "Front Desk"})
	require.NoError(t, err)
	assert.Equal(t, "Front Desk", updated.Name)

	require.NoError(t, svc.Delete(ctx, "e2"))
}

func TestUsersList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/users", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]UserAccount{
			{ID: "1", Name: "Ana", Status: UserStatusActive},
			{ID: "2", Name: "Bruno", Status: UserStatusPending},
		})
	})

	svc := NewUsers(newClient(t, mux))
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, UserStatusPending, list[1].Status)
}

func TestCallsListSendsFilterQuery(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/calls", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]Call{})
	})

	svc := NewCalls(newClient(t, mux))
	_, err := svc.List(context.Background(), CallFilter{
		Status:    "answered",
		Extension: "2001",
		Page:      2,
		PerPage:   50,
	})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "status=answered")
	assert.Contains(t, gotQuery, "extension=2001")
	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "per_page=50")
}

func TestCallHelpers(t *testing.T) {
	now := time.Now()
	calls := []Call{
		{Origin: CallParty{Value: "2001"}, Destiny: CallParty{Value: "11987650001"},
			Status: CallStatus{Value: "ATENDIDA", Answered: true}, Timestamp: now.Add(-time.Hour)},
		{Origin: CallParty{Value: "2002"}, Destiny: CallParty{Value: "11987650002"},
			Status: CallStatus{Value: "NAO ATENDIDA", Answered: false}, Timestamp: now},
		{Origin: CallParty{Value: "2003"}, Destiny: CallParty{Value: "11987650003"},
			Status: CallStatus{Value: "ATENDIDA", Answered: true}, Timestamp: now.Add(-2 * time.Hour)},
	}

	answered := FilterAnswered(calls, true)
	assert.Len(t, answered, 2)

	missed := FilterAnswered(calls, false)
	require.Len(t, missed, 1)
	assert.Equal(t, "2002", missed[0].Origin.Value)

	found := SearchCalls(calls, "2003")
	require.Len(t, found, 1)
	assert.Equal(t, "2003", found[0].Origin.Value)

	assert.Len(t, SearchCalls(calls, "  "), 3, "blank terms match everything")

	SortByTimestamp(calls)
	assert.Equal(t, "2002", calls[0].Origin.Value, "newest call first")
}

func TestDashboardGet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/dashboard", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Dashboard{
			Cards: []Card{{Title: "Calls today", Content: "128", PercentualDifference: "+12%"}},
			Calls: []Call{{Origin: CallParty{Value: "2001"}}},
		})
	})

	svc := NewDashboard(newClient(t, mux))
	dash, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, dash.Cards, 1)
	assert.Equal(t, "Calls today", dash.Cards[0].Title)
	assert.Len(t, dash.Calls, 1)
}

func TestBackupsLifecycle(t *testing.T) {
	var restored string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/backups", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Backup{{ID: "b1", Status: "complete"}})
	})
	mux.HandleFunc("POST /v1/backups", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Backup{ID: "b2", Status: "running"})
	})
	mux.HandleFunc("POST /v1/backups/b1/restore", func(w http.ResponseWriter, r *http.Request) {
		restored = "b1"
		w.WriteHeader(http.StatusAccepted)
	})

	svc := NewBackups(newClient(t, mux))
	ctx := context.Background()

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	created, err := svc.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, "running", created.Status)

	require.NoError(t, svc.Restore(ctx, "b1"))
	assert.Equal(t, "b1", restored)
}

func TestNotifications(t *testing.T) {
	var marked string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/notifications", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]Notification{{ID: "n1", Title: "Backup finished"}})
	})
	mux.HandleFunc("PUT /v1/notifications/n1/read", func(w http.ResponseWriter, r *http.Request) {
		marked = "n1"
	})

	svc := NewNotifications(newClient(t, mux))
	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Nil(t, list[0].ReadAt)

	require.NoError(t, svc.MarkRead(context.Background(), "n1"))
	assert.Equal(t, "n1", marked)
}
