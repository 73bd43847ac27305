package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandcallpro/callctl/internal/api"
	"github.com/grandcallpro/callctl/internal/errors"
)

// newTestService wires a Service against a test backend with a fresh store
func newTestService(t *testing.T, handler http.Handler) (*Service, *MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := NewMemoryStore()
	client := api.NewClient(srv.URL, api.WithCredentials(store))
	return NewService(client, store, nil), store
}

func loginBackend(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/auth/login", r.URL.Path)

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))

		if creds.Login == "ana" && creds.Password == "secret" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"accessToken": "tok123",
				"user":        map[string]string{"id": "1", "name": "Ana", "level": "admin"},
			})
			return
		}

		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid login or password"})
	})
}

func TestLoginSuccessPersistsSession(t *testing.T) {
	svc, store := newTestService(t, loginBackend(t))

	session, err := svc.Login(context.Background(), Credentials{Login: "ana", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "tok123", session.Token)
	assert.Equal(t, "Ana", session.User.Name)
	assert.Equal(t, "admin", session.User.AccessLevel)

	// Both halves are in durable storage
	assert.Equal(t, "tok123", store.Token())
	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "1", loaded.User.ID)
}

func TestLoginFailureLeavesStoreEmpty(t *testing.T) {
	svc, store := newTestService(t, loginBackend(t))

	_, err := svc.Login(context.Background(), Credentials{Login: "ana", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err), "backend error must surface unchanged")
	assert.Contains(t, err.Error(), "invalid login or password")

	assert.Empty(t, store.Token())
	loaded, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Nil(t, loaded)
}

func TestLoginPendingAccountStoresNothing(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "pending_approval",
			"user":   map[string]string{"id": "2", "name": "Bruno"},
		})
	})
	svc, store := newTestService(t, handler)

	_, err := svc.Login(context.Background(), Credentials{Login: "bruno", Password: "secret"})
	require.Error(t, err)

	var cpErr *errors.CallProError
	require.ErrorAs(t, err, &cpErr)
	assert.Equal(t, errors.ErrCodeAuthPendingUser, cpErr.Code)
	assert.Empty(t, store.Token(), "an unapproved account must not leave a session behind")
}

func TestLoginValidatesInputLocally(t *testing.T) {
	called := false
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := svc.Login(context.Background(), Credentials{Login: "", Password: ""})
	require.Error(t, err)
	assert.False(t, called, "invalid input must not reach the backend")

	var cpErr *errors.CallProError
	require.ErrorAs(t, err, &cpErr)
	assert.Equal(t, errors.ErrCodeAuthInvalidInput, cpErr.Code)
	assert.Contains(t, cpErr.Fields, "Login")
	assert.Contains(t, cpErr.Fields, "Password")
}

func TestRegisterWithImmediateSession(t *testing.T) {
	svc, store := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/auth/register", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"accessToken": "tok456",
			"user":        map[string]string{"id": "2", "name": "Bruno", "level": "operator"},
		})
	}))

	result, err := svc.Register(context.Background(), RegisterData{
		Name:     "Bruno",
		Email:    "bruno@grandcallpro.com",
		Password: "longenough",
	})
	require.NoError(t, err)

	assert.False(t, result.PendingApproval)
	require.NotNil(t, result.Session)
	assert.Equal(t, "tok456", store.Token())
}

func TestRegisterPendingApproval(t *testing.T) {
	svc, store := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "pending_approval",
			"user":   map[string]string{"id": "3", "name": "Clara"},
		})
	}))

	result, err := svc.Register(context.Background(), RegisterData{
		Name:     "Clara",
		Email:    "clara@grandcallpro.com",
		Password: "longenough",
	})
	require.NoError(t, err)

	assert.True(t, result.PendingApproval)
	assert.Nil(t, result.Session)
	assert.Empty(t, store.Token(), "a pending registration must not create a session")
}

func TestRegisterValidatesEmailAndPassword(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	_, err := svc.Register(context.Background(), RegisterData{
		Name:     "X",
		Email:    "not-an-email",
		Password: "short",
	})
	require.Error(t, err)

	var cpErr *errors.CallProError
	require.ErrorAs(t, err, &cpErr)
	assert.Contains(t, cpErr.Fields["Email"], "valid email")
	assert.Contains(t, cpErr.Fields["Password"], "too short")
}

func TestForgotPasswordDoesNotLeakAccountExistence(t *testing.T) {
	// Backend returns 200 for known and unknown identifiers alike
	svc, store := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/auth/forgot-password", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, svc.ForgotPassword(context.Background(), "ana"))
	require.NoError(t, svc.ForgotPassword(context.Background(), "nobody-with-this-login"))
	assert.Empty(t, store.Token(), "forgot-password must not mutate session state")
}

func TestForgotPasswordRequiresIdentifier(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("empty identifier must not reach the backend")
	}))

	err := svc.ForgotPassword(context.Background(), "")
	require.Error(t, err)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, store := newTestService(t, loginBackend(t))

	require.NoError(t, svc.Logout(), "logout with no session must succeed")

	_, err := svc.Login(context.Background(), Credentials{Login: "ana", Password: "secret"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout())
	require.NoError(t, svc.Logout())

	assert.Empty(t, store.Token())
	assert.Nil(t, svc.CurrentUser())
}

func TestSynchronousReads(t *testing.T) {
	svc, store := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("Token and CurrentUser must not perform network I/O")
	}))

	assert.Empty(t, svc.Token())
	assert.Nil(t, svc.CurrentUser())

	require.NoError(t, store.Save(testSession()))
	assert.Equal(t, "tok123", svc.Token())
	require.NotNil(t, svc.CurrentUser())
	assert.Equal(t, "Ana", svc.CurrentUser().Name)
}

func TestConfirm(t *testing.T) {
	svc, store := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/users/me", r.URL.Path)
		require.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "1", "name": "Ana", "level": "admin"})
	}))

	require.NoError(t, store.Save(testSession()))

	user, err := svc.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)
}
