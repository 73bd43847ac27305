package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grandcallpro/callctl/internal/auth"
	"github.com/grandcallpro/callctl/internal/session"
)

// stubAuth satisfies session.AuthService for monitor wiring tests
type stubAuth struct{}

func (stubAuth) Login(context.Context, auth.Credentials) (*auth.Session, error) { return nil, nil }
func (stubAuth) Register(context.Context, auth.RegisterData) (*auth.RegisterResult, error) {
	return nil, nil
}
func (stubAuth) ForgotPassword(context.Context, string) error       { return nil }
func (stubAuth) Confirm(context.Context) (*auth.UserProfile, error) { return nil, nil }
func (stubAuth) Logout() error                                      { return nil }
func (stubAuth) Token() string                                      { return "" }
func (stubAuth) CurrentUser() *auth.UserProfile                     { return nil }

func TestMonitorSubscribesOnce(t *testing.T) {
	mgr := session.NewManager(stubAuth{}, nil)
	defer mgr.Close()

	m := NewMonitor(context.Background(), mgr, nil)

	// Handling state messages must reuse the one subscription made at
	// construction, not stack up new ones.
	authed := session.State{User: &auth.UserProfile{ID: "1"}, IsAuthenticated: true}
	m.Update(stateMsg(authed))
	m.Update(stateMsg(authed))
	m.Update(stateMsg(authed))

	mgr.Logout() // one transition
	require.Len(t, m.updates, 1,
		"one transition must enqueue exactly one update regardless of messages handled")
	<-m.updates
}

func TestMonitorCancelsWatchOnQuit(t *testing.T) {
	mgr := session.NewManager(stubAuth{}, nil)
	defer mgr.Close()

	m := NewMonitor(context.Background(), mgr, nil)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.True(t, m.quitting)

	mgr.Logout()
	assert.Empty(t, m.updates, "a quit monitor must no longer receive transitions")
}
