// Package route decides whether a requested view may render for the
// current session state.
package route

import (
	"github.com/grandcallpro/callctl/internal/session"
)

// LoginLocation is where unauthenticated sessions are sent
const LoginLocation = "/login"

// publicLocations are reachable without a session. The API layer never
// navigates on 401, so being on one of these can never loop.
var publicLocations = map[string]bool{
	LoginLocation:      true,
	"/register":        true,
	"/forgot-password": true,
	"/consent":         true,
}

// Action is the guard's verdict
type Action int

const (
	// ActionPending means hydration has not settled; show a neutral
	// placeholder and decide nothing yet
	ActionPending Action = iota

	// ActionAllow renders the requested view unchanged
	ActionAllow

	// ActionRedirect sends the session to the login view
	ActionRedirect
)

// String returns the verdict name
func (a Action) String() string {
	switch a {
	case ActionPending:
		return "pending"
	case ActionAllow:
		return "allow"
	case ActionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision carries the verdict plus, on redirect, the originally
// requested location so the login flow can return there after success
type Decision struct {
	Action Action
	To     string
	From   string
}

// Guard gates protected views on session state
type Guard struct{}

// NewGuard creates a Guard
func NewGuard() *Guard {
	return &Guard{}
}

// Decide returns the verdict for rendering location under st.
//
// While the state is loading the answer is always Pending; deciding
// before hydration settles would flash a redirect on every restart of an
// authenticated session.
func (g *Guard) Decide(st session.State, location string) Decision {
	if publicLocations[location] {
		return Decision{Action: ActionAllow}
	}

	if st.IsLoading {
		return Decision{Action: ActionPending}
	}

	if !st.IsAuthenticated {
		return Decision{Action: ActionRedirect, To: LoginLocation, From: location}
	}

	return Decision{Action: ActionAllow}
}

// IsPublic reports whether location never requires a session
func IsPublic(location string) bool {
	return publicLocations[location]
}
