package auth

// UserProfile is the backend's description of the logged-in user.
// It is replaced wholesale on login and never patched in place.
type UserProfile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Department  string `json:"department,omitempty"`
	Role        string `json:"role,omitempty"`
	AccessLevel string `json:"level,omitempty"`
}

// Credentials is the login request payload
type Credentials struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterData is the account registration payload
type RegisterData struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Login      string `json:"login,omitempty"`
	Password   string `json:"password" validate:"required,min=8"`
	Department string `json:"department,omitempty"`
}

// Session pairs the opaque bearer token with the profile it authorizes.
// The two always travel together; the store never persists one without
// the other.
type Session struct {
	Token string      `json:"access_token"`
	User  UserProfile `json:"user"`
}

// authResponse is the backend's login/register response body
type authResponse struct {
	AccessToken string      `json:"accessToken"`
	User        UserProfile `json:"user"`
	Status      string      `json:"status,omitempty"`
}

// statusPendingApproval marks accounts awaiting administrator approval
const statusPendingApproval = "pending_approval"

// RegisterResult describes the outcome of a registration.
// Session is nil when the backend withheld a token (pending approval).
type RegisterResult struct {
	Session         *Session
	PendingApproval bool
	User            UserProfile
}
