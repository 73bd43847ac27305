// Package pbx provides typed access to the GrandCall Pro resource
// collections: extensions, users, calls, dashboard data, backups, and
// notifications. All calls go through the api chokepoint, so session
// attachment and invalidation are handled there.
package pbx

import "time"

// Extension is a PBX extension (a "ramal")
type Extension struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	Name       string    `json:"name"`
	Department string    `json:"department,omitempty"`
	Sector     string    `json:"sector,omitempty"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

// ExtensionInput is the create/update payload for an extension
type ExtensionInput struct {
	Number     string `json:"number"`
	Name       string `json:"name"`
	Department string `json:"department,omitempty"`
	Sector     string `json:"sector,omitempty"`
}

// User account statuses
const (
	UserStatusActive   = "active"
	UserStatusPending  = "pending"
	UserStatusInactive = "inactive"
)

// UserAccount is an administrative user of the platform
type UserAccount struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Username   string    `json:"username,omitempty"`
	Department string    `json:"department,omitempty"`
	Status     string    `json:"status,omitempty"`
	Role       string    `json:"role,omitempty"`
	Level      string    `json:"level,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

// UserInput is the create/update payload for a user account
type UserInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Username   string `json:"username,omitempty"`
	Department string `json:"department,omitempty"`
	Role       string `json:"role,omitempty"`
	Level      string `json:"level,omitempty"`
}

// CallStatus carries both the display value and the answered flag
type CallStatus struct {
	Value    string `json:"value"`
	Answered bool   `json:"answered"`
}

// CallParty identifies one side of a call
type CallParty struct {
	Value   string       `json:"value"`
	Options *CallOptions `json:"options,omitempty"`
}

// CallOptions describes the organizational placement of a party
type CallOptions struct {
	Department string `json:"department,omitempty"`
	Sector     string `json:"sector,omitempty"`
	Employee   string `json:"employee,omitempty"`
}

// Call is one call record
type Call struct {
	Origin    CallParty  `json:"origin"`
	Destiny   CallParty  `json:"destiny"`
	Status    CallStatus `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	Duration  string     `json:"duration"`
}

// Card is one dashboard summary card
type Card struct {
	Title                string `json:"title"`
	Content              string `json:"content"`
	PercentualDifference string `json:"percentualDifference,omitempty"`
}

// Dashboard is the aggregate the dashboard view renders
type Dashboard struct {
	Cards []Card `json:"cards"`
	Calls []Call `json:"calls"`
}

// Backup is one stored backup of the platform configuration
type Backup struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	SizeBytes int64     `json:"sizeBytes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notification is one entry of the notification history
type Notification struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}
