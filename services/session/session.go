// Package session reconciles the two identity sources of the service — the
// token-backed remote user session and the locally verified admin login —
// into one authoritative view per client.
package session

import (
	"context"
	"errors"

	"glowbook/models"
)

// ErrInvalidCredentials is returned by the remote source when the
// identifier/password pair does not match. Callers show their own message
// for it instead of the generic failure notice.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Session is the reconciled identity view. At most one identity is
// authoritative at a time; Loading is true only while a resolution is in
// flight and always settles to false.
type Session struct {
	User        *models.User `json:"user"`
	IsAdminAuth bool         `json:"isAdminAuth"`
	Loading     bool         `json:"loading"`
}

// RemoteAuth is the remote identity source (sign-in, sign-up, session
// fetch/refresh, sign-out) keyed by the caller's client ID.
type RemoteAuth interface {
	// SignIn verifies credentials and establishes a remote session for the
	// client. Returns the bare identity and its bearer token.
	SignIn(ctx context.Context, clientID, identifier, password string) (*models.User, string, error)
	// SignUp creates an account. The bool reports whether email
	// confirmation is still pending.
	SignUp(ctx context.Context, params SignUpParams) (*models.User, bool, error)
	// CurrentUser returns the identity behind the client's remote session,
	// or (nil, nil) when no session exists.
	CurrentUser(ctx context.Context, clientID string) (*models.User, error)
	// Refresh forces a session refresh so permission claims are current and
	// returns the refreshed identity, or (nil, nil) when no session exists.
	Refresh(ctx context.Context, clientID string) (*models.User, error)
	// SignOut tears down the client's remote session.
	SignOut(ctx context.Context, clientID string) error
}

// SignUpParams carries registration input. Validation lives in the caller.
type SignUpParams struct {
	FullName string
	Username string
	Email    string
	Password string
	Phone    string
}

// ProfileSource fetches the profile record merged into the remote identity.
type ProfileSource interface {
	ProfileByUserID(ctx context.Context, userID string) (*models.Profile, error)
}

// Store persists the local admin session payload so it survives client
// restarts (it has no server-side remote session backing it).
type Store interface {
	// Load returns the stored admin payload, or (nil, nil) when absent.
	Load(ctx context.Context, clientID string) (*models.User, error)
	Save(ctx context.Context, clientID string, u *models.User) error
	Clear(ctx context.Context, clientID string) error
}

// MergeProfile merges a profile record into a remote identity. Profile
// fields override the identity's only when present; the identity is never
// mutated.
func MergeProfile(u *models.User, p *models.Profile) *models.User {
	if u == nil {
		return nil
	}
	merged := *u
	if p == nil {
		return &merged
	}
	if p.FullName != "" {
		merged.FullName = p.FullName
	}
	if p.Username != "" {
		merged.Username = p.Username
	}
	if p.Phone != "" {
		merged.Phone = p.Phone
	}
	return &merged
}
