package sessions

import (
	"errors"
	"time"
)

// ErrNotFound is returned when no live session exists for a session ID.
var ErrNotFound = errors.New("session not found")

// Session is the minimal server-side identity state kept per browser.
// It never stores raw access, refresh or ID token strings: the store holds
// only what the portal needs to render pages and enforce role checks.
type Session struct {
	Subject     string
	DisplayName string
	Roles       []string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// HasRole reports whether the session carries the named role.
func (s Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Expired reports whether the session has passed its TTL.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}

// Repo defines session storage. Implementations must be safe for concurrent
// access from unrelated sessions; a single session key is only ever written
// by the request holding its cookie.
type Repo interface {
	// Upsert creates or updates a session
	Upsert(sessionID string, session Session) error

	// Get retrieves a live session by ID; expired sessions behave as absent
	Get(sessionID string) (Session, error)

	// Delete removes a session by ID; deleting an absent session is not an error
	Delete(sessionID string) error

	// DeleteExpired removes sessions that expired before the given time
	DeleteExpired(before time.Time) error
}
