package authflowrepo

import (
	"errors"
	"time"
)

// ErrStateNotFound is returned when no live pending flow exists for a state
// value, including states that were already consumed or have expired.
var ErrStateNotFound = errors.New("state not found")

// PendingLifetime bounds how long a login attempt may stay pending between
// the redirect to the identity provider and the callback. The browser's
// state cookie carries the same lifetime.
const PendingLifetime = 5 * time.Minute

// PendingAuth is the transient state of a login attempt between the redirect
// to the identity provider and the callback. It is keyed by the anti-forgery
// state parameter and is strictly single-use.
type PendingAuth struct {
	Nonce     string
	ReturnURL string
	CreatedAt time.Time
}

// Expired reports whether the pending flow has outlived PendingLifetime.
func (p *PendingAuth) Expired(now time.Time) bool {
	return p.CreatedAt.Add(PendingLifetime).Before(now)
}

type Repo interface {
	// Upsert stores a pending flow keyed by its state parameter
	Upsert(state string, pending *PendingAuth) error

	// Consume atomically retrieves and removes a pending flow, so a state
	// value can never correlate more than one callback. Flows older than
	// PendingLifetime are rejected as not found.
	Consume(state string) (*PendingAuth, error)

	// Delete removes a pending flow without returning it
	Delete(state string) error

	// DeleteExpired removes flows that outlived PendingLifetime as of the
	// given time, so abandoned logins do not accumulate
	DeleteExpired(now time.Time) error
}
