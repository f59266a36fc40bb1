package authflowrepo

import (
	"errors"
	"sync"
	"time"
)

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface.
type InMemoryRepo struct {
	mu     sync.Mutex
	states map[string]*PendingAuth
}

var _ Repo = (*InMemoryRepo)(nil)

// NewInMemoryRepo creates a new in-memory pending auth flow repository.
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		states: make(map[string]*PendingAuth),
	}
}

// Upsert stores or updates a pending flow.
func (r *InMemoryRepo) Upsert(state string, pending *PendingAuth) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if pending == nil {
		return errors.New("pending cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to prevent external modifications
	r.states[state] = &PendingAuth{
		Nonce:     pending.Nonce,
		ReturnURL: pending.ReturnURL,
		CreatedAt: pending.CreatedAt,
	}
	return nil
}

// Consume retrieves and removes a pending flow in one step. A flow past its
// lifetime is purged and reported as not found.
func (r *InMemoryRepo) Consume(state string) (*PendingAuth, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pending, exists := r.states[state]
	if !exists {
		return nil, ErrStateNotFound
	}
	delete(r.states, state)

	if pending.Expired(time.Now()) {
		return nil, ErrStateNotFound
	}

	return pending, nil
}

// Delete removes a pending flow.
func (r *InMemoryRepo) Delete(state string) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, state)
	return nil
}

// DeleteExpired removes all pending flows past their lifetime, so abandoned
// logins do not accumulate.
func (r *InMemoryRepo) DeleteExpired(now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for state, pending := range r.states {
		if pending.Expired(now) {
			delete(r.states, state)
		}
	}
	return nil
}
