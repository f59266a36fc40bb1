package sessions_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/go-oidc-portal/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession(ttl time.Duration) sessions.Session {
	now := time.Now()
	return sessions.Session{
		Subject:     "user-1",
		DisplayName: "john.doe@example.com",
		Roles:       []string{"user"},
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
	}
}

func TestInMemoryRepo_UpsertAndGet(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	session := testSession(time.Hour)
	require.NoError(t, repo.Upsert("session-1", session))

	got, err := repo.Get("session-1")
	require.NoError(t, err)
	require.Equal(t, session.Subject, got.Subject)
	require.Equal(t, session.Roles, got.Roles)
}

func TestInMemoryRepo_GetUnknownSession(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	_, err := repo.Get("missing")
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestInMemoryRepo_ExpiredSessionBehavesAsAbsent(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	require.NoError(t, repo.Upsert("session-1", testSession(-time.Minute)))

	_, err := repo.Get("session-1")
	require.ErrorIs(t, err, sessions.ErrNotFound)

	// Purged on read, not just hidden
	_, err = repo.Get("session-1")
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestInMemoryRepo_DeleteIsIdempotent(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	require.NoError(t, repo.Upsert("session-1", testSession(time.Hour)))
	require.NoError(t, repo.Delete("session-1"))
	require.NoError(t, repo.Delete("session-1"))

	_, err := repo.Get("session-1")
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestInMemoryRepo_DeleteExpired(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	require.NoError(t, repo.Upsert("live", testSession(time.Hour)))
	require.NoError(t, repo.Upsert("expired", testSession(-time.Minute)))

	require.NoError(t, repo.DeleteExpired(time.Now()))

	_, err := repo.Get("live")
	require.NoError(t, err)
	_, err = repo.Get("expired")
	require.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestInMemoryRepo_ConcurrentUnrelatedSessions(t *testing.T) {
	repo := sessions.NewInMemoryRepo()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", i)
			assert.NoError(t, repo.Upsert(id, testSession(time.Hour)))
			_, err := repo.Get(id)
			assert.NoError(t, err)
			assert.NoError(t, repo.Delete(id))
		}(i)
	}
	wg.Wait()
}
