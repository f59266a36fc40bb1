package server_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// establishSession logs a user with the given roles all the way through the
// callback and returns the resulting session cookie.
func establishSession(t *testing.T, f *fixture) *http.Cookie {
	t.Helper()

	state, stateCookie := f.login(t)
	resp := f.callback(t, state, stateCookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	return cookie
}

func TestRouteGuard_AnonymousIsRedirectedToLogin(t *testing.T) {
	f := newFixture(t, tokenSuccess(""))

	for _, route := range []string{"/admin", "/user", "/no-role"} {
		t.Run(route, func(t *testing.T) {
			resp := f.do(t, http.MethodGet, route)
			require.Equal(t, http.StatusSeeOther, resp.StatusCode)
			require.Equal(t, "/login", resp.Header.Get("Location"))
		})
	}
}

func TestRouteGuard_TamperedCookieIsRejected(t *testing.T) {
	f := newFixture(t, tokenSuccess(""))

	resp := f.do(t, http.MethodGet, "/user", &http.Cookie{
		Name:  "portal_session",
		Value: "forged-session-id.forged-signature",
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestRouteGuard_InsufficientRoleIsForbidden(t *testing.T) {
	f := newFixture(t, tokenSuccess(accessTokenWithRoles(t, []string{"user"}, nil)))
	cookie := establishSession(t, f)

	resp := f.do(t, http.MethodGet, "/admin", cookie)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Denial must not touch the session: /user still works
	resp = f.do(t, http.MethodGet, "/user", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouteGuard_AdminRoleOpensBothDashboards(t *testing.T) {
	f := newFixture(t, tokenSuccess(accessTokenWithRoles(t, []string{"admin", "user"}, nil)))
	cookie := establishSession(t, f)

	for _, route := range []string{"/admin", "/user"} {
		resp := f.do(t, http.MethodGet, route, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), "john.doe@example.com")
	}
}

func TestLandingPage(t *testing.T) {
	f := newFixture(t, tokenSuccess(accessTokenWithRoles(t, []string{"user"}, nil)))

	t.Run("anonymous", func(t *testing.T) {
		resp := f.do(t, http.MethodGet, "/")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), "/login")
	})

	t.Run("signed in", func(t *testing.T) {
		cookie := establishSession(t, f)
		resp := f.do(t, http.MethodGet, "/", cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), "john.doe@example.com")
	})
}
