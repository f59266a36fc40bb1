package server_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/jrsteele09/go-oidc-portal/server/authflowrepo"
	"github.com/stretchr/testify/require"
)

func TestLogout_ClearsSessionAndRedirectsToProvider(t *testing.T) {
	f := newFixture(t, tokenSuccess(accessTokenWithRoles(t, []string{"user"}, nil)))
	cookie := establishSession(t, f)

	resp := f.do(t, http.MethodGet, "/logout", cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	endSession, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	require.Equal(t, "keycloak.public:8080", endSession.Host, "end-session endpoint must use the browser-facing base")
	require.Equal(t, "/realms/demo-realm/protocol/openid-connect/logout", endSession.Path)
	require.Equal(t, testAppBase+"/", endSession.Query().Get("post_logout_redirect_uri"))

	// Session cookie is cleared
	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == "portal_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared)

	// The session itself is gone: the dashboard denies the old cookie
	page := f.do(t, http.MethodGet, "/user", cookie)
	require.Equal(t, http.StatusSeeOther, page.StatusCode)
	require.Equal(t, "/login", page.Header.Get("Location"))
}

func TestLogout_ClearsTamperedSessionCookie(t *testing.T) {
	f := newFixture(t, tokenSuccess(accessTokenWithRoles(t, []string{"user"}, nil)))
	cookie := establishSession(t, f)

	// A cookie with a broken signature never resolves to a session, but
	// logout must still tell the browser to drop it
	tampered := &http.Cookie{Name: cookie.Name, Value: cookie.Value + "x"}
	resp := f.do(t, http.MethodGet, "/logout", tampered)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == "portal_session" && c.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared)
}

func TestLogout_WithoutSessionIsIdempotent(t *testing.T) {
	f := newFixture(t, tokenSuccess(""))

	first := f.do(t, http.MethodGet, "/logout")
	require.Equal(t, http.StatusFound, first.StatusCode)

	second := f.do(t, http.MethodGet, "/logout")
	require.Equal(t, http.StatusFound, second.StatusCode)
}

func TestLogout_InvalidatesInFlightLogin(t *testing.T) {
	f := newFixture(t, tokenSuccess(accessTokenWithRoles(t, []string{"user"}, nil)))

	state, stateCookie := f.login(t)

	resp := f.do(t, http.MethodGet, "/logout", stateCookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	_, err := f.pending.Consume(state)
	require.ErrorIs(t, err, authflowrepo.ErrStateNotFound)

	// The pending state was consumed by logout; the callback can no longer
	// complete even with the original cookie
	callback := f.callback(t, state, stateCookie)
	require.Equal(t, http.StatusBadRequest, callback.StatusCode)
}
