package server

import (
	"net/http"
	"time"

	"github.com/jrsteele09/go-oidc-portal/server/authflowrepo"
	"github.com/rs/zerolog/log"
)

// LoginHandler starts the authorization code flow: it issues an unpredictable
// state and nonce, records the pending attempt keyed by state, binds the state
// to this browser via a short-lived cookie, and redirects to the identity
// provider's browser-facing authorization endpoint.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := generateRandomString(32)
		nonce := generateRandomString(32)

		pending := &authflowrepo.PendingAuth{
			Nonce:     nonce,
			CreatedAt: time.Now(),
		}
		if err := s.pending.Upsert(state, pending); err != nil {
			log.Err(err).Msg("Failed to store pending login")
			http.Error(w, "Failed to start login", http.StatusInternalServerError)
			return
		}

		s.SetAuthStateCookie(w, r, state)
		http.Redirect(w, r, s.provider.AuthCodeURL(state, nonce), http.StatusFound)
	}
}

// LogoutHandler clears the session, invalidates any in-flight login state,
// and sends the browser to the provider's end-session endpoint. Logging out
// without a session is a no-op redirect.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sessionID := s.sessionIDFromRequest(r); sessionID != "" {
			if err := s.sessions.Delete(sessionID); err != nil {
				log.Err(err).Msg("Failed to delete session")
			}
		}
		// Cleared unconditionally so a tampered or unverifiable cookie
		// does not survive logout.
		s.ClearSessionCookie(w, r)

		if state := s.stateFromCookie(r); state != "" {
			if err := s.pending.Delete(state); err != nil {
				log.Err(err).Msg("Failed to delete pending login")
			}
			s.ClearAuthStateCookie(w, r)
		}

		http.Redirect(w, r, s.provider.EndSessionURL(s.config.GetAppBase()+RouteIndex), http.StatusFound)
	}
}
