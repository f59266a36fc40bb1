package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-oidc-portal/provider"
	"github.com/jrsteele09/go-oidc-portal/server/authflowrepo"
	"github.com/jrsteele09/go-oidc-portal/sessions"
	"github.com/jrsteele09/go-oidc-portal/token"
	"github.com/rs/zerolog/log"
)

// CallbackHandler completes the authorization code flow. The returned state
// must match both the browser's state cookie and a stored pending flow
// (single-use); only then is the code exchanged, roles extracted, and the
// session established. Every failure leaves the session anonymous and offers
// a retry via /login.
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := r.URL.Query().Get("state")
		code := r.URL.Query().Get("code")
		errorParam := r.URL.Query().Get("error")
		errorDesc := r.URL.Query().Get("error_description")

		// Authorization errors reported by the provider
		if errorParam != "" {
			s.renderError(w, http.StatusBadRequest, "Authorization failed", errorParam+" - "+errorDesc)
			return
		}

		if code == "" || state == "" {
			s.renderError(w, http.StatusBadRequest, "Missing code or state parameter", "")
			return
		}

		pending, err := s.consumeState(r, state)
		if err != nil {
			log.Warn().Err(err).Msg("Callback state rejected")
			s.ClearAuthStateCookie(w, r)
			s.renderError(w, http.StatusBadRequest, "Login flow is invalid or expired", "")
			return
		}
		s.ClearAuthStateCookie(w, r)

		tokenResponse, err := s.provider.Exchange(r.Context(), code)
		if err != nil {
			s.exchangeFailed(w, err)
			return
		}

		// Verified outside dev mode; dev mode trusts network position only
		if err := s.provider.VerifyIDToken(r.Context(), tokenResponse.IDToken, pending.Nonce); err != nil {
			log.Err(err).Msg("ID token verification failed")
			s.renderError(w, http.StatusUnauthorized, "Token verification failed", "")
			return
		}

		roles, err := token.ExtractRoles(tokenResponse.AccessToken, s.config.GetClientID())
		if err != nil {
			// An undecodable token from the provider is treated as a bad grant
			log.Err(err).Msg("Failed to extract roles from access token")
			s.renderError(w, http.StatusBadRequest, "Login failed", "The identity provider returned an unreadable token.")
			return
		}

		identity, err := token.ExtractIdentity(tokenResponse.AccessToken)
		if err != nil {
			s.renderError(w, http.StatusBadRequest, "Login failed", "The identity provider returned an unreadable token.")
			return
		}

		// Only subject, display name and roles are persisted: the raw token
		// strings never reach the session store.
		now := time.Now()
		ttl := s.config.GetSessionTTL()
		session := sessions.Session{
			Subject:     identity.Subject,
			DisplayName: identity.DisplayName(),
			Roles:       roles.Names(),
			CreatedAt:   now,
			ExpiresAt:   now.Add(ttl),
		}

		sessionID := uuid.NewString()
		if err := s.sessions.Upsert(sessionID, session); err != nil {
			log.Err(err).Msg("Failed to create session")
			http.Error(w, "Failed to create session", http.StatusInternalServerError)
			return
		}
		s.SetSessionCookie(w, r, sessionID, int(ttl.Seconds()))

		http.Redirect(w, r, postLoginRoute(roles), http.StatusFound)
	}
}

// consumeState correlates the callback with a pending login: the state must
// match the browser's cookie and a stored flow, which is consumed so it can
// never be replayed.
func (s *Server) consumeState(r *http.Request, state string) (*authflowrepo.PendingAuth, error) {
	if s.stateFromCookie(r) != state {
		return nil, ErrStateMismatch
	}
	pending, err := s.pending.Consume(state)
	if err != nil {
		return nil, ErrStateMismatch
	}
	return pending, nil
}

func (s *Server) exchangeFailed(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, provider.ErrUpstreamUnavailable):
		log.Err(err).Msg("Code exchange failed: provider unreachable")
		s.renderError(w, http.StatusBadGateway, "The identity provider is unavailable", "Please try again.")
	case errors.Is(err, provider.ErrInvalidGrant):
		log.Warn().Err(err).Msg("Code exchange rejected")
		s.renderError(w, http.StatusBadRequest, "Login failed", "The authorization code was rejected.")
	default:
		log.Err(err).Msg("Code exchange failed")
		s.renderError(w, http.StatusBadRequest, "Login failed", "")
	}
}

// postLoginRoute maps extracted roles onto the landing route, highest
// privilege first: admin beats user, no role at all lands on /no-role.
func postLoginRoute(roles token.RoleSet) string {
	switch {
	case roles.Has(RoleAdmin):
		return RouteAdmin
	case roles.Has(RoleUser):
		return RouteUser
	default:
		return RouteNoRole
	}
}
