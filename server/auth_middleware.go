package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/jrsteele09/go-oidc-portal/sessions"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the authenticated session for the request
const ContextKeySession ContextKey = "session"

// Authorize checks the request's session against a required role. It is a
// pure read: the session is never mutated on denial. An empty requiredRole
// only demands an authenticated session.
func (s *Server) Authorize(r *http.Request, requiredRole string) (sessions.Session, error) {
	sessionID := s.sessionIDFromRequest(r)
	if sessionID == "" {
		return sessions.Session{}, ErrUnauthenticated
	}

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return sessions.Session{}, ErrUnauthenticated
	}

	if requiredRole != "" && !session.HasRole(requiredRole) {
		return sessions.Session{}, ErrForbidden
	}

	return session, nil
}

// RequireRole gates a route on an authenticated session carrying the given
// role. Missing sessions redirect to login; insufficient roles get a 403
// page, never a silent grant.
func (s *Server) RequireRole(role string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session, err := s.Authorize(r, role)
			switch {
			case errors.Is(err, ErrUnauthenticated):
				http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
				return
			case errors.Is(err, ErrForbidden):
				s.renderForbidden(w, r)
				return
			case err != nil:
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireSession gates a route on any authenticated session, without a role
// requirement.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return s.RequireRole("")
}

// sessionFromContext returns the session injected by RequireRole, if any.
func sessionFromContext(ctx context.Context) (sessions.Session, bool) {
	session, ok := ctx.Value(ContextKeySession).(sessions.Session)
	return session, ok
}
