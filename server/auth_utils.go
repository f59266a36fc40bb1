package server

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/go-oidc-portal/server/authflowrepo"
)

const (
	// sessionCookieName holds the signed session identifier
	sessionCookieName = "portal_session"
	// stateCookieName binds an in-flight login attempt to the browser that
	// started it; short-lived, cleared on callback or logout
	stateCookieName = "auth_state"

	// stateCookieMaxAge matches the lifetime of the server-side pending flow
	stateCookieMaxAge = int(authflowrepo.PendingLifetime / time.Second)
)

// generateRandomString creates a random base64url string
func generateRandomString(length int) string {
	b := make([]byte, length)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

// signCookieValue appends an HMAC-SHA256 tag so a tampered session ID is
// rejected before the store is consulted.
func signCookieValue(secret, value string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	return value + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func verifyCookieValue(secret, signed string) (string, bool) {
	value, _, found := strings.Cut(signed, ".")
	if !found || value == "" {
		return "", false
	}
	if !hmac.Equal([]byte(signCookieValue(secret, value)), []byte(signed)) {
		return "", false
	}
	return value, true
}

func (s *Server) SetSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signCookieValue(s.config.GetSessionSecret(), sessionID),
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func (s *Server) ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	s.SetSessionCookie(w, r, "expired", -1)
}

func (s *Server) SetAuthStateCookie(w http.ResponseWriter, r *http.Request, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    signCookieValue(s.config.GetSessionSecret(), state),
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   stateCookieMaxAge,
	})
}

func (s *Server) ClearAuthStateCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// sessionIDFromRequest extracts and authenticates the session ID carried by
// the request's cookie. An absent or tampered cookie yields "".
func (s *Server) sessionIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	sessionID, ok := verifyCookieValue(s.config.GetSessionSecret(), cookie.Value)
	if !ok {
		return ""
	}
	return sessionID
}

// stateFromCookie extracts the pending login state bound to this browser.
func (s *Server) stateFromCookie(r *http.Request) string {
	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	state, ok := verifyCookieValue(s.config.GetSessionSecret(), cookie.Value)
	if !ok {
		return ""
	}
	return state
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
