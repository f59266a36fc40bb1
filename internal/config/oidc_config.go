package config

import (
	"strings"
	"time"
)

type OIDCConfig interface {
	GetBrowserBaseURL() string
	GetBackendBaseURL() string
	GetRealm() string
	GetClientID() string
	GetClientSecret() string
	GetRedirectURI() string
	GetScopes() []string
	GetExchangeTimeout() time.Duration
}

type OIDC struct{}

var _ OIDCConfig = OIDC{}

// GetBrowserBaseURL returns the identity provider base URL reachable by the
// end user's browser. Used for the authorization and end-session endpoints.
func (OIDC) GetBrowserBaseURL() string {
	return GetEnv("KEYCLOAK_BROWSER_BASE", "http://localhost:8080")
}

// GetBackendBaseURL returns the identity provider base URL reachable from
// this service. Used for the server-to-server token and JWKS endpoints.
func (OIDC) GetBackendBaseURL() string {
	return GetEnv("KEYCLOAK_BACKEND_BASE", "http://host.docker.internal:8080")
}

func (OIDC) GetRealm() string {
	return GetEnv("KEYCLOAK_REALM", "demo-realm")
}

func (OIDC) GetClientID() string {
	return GetEnv("OIDC_CLIENT_ID", "portal-client")
}

func (OIDC) GetClientSecret() string {
	return GetEnv("OIDC_CLIENT_SECRET", "")
}

func (OIDC) GetRedirectURI() string {
	return GetEnv("OIDC_REDIRECT_URI", EnvVars{}.GetAppBase()+"/callback")
}

func (OIDC) GetScopes() []string {
	scopes := GetEnv("OIDC_SCOPES", "openid profile email")
	return strings.Fields(scopes)
}

func (OIDC) GetExchangeTimeout() time.Duration {
	return durationEnv("OIDC_EXCHANGE_TIMEOUT", 10*time.Second)
}

func durationEnv(envVar string, defaultValue time.Duration) time.Duration {
	value := GetEnv(envVar, "")
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
