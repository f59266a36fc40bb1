package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-oidc-portal/internal/config"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := config.New()

	require.Equal(t, ":8000", c.GetPort())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "http://localhost:8080", c.GetBrowserBaseURL())
	require.Equal(t, "demo-realm", c.GetRealm())
	require.Equal(t, []string{"openid", "profile", "email"}, c.GetScopes())
	require.Equal(t, time.Hour, c.GetSessionTTL())
	require.Equal(t, "http://localhost:8000/callback", c.GetRedirectURI())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("KEYCLOAK_REALM", "production-realm")
	t.Setenv("OIDC_SCOPES", "openid roles")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("OIDC_EXCHANGE_TIMEOUT", "junk")

	c := config.New()

	require.Equal(t, ":9090", c.GetPort())
	require.Equal(t, "production-realm", c.GetRealm())
	require.Equal(t, []string{"openid", "roles"}, c.GetScopes())
	require.Equal(t, 30*time.Minute, c.GetSessionTTL())
	require.Equal(t, 10*time.Second, c.GetExchangeTimeout(), "unparseable duration falls back to the default")
}
