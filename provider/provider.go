// Package provider is the identity provider client. It owns all network
// interaction with the OIDC provider: building authorization URLs for the
// browser, exchanging authorization codes server-to-server, and verifying
// ID tokens against the provider's published signing keys when not running
// in development mode.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-oidc-portal/internal/config"
	"golang.org/x/oauth2"
)

// Settings carries everything needed to construct a Client. Two base URLs
// are required: the authorization endpoint must be reachable by the end
// user's browser while the token endpoint is called from this service, and
// in containerised deployments those are different addresses.
type Settings struct {
	BrowserBaseURL  string
	BackendBaseURL  string
	Realm           string
	ClientID        string
	ClientSecret    string
	RedirectURI     string
	Scopes          []string
	ExchangeTimeout time.Duration
	DevMode         bool
}

// FromConfig builds Settings from the application configuration.
func FromConfig(c config.Config) Settings {
	return Settings{
		BrowserBaseURL:  c.GetBrowserBaseURL(),
		BackendBaseURL:  c.GetBackendBaseURL(),
		Realm:           c.GetRealm(),
		ClientID:        c.GetClientID(),
		ClientSecret:    c.GetClientSecret(),
		RedirectURI:     c.GetRedirectURI(),
		Scopes:          c.GetScopes(),
		ExchangeTimeout: c.GetExchangeTimeout(),
		DevMode:         c.GetEnv() == "DEV",
	}
}

// TokenResponse is the result of a successful code exchange. It is transient:
// callers extract what they need and must not persist the raw token strings.
type TokenResponse struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	Expiry       time.Time
}

// Client performs the relying-party side of the OIDC authorization code flow.
type Client struct {
	oauth           oauth2.Config
	endpoints       Endpoints
	exchangeTimeout time.Duration
	verifier        *oidc.IDTokenVerifier // nil in dev mode
}

// New validates the settings and constructs a Client. In non-dev mode it also
// wires an ID token verifier backed by the provider's JWKS endpoint, fetched
// over the backend-facing address.
func New(ctx context.Context, s Settings) (*Client, error) {
	if err := validate(s); err != nil {
		return nil, fmt.Errorf("[provider New] invalid settings: %w", err)
	}

	endpoints := endpointsFor(s.BrowserBaseURL, s.BackendBaseURL, s.Realm)

	c := &Client{
		oauth: oauth2.Config{
			ClientID:     s.ClientID,
			ClientSecret: s.ClientSecret,
			RedirectURL:  s.RedirectURI,
			Scopes:       s.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  endpoints.Authorization,
				TokenURL: endpoints.Token,
			},
		},
		endpoints:       endpoints,
		exchangeTimeout: s.ExchangeTimeout,
	}

	if !s.DevMode {
		keySet := oidc.NewRemoteKeySet(ctx, endpoints.JWKS)
		c.verifier = oidc.NewVerifier(endpoints.Issuer, keySet, &oidc.Config{
			ClientID: s.ClientID,
		})
	}

	return c, nil
}

func validate(s Settings) error {
	for name, base := range map[string]string{
		"browser base URL": s.BrowserBaseURL,
		"backend base URL": s.BackendBaseURL,
	} {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s %q is not an absolute URL", name, base)
		}
	}
	if s.Realm == "" {
		return errors.New("realm is required")
	}
	if s.ClientID == "" {
		return errors.New("client ID is required")
	}
	if s.RedirectURI == "" {
		return errors.New("redirect URI is required")
	}
	if u, err := url.Parse(s.RedirectURI); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("redirect URI %q is not an absolute URL", s.RedirectURI)
	}
	return nil
}

// AuthCodeURL builds the browser-facing authorization endpoint URL carrying
// the anti-forgery state and the nonce bound to this login attempt.
func (c *Client) AuthCodeURL(state, nonce string) string {
	return c.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("nonce", nonce))
}

// Exchange performs the backend-to-backend code exchange against the token
// endpoint. The call is bounded by the configured exchange timeout; on
// timeout or transport failure it returns ErrUpstreamUnavailable, and when
// the provider rejects the code it returns ErrInvalidGrant. Authorization
// codes are single-use, so no retry is attempted.
func (c *Client) Exchange(ctx context.Context, code string) (TokenResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.exchangeTimeout)
	defer cancel()

	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil && retrieveErr.Response.StatusCode < 500 {
			return TokenResponse{}, fmt.Errorf("%w: %s", ErrInvalidGrant, retrieveErr.ErrorCode)
		}
		return TokenResponse{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	response := TokenResponse{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
	}
	if idToken, ok := tok.Extra("id_token").(string); ok {
		response.IDToken = idToken
	}
	return response, nil
}

// VerifyIDToken checks the ID token's signature, issuer, audience and expiry
// against the provider's published keys, and that its nonce matches the one
// issued at login. In dev mode no verifier is configured and the check is
// skipped; callers must treat claims as trusted-by-network-position only.
func (c *Client) VerifyIDToken(ctx context.Context, rawIDToken, nonce string) error {
	if c.verifier == nil {
		return nil
	}
	if rawIDToken == "" {
		return fmt.Errorf("%w: no ID token in response", ErrTokenVerification)
	}
	idToken, err := c.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTokenVerification, err)
	}
	if idToken.Nonce != nonce {
		return fmt.Errorf("%w: nonce mismatch", ErrTokenVerification)
	}
	return nil
}

// EndSessionURL builds the browser-facing provider logout URL. The client ID
// is included so the provider can honour the post-logout redirect without an
// id_token_hint, which this service never holds on to.
func (c *Client) EndSessionURL(postLogoutRedirectURI string) string {
	params := url.Values{}
	params.Set("post_logout_redirect_uri", postLogoutRedirectURI)
	params.Set("client_id", c.oauth.ClientID)
	return c.endpoints.EndSession + "?" + params.Encode()
}
