package provider

import "errors"

var (
	// ErrInvalidGrant is returned when the identity provider rejects the
	// authorization code (expired, reused, or otherwise invalid).
	ErrInvalidGrant = errors.New("invalid grant")

	// ErrUpstreamUnavailable is returned when the identity provider cannot
	// be reached or does not answer within the exchange timeout.
	ErrUpstreamUnavailable = errors.New("identity provider unavailable")

	// ErrTokenVerification is returned when ID token verification fails in
	// verified mode (bad signature, issuer, audience, expiry or nonce).
	ErrTokenVerification = errors.New("token verification failed")
)
