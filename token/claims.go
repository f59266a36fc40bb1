// Package token decodes access token claims and normalises role information.
//
// In development mode tokens are decoded without signature verification, so
// nothing in this package asserts that a token is authentic. Callers gate
// trust on their own verification (see provider.VerifyIDToken).
package token

import (
	"errors"
	"fmt"
	"sort"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when the token's payload segment cannot be
// decoded into structured claims.
var ErrMalformedToken = errors.New("malformed token")

// RoleSet is the union of realm-level and client-scoped role names extracted
// from an access token.
type RoleSet map[string]struct{}

func (rs RoleSet) Has(role string) bool {
	_, ok := rs[role]
	return ok
}

// Names returns the roles sorted, for stable logging and rendering.
func (rs RoleSet) Names() []string {
	names := make([]string, 0, len(rs))
	for role := range rs {
		names = append(names, role)
	}
	sort.Strings(names)
	return names
}

// Identity holds the subject claims the portal keeps for display purposes.
type Identity struct {
	Subject           string
	Email             string
	PreferredUsername string
}

// DisplayName prefers the email address, falling back to the username.
func (i Identity) DisplayName() string {
	if i.Email != "" {
		return i.Email
	}
	return i.PreferredUsername
}

// ExtractRoles decodes the access token payload and unions three role
// sources: a top-level "roles" claim (custom provider mapper),
// "realm_access.roles", and "resource_access[clientID].roles". Sources that
// are absent or of the wrong shape contribute nothing; the only hard failure
// is an undecodable payload.
func ExtractRoles(rawToken, clientID string) (RoleSet, error) {
	claims, err := decodeClaims(rawToken)
	if err != nil {
		return nil, err
	}

	roles := RoleSet{}
	addRoleList(roles, claims["roles"])

	if realmAccess, ok := claims["realm_access"].(map[string]any); ok {
		addRoleList(roles, realmAccess["roles"])
	}

	if resourceAccess, ok := claims["resource_access"].(map[string]any); ok {
		if client, ok := resourceAccess[clientID].(map[string]any); ok {
			addRoleList(roles, client["roles"])
		}
	}

	return roles, nil
}

// ExtractIdentity decodes the subject, email and preferred username claims
// from the access token payload.
func ExtractIdentity(rawToken string) (Identity, error) {
	claims, err := decodeClaims(rawToken)
	if err != nil {
		return Identity{}, err
	}

	identity := Identity{}
	identity.Subject, _ = claims["sub"].(string)
	identity.Email, _ = claims["email"].(string)
	identity.PreferredUsername, _ = claims["preferred_username"].(string)
	return identity, nil
}

// decodeClaims parses the compact token representation without verifying the
// signature segment.
func decodeClaims(rawToken string) (jwtlib.MapClaims, error) {
	parsed, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, ErrMalformedToken
	}
	return claims, nil
}

func addRoleList(roles RoleSet, claim any) {
	list, ok := claim.([]any)
	if !ok {
		return
	}
	for _, entry := range list {
		if role, ok := entry.(string); ok {
			roles[role] = struct{}{}
		}
	}
}
