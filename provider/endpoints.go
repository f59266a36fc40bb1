package provider

import "fmt"

// Endpoints holds the resolved identity provider URLs. The authorization and
// end-session endpoints must be reachable by the user's browser, while the
// token and JWKS endpoints are called server-to-server, so each group is
// anchored on a different base URL.
type Endpoints struct {
	Authorization string
	Token         string
	JWKS          string
	EndSession    string
	Issuer        string
}

func endpointsFor(browserBase, backendBase, realm string) Endpoints {
	return Endpoints{
		Authorization: fmt.Sprintf("%s/realms/%s/protocol/openid-connect/auth", browserBase, realm),
		Token:         fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token", backendBase, realm),
		JWKS:          fmt.Sprintf("%s/realms/%s/protocol/openid-connect/certs", backendBase, realm),
		EndSession:    fmt.Sprintf("%s/realms/%s/protocol/openid-connect/logout", browserBase, realm),
		Issuer:        fmt.Sprintf("%s/realms/%s", browserBase, realm),
	}
}
