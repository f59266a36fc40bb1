package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex    = "/"
	RouteLogin    = "/login"
	RouteCallback = "/callback"
	RouteLogout   = "/logout"

	// Role-gated pages
	RouteAdmin  = "/admin"
	RouteUser   = "/user"
	RouteNoRole = "/no-role"
)

// Role names as issued by the identity provider.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
