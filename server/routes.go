package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex+"{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleware()...))

	// Login flow
	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteCallback, ChainMiddleware(s.CallbackHandler(), s.HTMLMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleware()...))

	// Role-gated pages
	s.RegisterRouteFunc("GET "+RouteAdmin, ChainMiddleware(s.AdminPageHandler(), s.HTMLMiddleware(s.RequireRole(RoleAdmin))...))
	s.RegisterRouteFunc("GET "+RouteUser, ChainMiddleware(s.UserPageHandler(), s.HTMLMiddleware(s.RequireRole(RoleUser))...))
	s.RegisterRouteFunc("GET "+RouteNoRole, ChainMiddleware(s.NoRolePageHandler(), s.HTMLMiddleware(s.RequireSession())...))
}
