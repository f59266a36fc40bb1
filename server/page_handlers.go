package server

import (
	"net/http"
)

// IndexHandler renders the landing page; logged-in users see who they are.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{
			Title: "Login",
			Realm: s.config.GetRealm(),
		}
		if session, err := s.Authorize(r, ""); err == nil {
			data.LoggedIn = true
			data.DisplayName = session.DisplayName
		}
		s.renderPage(w, http.StatusOK, "landing", data)
	}
}

// AdminPageHandler renders the admin dashboard. Guarded by RequireRole(RoleAdmin).
func (s *Server) AdminPageHandler() http.HandlerFunc {
	return s.dashboardHandler("Admin", "admin")
}

// UserPageHandler renders the user dashboard. Guarded by RequireRole(RoleUser).
func (s *Server) UserPageHandler() http.HandlerFunc {
	return s.dashboardHandler("User", "user")
}

func (s *Server) dashboardHandler(title, mode string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, RouteLogin, http.StatusSeeOther)
			return
		}
		s.renderPage(w, http.StatusOK, "dashboard", PageData{
			Title:       title,
			Mode:        mode,
			DisplayName: session.DisplayName,
			Roles:       session.Roles,
			LoggedIn:    true,
		})
	}
}

// NoRolePageHandler renders the page shown to authenticated users that carry
// neither the admin nor the user role.
func (s *Server) NoRolePageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessionFromContext(r.Context())
		s.renderPage(w, http.StatusOK, "no_role", PageData{
			Title:       "No role",
			DisplayName: session.DisplayName,
			LoggedIn:    true,
		})
	}
}
