package server

import (
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeHTML = "text/html; charset=utf-8"

// PageData carries the user context handed to the template renderer.
type PageData struct {
	Title       string
	Mode        string
	DisplayName string
	Roles       []string
	Realm       string
	LoggedIn    bool
	Message     string
	Detail      string
}

// Renderer turns a user context into HTML. The markup here is a minimal
// stand-in: the pages are presentational and deployments swap in their own
// templates.
type Renderer struct {
	templates map[string]*template.Template
}

const (
	landingTemplate = `<!DOCTYPE html>
<html><head><title>{{.Title}}</title></head><body>
<h1>{{.Title}}</h1>
<p>Realm: {{.Realm}}</p>
{{if .LoggedIn}}<p>Signed in as {{.DisplayName}}</p><a href="/logout">Logout</a>
{{else}}<a href="/login">Login</a>{{end}}
</body></html>`

	dashboardTemplate = `<!DOCTYPE html>
<html><head><title>{{.Title}}</title></head><body>
<h1>{{.Title}}</h1>
<p>Mode: {{.Mode}}</p>
<p>Signed in as {{.DisplayName}}</p>
<p>Roles: {{range .Roles}}{{.}} {{end}}</p>
<a href="/logout">Logout</a>
</body></html>`

	noRoleTemplate = `<!DOCTYPE html>
<html><head><title>{{.Title}}</title></head><body>
<h1>{{.Title}}</h1>
<p>{{.DisplayName}} has no role granting access to this portal.</p>
<a href="/logout">Logout</a>
</body></html>`

	errorTemplate = `<!DOCTYPE html>
<html><head><title>{{.Title}}</title></head><body>
<h1>{{.Title}}</h1>
<p>{{.Message}}</p>
{{if .Detail}}<p>{{.Detail}}</p>{{end}}
<a href="/login">Try logging in again</a>
</body></html>`
)

func NewRenderer() *Renderer {
	templates := map[string]*template.Template{}
	for name, text := range map[string]string{
		"landing":   landingTemplate,
		"dashboard": dashboardTemplate,
		"no_role":   noRoleTemplate,
		"error":     errorTemplate,
	} {
		templates[name] = template.Must(template.New(name).Parse(text))
	}
	return &Renderer{templates: templates}
}

func (r *Renderer) Render(w io.Writer, page string, data PageData) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("[Renderer Render] unknown page %q", page)
	}
	return tmpl.Execute(w, data)
}

func (s *Server) renderPage(w http.ResponseWriter, status int, page string, data PageData) {
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	if err := s.renderer.Render(w, page, data); err != nil {
		log.Err(err).Str("page", page).Msg("Failed to render page")
	}
}

func (s *Server) renderError(w http.ResponseWriter, status int, message, detail string) {
	s.renderPage(w, status, "error", PageData{
		Title:   "Error",
		Message: message,
		Detail:  detail,
	})
}

func (s *Server) renderForbidden(w http.ResponseWriter, _ *http.Request) {
	s.renderPage(w, http.StatusForbidden, "error", PageData{
		Title:   "No access",
		Message: "You do not have permission to view this page.",
	})
}
