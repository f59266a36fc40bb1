package server

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-oidc-portal/internal/config"
	"github.com/jrsteele09/go-oidc-portal/provider"
	"github.com/jrsteele09/go-oidc-portal/server/authflowrepo"
	"github.com/jrsteele09/go-oidc-portal/sessions"
	"github.com/rs/zerolog/log"
)

const defaultSessionSecret = "dev_session_secret_change_me"

type Server struct {
	env      string // Environment (e.g., "DEV", "production")
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	provider *provider.Client
	sessions sessions.Repo
	pending  authflowrepo.Repo
	renderer *Renderer
}

func New(config config.Config, providerClient *provider.Client, sessionRepo sessions.Repo, pendingRepo authflowrepo.Repo) (*Server, error) {
	s := &Server{
		mux:      http.NewServeMux(),
		config:   config,
		provider: providerClient,
		sessions: sessionRepo,
		pending:  pendingRepo,
		renderer: NewRenderer(),
	}
	s.env = config.GetEnv()

	if s.env != "DEV" && config.GetSessionSecret() == defaultSessionSecret {
		return nil, fmt.Errorf("[Server New] SESSION_SECRET must be set outside development")
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		log.Info().Str("route", route).Msg("registered")
	}
}
