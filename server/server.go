// Package server is an in-memory stand-in for the restaurant panel API. It
// serves the auth and content endpoints the panel client calls so the client
// can be run and tested end to end.
package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/restaurant-panel/internal/config"
	"github.com/jrsteele09/restaurant-panel/internal/metrics"
	"github.com/jrsteele09/restaurant-panel/server/accounts"
	"github.com/jrsteele09/restaurant-panel/server/content"
	"github.com/jrsteele09/restaurant-panel/server/tokens"
)

// Config is the subset of configuration the stand-in API reads.
type Config interface {
	config.EnvConfig
	config.SecurityConfig
	config.ServerConfig
	config.CorsConfig
}

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	routes   []string
	config   Config
	accounts *accounts.Repo
	access   *tokens.AccessIssuer
	refresh  *tokens.RefreshManager
	content  *content.Store
	registry *prometheus.Registry
	metrics  *metrics.Collector
}

func New(cfg Config) (*Server, error) {
	registry := prometheus.NewRegistry()
	s := &Server{
		env:      cfg.GetEnv(),
		mux:      http.NewServeMux(),
		config:   cfg,
		accounts: accounts.NewRepo(),
		access:   tokens.NewAccessIssuer(cfg.GetJWTSecret(), cfg.GetAccessTokenExpiry()),
		refresh:  tokens.NewRefreshManager(cfg.GetRefreshTokenLength(), cfg.GetRefreshTokenExpiry()),
		content:  content.NewStore(),
		registry: registry,
		metrics:  metrics.NewCollector(registry),
	}

	// Seed the operator account
	if _, err := s.accounts.Add(cfg.GetAdminEmail(), cfg.GetAdminPassword()); err != nil {
		return nil, fmt.Errorf("[Server New] failed to seed operator account: %w", err)
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Accounts exposes the operator accounts, e.g. to add more operators in tests.
func (s *Server) Accounts() *accounts.Repo {
	return s.accounts
}

// Content exposes the content store, e.g. to seed data.
func (s *Server) Content() *content.Store {
	return s.content
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Debug().Msgf("[%-19s] %s", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
