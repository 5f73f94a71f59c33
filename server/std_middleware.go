package server

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

type Middleware func(http.HandlerFunc) http.HandlerFunc

// ChainMiddleware wraps handler so the first middleware listed runs first.
func ChainMiddleware(handler http.HandlerFunc, mw ...Middleware) http.HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}

// APIMiddleware is the stack shared by every JSON endpoint.
func (s *Server) APIMiddleware() []Middleware {
	return []Middleware{
		s.MetricsMiddleware,
		s.RecoverMiddleware,
		s.LoggingMiddleware,
		s.CorsMiddleware,
	}
}

func (s *Server) LoggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.env == "DEV" {
			logRoute(r.Method, r.URL.Path)
		}
		next(w, r)
	}
}

func (s *Server) RecoverMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().Interface("panic", rec).Str("path", r.URL.Path).Msg("server: recovered from panic")
				writeError(w, http.StatusInternalServerError, "server_error", "internal error")
			}
		}()
		next(w, r)
	}
}

// statusRecorder captures the status written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) MetricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.RecordServed(r.Method, rec.status)
	}
}

// CorsMiddleware echoes allowed origins back with credentials enabled and
// answers preflight requests itself. Unknown origins get no CORS headers.
func (s *Server) CorsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		allowed := s.allowOrigin(w, r.Header.Get("Origin"))
		if r.Method != http.MethodOptions {
			next(w, r)
			return
		}
		if allowed {
			h := w.Header()
			h.Set("Access-Control-Allow-Methods", s.config.GetAllowedMethods())
			h.Set("Access-Control-Allow-Headers", s.config.GetAllowedHeaders())
			h.Set("Access-Control-Max-Age", "86400")
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) allowOrigin(w http.ResponseWriter, origin string) bool {
	if origin == "" || !s.config.GetAllowedOrigins().IsAllowedOrigin(origin) {
		return false
	}
	h := w.Header()
	h.Add("Vary", "Origin")
	// Credentialed requests need the exact origin, never a wildcard
	h.Set("Access-Control-Allow-Origin", origin)
	h.Set("Access-Control-Allow-Credentials", "true")
	return true
}
