package server

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/restaurant-panel/panelapi"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeyAccountID stores the authenticated account ID
const ContextKeyAccountID ContextKey = "account_id"

// RequireAuth validates the Bearer access token. Like the panel API it
// answers 403 for a missing, malformed, invalid or expired token; the client
// treats 403 as the cue to refresh.
func (s *Server) RequireAuth() Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
				writeError(w, http.StatusForbidden, "access_denied", "missing bearer token")
				return
			}

			accountID, err := s.access.Verify(parts[1])
			if err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("server: rejected access token")
				writeError(w, http.StatusForbidden, "access_denied", "invalid or expired token")
				return
			}
			if account, err := s.accounts.Get(accountID); err != nil || account.Blocked {
				writeError(w, http.StatusForbidden, "access_denied", "account not allowed")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAccountID, accountID)
			next(w, r.WithContext(ctx))
		}
	}
}

// RequireCSRF enforces the double-submit check on mutating requests: the
// anti-forgery header must equal the anti-forgery cookie set at login.
func (s *Server) RequireCSRF() Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !s.config.GetCSRFEnabled() || !panelapi.IsMutating(r.Method) {
				next(w, r)
				return
			}

			cookie, err := r.Cookie(s.config.GetCSRFCookieName())
			header := r.Header.Get(s.config.GetCSRFHeaderName())
			if err != nil || cookie.Value == "" || header == "" ||
				subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(header)) != 1 {
				writeError(w, http.StatusForbidden, "csrf_failed", "missing or mismatched csrf token")
				return
			}
			next(w, r)
		}
	}
}
