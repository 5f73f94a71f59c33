package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/restaurant-panel/internal/utils"
	"github.com/jrsteele09/restaurant-panel/panelapi"
)

// LoginHandler exchanges operator credentials for an access token in the body,
// a refresh token in an HttpOnly cookie and a fresh anti-forgery cookie.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req panelapi.LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		account, err := s.accounts.Authenticate(req.Email, req.Password)
		if err != nil {
			log.Info().Str("email", req.Email).Msg("server: login rejected")
			writeError(w, http.StatusUnauthorized, "invalid_grant", "invalid email or password")
			return
		}

		refreshToken, err := s.refresh.Create(account.ID)
		if err != nil {
			log.Err(err).Msg("server: failed to create refresh token")
			writeError(w, http.StatusInternalServerError, "server_error", "internal error")
			return
		}
		s.writeTokens(w, r, account.ID, refreshToken)
	}
}

// RefreshHandler rotates the refresh token. It reads the token from the body
// when one is sent and from the refresh cookie otherwise.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req panelapi.RefreshRequest
		if r.ContentLength != 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			// An empty or non-JSON body falls back to the cookie
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		presented := req.RefreshToken
		if presented == "" {
			if cookie, err := r.Cookie(s.config.GetRefreshCookieName()); err == nil {
				presented = cookie.Value
			}
		}
		if presented == "" {
			writeError(w, http.StatusUnauthorized, "invalid_grant", "no refresh token")
			return
		}

		accountID, next, err := s.refresh.Rotate(presented)
		if err != nil {
			log.Info().Err(err).Msg("server: refresh rejected")
			s.clearCookie(w, r, s.config.GetRefreshCookieName())
			writeError(w, http.StatusUnauthorized, "invalid_grant", err.Error())
			return
		}
		if account, err := s.accounts.Get(accountID); err != nil || account.Blocked {
			s.refresh.Revoke(next)
			s.clearCookie(w, r, s.config.GetRefreshCookieName())
			writeError(w, http.StatusUnauthorized, "invalid_grant", "account not allowed")
			return
		}
		s.writeTokens(w, r, accountID, next)
	}
}

func (s *Server) writeTokens(w http.ResponseWriter, r *http.Request, accountID, refreshToken string) {
	accessToken, expiresIn, err := s.access.Issue(accountID)
	if err != nil {
		log.Err(err).Msg("server: failed to issue access token")
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}
	csrfToken, err := randomToken(16)
	if err != nil {
		log.Err(err).Msg("server: failed to create csrf token")
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	secure := getScheme(r) == "https"
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetRefreshCookieName(),
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(s.config.GetRefreshTokenExpiry().Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})
	// Readable by the client so it can echo it in the anti-forgery header
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetCSRFCookieName(),
		Value:    csrfToken,
		Path:     "/",
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	})

	resp := panelapi.TokenResponse{
		AccessToken: utils.Ptr(accessToken),
		ExpiresIn:   expiresIn,
	}
	if s.config.GetRefreshTokenInBody() {
		resp.RefreshToken = utils.Ptr(refreshToken)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
	})
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
