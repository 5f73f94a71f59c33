package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/restaurant-panel/panelapi"
	"github.com/jrsteele09/restaurant-panel/session"
	"github.com/stretchr/testify/require"
)

func TestHTTPAuthAPILogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, panelapi.RouteAuthLogin, r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body panelapi.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Password != testPassword {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"accessToken":"a-1","expiresIn":900}`))
	}))
	defer server.Close()

	api := session.NewHTTPAuthAPI(server.URL, server.Client())

	tokens, err := api.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	require.Equal(t, "a-1", *tokens.AccessToken)
	require.Equal(t, 900, tokens.ExpiresIn)
	require.Nil(t, tokens.RefreshToken)

	_, err = api.Login(context.Background(), testEmail, "nope")
	var statusErr *session.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestHTTPAuthAPIRefreshBody(t *testing.T) {
	var got panelapi.RefreshRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, panelapi.RouteAuthRefresh, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"accessToken":"a-2","refreshToken":"r-2"}`))
	}))
	defer server.Close()

	api := session.NewHTTPAuthAPI(server.URL, server.Client())
	tokens, err := api.Refresh(context.Background(), "r-1")
	require.NoError(t, err)
	require.Equal(t, "r-1", got.RefreshToken)
	require.Equal(t, "r-2", *tokens.RefreshToken)
}

func TestHTTPAuthAPINetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := session.NewHTTPAuthAPI(url, http.DefaultClient).Refresh(context.Background(), "")
	require.Error(t, err)
}
