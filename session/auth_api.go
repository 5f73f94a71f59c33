package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jrsteele09/restaurant-panel/panelapi"
)

// AuthAPI is the authentication endpoint pair the manager talks to.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*panelapi.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*panelapi.TokenResponse, error)
}

// StatusError reports a non-success response from an auth endpoint.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d", e.Endpoint, e.StatusCode)
}

// HTTPAuthAPI calls the panel API. The client should carry the cookie jar
// shared with the request pipeline so the refresh cookie set on login is sent
// back on refresh.
type HTTPAuthAPI struct {
	baseURL string
	client  *http.Client
}

var _ AuthAPI = (*HTTPAuthAPI)(nil)

func NewHTTPAuthAPI(baseURL string, client *http.Client) *HTTPAuthAPI {
	return &HTTPAuthAPI{baseURL: baseURL, client: client}
}

func (a *HTTPAuthAPI) Login(ctx context.Context, email, password string) (*panelapi.TokenResponse, error) {
	return a.post(ctx, panelapi.RouteAuthLogin, panelapi.LoginRequest{Email: email, Password: password})
}

func (a *HTTPAuthAPI) Refresh(ctx context.Context, refreshToken string) (*panelapi.TokenResponse, error) {
	return a.post(ctx, panelapi.RouteAuthRefresh, panelapi.RefreshRequest{RefreshToken: refreshToken})
}

func (a *HTTPAuthAPI) post(ctx context.Context, endpoint string, payload any) (*panelapi.TokenResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(msg)}
	}

	var tokens panelapi.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return &tokens, nil
}
