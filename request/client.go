package request

import (
	"net/http"
	"time"
)

// NewHTTPClient returns the client shared by the pipeline and the auth endpoints.
// Sharing the jar is what lets the refresh cookie set at login reach the refresh endpoint.
func NewHTTPClient(jar http.CookieJar, timeout time.Duration) *http.Client {
	return &http.Client{
		Jar:     jar,
		Timeout: timeout,
	}
}
