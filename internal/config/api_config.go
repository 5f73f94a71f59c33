package config

import (
	"strings"
	"time"
)

type API struct{}

var _ APIConfig = API{}

// GetAPIBaseURL returns the panel API root without a trailing slash (e.g. "http://localhost:8080")
func (API) GetAPIBaseURL() string {
	return strings.TrimRight(GetEnv("PANEL_API_URL", "http://localhost:8080"), "/")
}

func (API) GetRequestTimeout() time.Duration {
	return GetEnvDuration("PANEL_REQUEST_TIMEOUT", 10*time.Second)
}

// GetRequestRate is the outbound requests per second allowed by the pipeline. Zero disables limiting.
func (API) GetRequestRate() float64 {
	return GetEnvFloat("PANEL_REQUEST_RATE", 0)
}

func (API) GetRequestBurst() int {
	return GetEnvInt("PANEL_REQUEST_BURST", 1)
}
