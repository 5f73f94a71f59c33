package config

import (
	"fmt"
	"time"
)

// ServerConfig drives the stand-in panel API in cmd/panelapi.
type ServerConfig interface {
	GetPort() string
	GetJWTSecret() string
	GetAdminEmail() string
	GetAdminPassword() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetRefreshTokenLength() int
	GetRefreshTokenInBody() bool
}

type Server struct{}

var _ ServerConfig = Server{}

func (Server) GetPort() string {
	port := GetEnv("PORT", "8080")
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (Server) GetJWTSecret() string {
	return GetEnv("PANEL_JWT_SECRET", "dev-secret")
}

func (Server) GetAdminEmail() string {
	return GetEnv("PANEL_ADMIN_EMAIL", "admin@example.com")
}

func (Server) GetAdminPassword() string {
	return GetEnv("PANEL_ADMIN_PASSWORD", "admin")
}

func (Server) GetAccessTokenExpiry() time.Duration {
	return GetEnvDuration("ACCESS_TOKEN_EXPIRY", 15*time.Minute)
}

func (Server) GetRefreshTokenExpiry() time.Duration {
	return GetEnvDuration("REFRESH_TOKEN_EXPIRY", 7*24*time.Hour) // 7 days
}

func (Server) GetRefreshTokenLength() int {
	return 32 // 32 bytes = 256 bits
}

// GetRefreshTokenInBody echoes the refresh token in login/refresh bodies for legacy clients.
func (Server) GetRefreshTokenInBody() bool {
	return GetEnvBool("PANEL_REFRESH_IN_BODY", false)
}
