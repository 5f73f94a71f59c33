package config

import (
	"strings"
	"time"
)

type SessionConfig interface {
	GetTokenStore() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRefreshMode() string
	GetExpiryMargin() time.Duration
	GetOperatorEmail() string
	GetOperatorPassword() string
}

const (
	TokenStoreMemory = "memory"
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
)

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetTokenStore() string {
	return strings.ToLower(GetEnv("PANEL_TOKEN_STORE", TokenStoreFile))
}

func (Session) GetRedisAddr() string {
	return GetEnv("PANEL_REDIS_ADDR", "localhost:6379")
}

func (Session) GetRedisPassword() string {
	return GetEnv("PANEL_REDIS_PASSWORD", "")
}

// GetRefreshMode is one of "cookie", "body" or "cookie-bridge"
func (Session) GetRefreshMode() string {
	return strings.ToLower(GetEnv("PANEL_REFRESH_MODE", "cookie"))
}

func (Session) GetExpiryMargin() time.Duration {
	return GetEnvDuration("PANEL_EXPIRY_MARGIN", 60*time.Second)
}

func (Session) GetOperatorEmail() string {
	return GetEnv("PANEL_EMAIL", "")
}

func (Session) GetOperatorPassword() string {
	return GetEnv("PANEL_PASSWORD", "")
}
