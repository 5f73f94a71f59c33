package config

import (
	"time"

	"github.com/joho/godotenv"
)

type Config interface {
	EnvConfig
	APIConfig
	SessionConfig
	SecurityConfig
	ServerConfig
	CorsConfig
}

type EnvConfig interface {
	GetEnv() string
	GetAppName() string
	GetDataFolder() string
	GetLogLevel() string
}

type APIConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
	GetRequestRate() float64
	GetRequestBurst() int
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	API
	Session
	Security
	Server
	Cors
}

// New loads a .env file when one is present and returns the env backed config.
func New() Config {
	_ = godotenv.Load()
	return mainConfig{}
}
