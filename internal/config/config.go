// Package config provides centralized configuration for the admin console.
// Settings come from environment variables (optionally seeded from a .env
// file by main) with defaults declared in struct tags, and are validated on
// startup so a misconfigured console fails before serving anything.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	API      APIConfig
	Session  SessionConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 4200)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"4200"`

	// ReadTimeout is the maximum duration for reading a request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is 0 by default so the notification stream stays open.
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"0s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown (default: 15s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`

	// RequestTimeout is the middleware timeout for page requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// APIConfig holds settings for the upstream universidad REST API.
type APIConfig struct {
	// BaseURL is the API root, including the version prefix.
	BaseURL string `env:"API_BASE_URL" envAlt:"API_URL" default:"http://localhost:8080/api/v1"`

	// Timeout is the transport timeout for a single API call (default: 30s)
	Timeout time.Duration `env:"API_TIMEOUT" default:"30s"`

	// UserAgent is sent on every outbound request.
	UserAgent string `env:"API_USER_AGENT" default:"universidad-console/1.0"`
}

// SessionConfig holds browser session settings.
type SessionConfig struct {
	// CookieName identifies the session cookie (default: uni_session)
	CookieName string `env:"SESSION_COOKIE_NAME" default:"uni_session"`

	// TTL is how long an idle session keeps its pages (default: 2h)
	TTL time.Duration `env:"SESSION_TTL" default:"2h"`

	// SecureCookie marks the cookie Secure; enable behind TLS.
	SecureCookie bool `env:"SESSION_SECURE_COOKIE" default:"false"`

	// CleanupInterval is how often expired sessions are swept (default: 5m)
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" default:"5m"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the limit per client IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// AllowedOrigins lists CORS origins for the JSON API (default: *)
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
