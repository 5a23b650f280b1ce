// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"errors"
	"time"
)

// Config holds runtime settings for the coursehub API server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Required.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required, never logged.
//   - PasswordHashAlgorithm: "bcrypt" (default) or "argon2id" for new hashes.
//   - LogLevel / LogFormat: see logging.New.
//   - ShutdownTimeout: grace period for in-flight requests on SIGTERM.
//   - ReadHeaderTimeout: passed to http.Server.
type Config struct {
	EndpointAddrHTTP      string
	DatabaseDSN           string
	SecretKey             string
	PasswordHashAlgorithm string
	LogLevel              string
	LogFormat             string
	ShutdownTimeout       time.Duration
	ReadHeaderTimeout     time.Duration
}

var (
	ErrMissingSecretKey   = errors.New("JWT_SECRET must be set")
	ErrMissingDatabaseDSN = errors.New("DATABASE_URL must be set")
)

// LoadDefaults populates Config with development defaults. The secret and
// the DSN deliberately have none.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.PasswordHashAlgorithm = "bcrypt"
	c.LogLevel = "info"
	c.LogFormat = "json"
	c.ShutdownTimeout = 10 * time.Second
	c.ReadHeaderTimeout = 5 * time.Second
}

// Validate reports the first missing required value.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return ErrMissingSecretKey
	}
	if c.DatabaseDSN == "" {
		return ErrMissingDatabaseDSN
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
