package config

import (
	"os"

	"github.com/joho/godotenv"
)

// envFile is loaded before reading the environment; a missing file is fine.
// Variables already present in the process environment win.
var envFile = ".env"

// parseEnv overlays values from the process environment:
//
//	DATABASE_URL   PostgreSQL DSN
//	JWT_SECRET     token signing secret
//	API_PORT       port to listen on (all interfaces)
//	PASSWORD_HASH  bcrypt | argon2id
//	LOG_LEVEL      debug | info | warn | error
//	LOG_FORMAT     json | text | zerolog
func parseEnv(config *Config) {
	_ = godotenv.Load(envFile)

	if v, ok := os.LookupEnv("DATABASE_URL"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("JWT_SECRET"); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv("API_PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + v
	}
	if v, ok := os.LookupEnv("PASSWORD_HASH"); ok && v != "" {
		config.PasswordHashAlgorithm = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok && v != "" {
		config.LogLevel = v
	}
	if v, ok := os.LookupEnv("LOG_FORMAT"); ok && v != "" {
		config.LogFormat = v
	}
}
