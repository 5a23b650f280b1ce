package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/coursehub/internal/flagx"
	"github.com/dmitrijs2005/coursehub/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file.
// Durations accept both "5s" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	PasswordHashAlgorithm string         `json:"password_hash_algorithm"`
	LogLevel              string         `json:"log_level"`
	LogFormat             string         `json:"log_format"`
	ShutdownTimeout       timex.Duration `json:"shutdown_timeout"`
	ReadHeaderTimeout     timex.Duration `json:"read_header_timeout"`
}

// parseJson loads the file named by -c / -config, if any, and copies every
// non-empty value into config. Unreadable or invalid files panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIfNotEmpty(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIfNotEmpty(&config.DatabaseDSN, c.DatabaseDSN)
	setIfNotEmpty(&config.SecretKey, c.SecretKey)
	setIfNotEmpty(&config.PasswordHashAlgorithm, c.PasswordHashAlgorithm)
	setIfNotEmpty(&config.LogLevel, c.LogLevel)
	setIfNotEmpty(&config.LogFormat, c.LogFormat)
	if c.ShutdownTimeout.Duration > 0 {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
	if c.ReadHeaderTimeout.Duration > 0 {
		config.ReadHeaderTimeout = c.ReadHeaderTimeout.Duration
	}
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
