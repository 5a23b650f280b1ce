package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the coursehub CLI.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	TokenFile      string
}

// LoadDefaults populates c with sensible defaults. The token lives under the
// user's home directory, or the working directory if that is unknown.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.TokenFile = defaultTokenFile()
}

func defaultTokenFile() string {
	base, err := os.UserHomeDir()
	if err != nil || base == "" {
		base = "."
	}
	return filepath.Join(base, ".coursehub", "token")
}

// LoadConfig applies defaults, then the JSON file, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
