package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{"DATABASE_URL", "JWT_SECRET", "API_PORT", "PASSWORD_HASH", "LOG_LEVEL", "LOG_FORMAT"}

// isolateEnv unsets every variable parseEnv reads and points envFile at a
// path that does not exist. Everything is restored on cleanup.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	orig := envFile
	envFile = filepath.Join(t.TempDir(), "missing.env")
	t.Cleanup(func() { envFile = orig })
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"testbin"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "", c.DatabaseDSN)
	assert.Equal(t, "", c.SecretKey)
	assert.Equal(t, "bcrypt", c.PasswordHashAlgorithm)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, c.ReadHeaderTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{name: "missing secret", cfg: Config{DatabaseDSN: "postgres://x"}, want: ErrMissingSecretKey},
		{name: "missing dsn", cfg: Config{SecretKey: "k"}, want: ErrMissingDatabaseDSN},
		{name: "both missing reports secret first", cfg: Config{}, want: ErrMissingSecretKey},
		{name: "ok", cfg: Config{SecretKey: "k", DatabaseDSN: "postgres://x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadConfig_DefaultsOnly_FailsValidation(t *testing.T) {
	isolateEnv(t)
	withArgs(t)

	c := LoadConfig()
	require.NotNil(t, c)

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.ErrorIs(t, c.Validate(), ErrMissingSecretKey)
}

func TestLoadConfig_Precedence(t *testing.T) {
	isolateEnv(t)

	path := writeTempJSON(t, "", "", map[string]any{
		"endpoint_addr_http": ":7000",
		"database_dsn":       "from-json",
		"secret_key":         "json-secret",
		"log_level":          "warn",
	})

	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("API_PORT", "9000")

	withArgs(t, "-c", path, "-d", "from-flag")

	c := LoadConfig()

	assert.Equal(t, ":9000", c.EndpointAddrHTTP, "env beats json")
	assert.Equal(t, "env-secret", c.SecretKey, "env beats json")
	assert.Equal(t, "from-flag", c.DatabaseDSN, "flag beats json")
	assert.Equal(t, "warn", c.LogLevel, "json beats defaults")
	assert.Equal(t, "json", c.LogFormat, "default kept")
	assert.NoError(t, c.Validate())
}
