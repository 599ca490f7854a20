package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "JWT_SECRET", "DB_DRIVER", "DATABASE_URL",
		"AUTH_TOKEN_TTL", "COMPARISON_THRESHOLDS",
	} {
		if value, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, value) })
		}
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	clearEnv(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	yamlContent := `
port: "9000"
env: "test"
auth:
  token_ttl: 45m
database:
  driver: sqlite
comparison:
  thresholds:
    Mo: 12.5
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "9100")

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port, "env overrides yaml")
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, 45*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "alloylab.db", cfg.Database.DSN())
	assert.Equal(t, map[string]float64{"Mo": 12.5}, cfg.Comparison.Thresholds)
}

func TestLoad_WithoutFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 30*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, DefaultThresholds(), cfg.Comparison.Thresholds)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	cfg := &Config{
		Auth:     AuthConfig{JWTSecret: "s", TokenTTL: time.Minute},
		Database: DatabaseConfig{Driver: "mysql"},
	}
	assert.ErrorContains(t, cfg.Validate(), "unsupported database driver")
}

func TestValidate_RejectsNegativeThreshold(t *testing.T) {
	cfg := &Config{
		Auth:       AuthConfig{JWTSecret: "s", TokenTTL: time.Minute},
		Database:   DatabaseConfig{Driver: DriverSQLite},
		Comparison: ComparisonConfig{Thresholds: map[string]float64{"Cr": -1}},
	}
	assert.ErrorContains(t, cfg.Validate(), "must not be negative")
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ALLOYLAB_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("ALLOYLAB_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("ALLOYLAB_TEST_KEY_MISSING", "fallback"))
}

func TestRead_SkipsValidation(t *testing.T) {
	clearEnv(t)

	cfg, err := Read("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, DefaultThresholds(), cfg.Comparison.Thresholds)
	assert.Error(t, cfg.Validate())
}
