package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "environment-secret-of-32-chars!!!"

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TASKNEST_DATABASE_URL", "postgres://localhost:5432/tasknest_test")
	t.Setenv("TASKNEST_AUTH_JWT_SECRET", testJWTSecret)
	t.Setenv("TASKNEST_SERVER_PORT", "9090")
	t.Setenv("TASKNEST_SERVER_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "postgres://localhost:5432/tasknest_test", cfg.Database.URL)
	assert.Equal(t, testJWTSecret, cfg.Auth.JWTSecret)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TASKNEST_DATABASE_URL", "postgres://localhost:5432/tasknest_test")
	t.Setenv("TASKNEST_AUTH_JWT_SECRET", testJWTSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 10080, cfg.Auth.RefreshTokenLifetimeMinutes)
}

func TestLoadRejectsShortJWTSecret(t *testing.T) {
	t.Setenv("TASKNEST_DATABASE_URL", "postgres://localhost:5432/tasknest_test")
	t.Setenv("TASKNEST_AUTH_JWT_SECRET", "short")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	t.Setenv("TASKNEST_DATABASE_URL", "postgres://localhost:5432/tasknest_test")
	t.Setenv("TASKNEST_AUTH_JWT_SECRET", testJWTSecret)
	t.Setenv("TASKNEST_SERVER_LOG_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}
