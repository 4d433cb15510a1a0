package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "host=localhost dbname=royalcert")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("JWT_SECRET", "jwt-s3cret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "")
	t.Setenv("TOKEN_TTL_MINUTES", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("CACHE_TTL_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.IsProd())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("TOKEN_TTL_MINUTES", "30")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadMissingRequired(t *testing.T) {
	cases := []string{"DB_DSN", "SESSION_SECRET", "JWT_SECRET"}
	for _, key := range cases {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoadRejectsNonPositiveTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("TOKEN_TTL_MINUTES", "0")

	_, err := Load()
	assert.Error(t, err)
}
