package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("ENV_PATH", "testdata/missing.env")
	t.Setenv("APP_ENV", "test")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("USE_HTTP2", "")
		t.Setenv("CORS_ORIGINS", "")
		t.Setenv("SHUTDOWN_TIMEOUT", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
		assert.False(t, cfg.UseHttp2)
		assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
	})

	t.Run("from env", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("USE_HTTP2", "true")
		t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
		t.Setenv("SHUTDOWN_TIMEOUT", "3s")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, "9090", cfg.Port)
		assert.True(t, cfg.UseHttp2)
		assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CorsOrigins)
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv("PORT", "70000")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "between 1 and 65535")

		t.Setenv("PORT", "http")
		_, err = LoadConfig()
		assert.ErrorContains(t, err, "must be a number")
	})

	t.Run("invalid shutdown timeout", func(t *testing.T) {
		t.Setenv("PORT", "")
		t.Setenv("SHUTDOWN_TIMEOUT", "soon")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "SHUTDOWN_TIMEOUT")

		t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
		_, err = LoadConfig()
		assert.ErrorContains(t, err, "SHUTDOWN_TIMEOUT")
	})
}
