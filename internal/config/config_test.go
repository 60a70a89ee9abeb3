package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jleuth/future-search/internal/config"
)

const testSecretKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FUTURESEARCH_SECRET_KEY", testSecretKey)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddr)
	assert.Equal(t, "futuresearch.db", cfg.DBPath)
	assert.Equal(t, "https://api.perplexity.ai", cfg.ProviderURL)
	assert.Equal(t, "30s", cfg.ProviderTimeout.String())
	assert.Equal(t, "https://timeapi.io", cfg.TimeAPIURL)
	assert.Equal(t, "3s", cfg.TimeAPITimeout.String())
	assert.Len(t, cfg.SecretKey, 32)
	assert.Equal(t, byte(0x00), cfg.SecretKey[0])
	assert.Equal(t, byte(0x1f), cfg.SecretKey[31])
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FUTURESEARCH_SECRET_KEY", testSecretKey)
	t.Setenv("FUTURESEARCH_LISTEN_ADDR", "0.0.0.0:9090")
	t.Setenv("FUTURESEARCH_DB_PATH", "/tmp/test.db")
	t.Setenv("FUTURESEARCH_PROVIDER_URL", "http://localhost:8081")
	t.Setenv("FUTURESEARCH_PROVIDER_TIMEOUT", "5s")
	t.Setenv("FUTURESEARCH_TIME_API_URL", "http://localhost:8082")
	t.Setenv("FUTURESEARCH_TIME_API_TIMEOUT", "500ms")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "http://localhost:8081", cfg.ProviderURL)
	assert.Equal(t, "5s", cfg.ProviderTimeout.String())
	assert.Equal(t, "http://localhost:8082", cfg.TimeAPIURL)
	assert.Equal(t, "500ms", cfg.TimeAPITimeout.String())
}

func TestLoadSecretKeyValidation(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		t.Setenv("FUTURESEARCH_SECRET_KEY", "")
		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FUTURESEARCH_SECRET_KEY is required")
	})

	t.Run("not hex", func(t *testing.T) {
		t.Setenv("FUTURESEARCH_SECRET_KEY", strings.Repeat("zz", 32))
		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not valid hex")
	})

	t.Run("wrong length", func(t *testing.T) {
		t.Setenv("FUTURESEARCH_SECRET_KEY", "deadbeef")
		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "32 bytes")
	})
}

func TestLoadInvalidTimeout(t *testing.T) {
	t.Setenv("FUTURESEARCH_SECRET_KEY", testSecretKey)
	t.Setenv("FUTURESEARCH_PROVIDER_TIMEOUT", "soon")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FUTURESEARCH_PROVIDER_TIMEOUT")
}
