package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "https://api-developer-sandbox.zocdoc.com", cfg.Vendor.APIBaseURL)
	assert.Equal(t, "external.appointment.read", cfg.Vendor.Scope)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("VENDOR_API_BASE_URL", "https://vendor.test")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://vendor.test", cfg.Vendor.APIBaseURL)
	assert.Equal(t, "cache.internal", cfg.Redis.Host)
	assert.True(t, cfg.OTEL.Enabled)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("OTEL_ENABLED", "maybe")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestAddrHelpers(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 3001},
		Redis:  RedisConfig{Host: "localhost", Port: 6379},
	}

	assert.Equal(t, "0.0.0.0:3001", cfg.Server.ServerAddr())
	assert.Equal(t, "localhost:6379", cfg.Redis.RedisAddr())
}
