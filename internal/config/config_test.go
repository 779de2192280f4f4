package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, "minute", cfg.PricingMode)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.False(t, cfg.NATS.Enabled)
	assert.False(t, cfg.SearchEnabled)
	assert.Equal(t, "parkify-bookings", cfg.Elasticsearch.Index)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("PRICING_MODE", "hour")
	t.Setenv("SESSION_TTL_MIN", "30")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("NATS_ENABLED", "true")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("ELASTICSEARCH_TIMEOUT", "5s")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres", cfg.StorageBackend)
	assert.Equal(t, "hour", cfg.PricingMode)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.True(t, cfg.NATS.Enabled)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, 5*time.Second, cfg.Elasticsearch.Timeout)
}

func TestMalformedNumbersFallBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")
	t.Setenv("SEARCH_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.False(t, cfg.SearchEnabled)
}
