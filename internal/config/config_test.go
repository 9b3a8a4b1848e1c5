package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, err := Read()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMongo, cfg.StoreDriver)
	assert.Equal(t, "INVISIODb", cfg.MongoDB)
	assert.Equal(t, time.Hour, cfg.AccessTTL)
	assert.Equal(t, 5*time.Minute, cfg.OllamaTimeout)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.False(t, cfg.DenylistTTLIndex)
}

func TestRead_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Read()
	require.Error(t, err)
}

func TestRead_UnknownStoreDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := Read()
	require.Error(t, err)
}

func TestRead_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("OLLAMA_MODEL", "mistral:latest")

	cfg, err := Read()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, "mistral:latest", cfg.OllamaModel)
}

func TestLoadRateLimitConfig_Normalizes(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "10s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	rl, err := LoadRateLimitConfig()
	require.NoError(t, err)
	assert.Equal(t, 1, rl.Capacity)
	assert.Equal(t, 50*time.Second, rl.TTL)
}

func TestLoadCacheConfig_Methods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head ,")

	cc, err := LoadCacheConfig()
	require.NoError(t, err)
	assert.True(t, cc.Cacheable("GET"))
	assert.True(t, cc.Cacheable("head"))
	assert.False(t, cc.Cacheable("POST"))
}

func TestRedisConfig_Address(t *testing.T) {
	assert.Equal(t, "localhost:6379", RedisConfig{Addr: "localhost:6379"}.Address())
	assert.Equal(t, "redis:6380", RedisConfig{Host: "redis", Port: "6380", Addr: "x:1"}.Address())
}
