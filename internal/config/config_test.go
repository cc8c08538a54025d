package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPromoSalt, cfg.Catalog.PromoSalt)
	assert.Equal(t, 20, cfg.Catalog.DefaultLimit)
	assert.Equal(t, 100, cfg.Catalog.MaxLimit)
	assert.Equal(t, 30*time.Second, cfg.Catalog.ListCacheTTL)
	assert.Equal(t, "postgres", cfg.Catalog.StoreDriver)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PROMO_SALT", "spring-2025")
	t.Setenv("CATALOG_DEFAULT_LIMIT", "10")
	t.Setenv("CATALOG_LIST_CACHE_TTL", "2m")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("QUEUE_ENABLED", "false")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "spring-2025", cfg.Catalog.PromoSalt)
	assert.Equal(t, 10, cfg.Catalog.DefaultLimit)
	assert.Equal(t, 2*time.Minute, cfg.Catalog.ListCacheTTL)
	assert.Equal(t, "memory", cfg.Catalog.StoreDriver)
	assert.False(t, cfg.Queue.Enabled)
	assert.Equal(t, 2.5, cfg.RateLimit.RPS)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("CATALOG_MAX_LIMIT", "lots")
	t.Setenv("CATALOG_LIST_CACHE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Catalog.MaxLimit)
	assert.Equal(t, 30*time.Second, cfg.Catalog.ListCacheTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:       AppConfig{Environment: "production"},
			Database:  DatabaseConfig{Password: "secret"},
			JWT:       JWTConfig{Secret: "real-secret"},
			Catalog:   CatalogConfig{PromoSalt: "rotated", DefaultLimit: 20, MaxLimit: 100, StoreDriver: "postgres", CacheDriver: "redis"},
			RateLimit: RateLimitConfig{Enabled: true, RPS: 10, Burst: 20},
		}
	}
	require.NoError(t, valid().Validate())

	tests := map[string]func(*Config){
		"default jwt secret":   func(c *Config) { c.JWT.Secret = defaultJWTSecret },
		"missing db password":  func(c *Config) { c.Database.Password = "" },
		"default promo salt":   func(c *Config) { c.Catalog.PromoSalt = DefaultPromoSalt },
		"zero default limit":   func(c *Config) { c.Catalog.DefaultLimit = 0 },
		"max below default":    func(c *Config) { c.Catalog.MaxLimit = 5 },
		"unknown store driver": func(c *Config) { c.Catalog.StoreDriver = "mongo" },
		"unknown cache driver": func(c *Config) { c.Catalog.CacheDriver = "memcached" },
		"bad rate limit":       func(c *Config) { c.RateLimit.Burst = 0 },
		"bad trusted proxy":    func(c *Config) { c.App.TrustedProxies = []string{"10.0.0.0/8", "proxy.local"} },
		"queue with memory store": func(c *Config) {
			c.Queue.Enabled = true
			c.Catalog.StoreDriver = "memory"
		},
		"queue with memory cache": func(c *Config) {
			c.Queue.Enabled = true
			c.Catalog.CacheDriver = "memory"
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	// memory store không cần DB password
	cfg := valid()
	cfg.Catalog.StoreDriver = "memory"
	cfg.Database.Password = ""
	assert.NoError(t, cfg.Validate())

	// queue + postgres + redis/none là cấu hình hợp lệ
	cfg = valid()
	cfg.Queue.Enabled = true
	cfg.App.TrustedProxies = []string{"10.0.0.0/8", "192.0.2.1"}
	assert.NoError(t, cfg.Validate())
	cfg.Catalog.CacheDriver = "none"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_TrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8, ,192.0.2.1 ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.1"}, cfg.App.TrustedProxies)
}

func TestLoad_RejectsQueueWithMemoryStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("QUEUE_ENABLED", "true")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_HOST", "pg")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, "pg", cfg.Host)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)

	t.Setenv("DB_PORT", "not-a-port")
	_, err = LoadDatabaseConfig()
	assert.Error(t, err)
}
