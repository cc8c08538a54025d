package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultPromoSalt - Salt mặc định cho dev; production phải đổi
const DefaultPromoSalt = "default-salt"

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config chứa toàn bộ application configuration, populate từ environment variables
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Catalog   CatalogConfig
	Queue     QueueConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	LogLevel    string

	// TrustedProxies - IP/CIDR của reverse proxy; chỉ khi đó X-Forwarded-For mới được tin
	TrustedProxies []string
}

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	Database    string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  int // minutes
	RefreshTokenExpiry int // hours
}

// CatalogConfig - Listing engine
type CatalogConfig struct {
	PromoSalt    string
	DefaultLimit int
	MaxLimit     int
	ListCacheTTL time.Duration
	StoreDriver  string // postgres | memory
	CacheDriver  string // redis | memory | none
}

type QueueConfig struct {
	Enabled     bool
	Concurrency int
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "Marketplace Catalog API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "8080"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			TrustedProxies: getEnvList("TRUSTED_PROXIES"),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Database:    getEnv("DB_NAME", "marketplace"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry:  getEnvInt("JWT_ACCESS_EXPIRY", 15),  // 15 minutes
			RefreshTokenExpiry: getEnvInt("JWT_REFRESH_EXPIRY", 72), // 3 days
		},
		Catalog: CatalogConfig{
			PromoSalt:    getEnv("PROMO_SALT", DefaultPromoSalt),
			DefaultLimit: getEnvInt("CATALOG_DEFAULT_LIMIT", 20),
			MaxLimit:     getEnvInt("CATALOG_MAX_LIMIT", 100),
			ListCacheTTL: getEnvDuration("CATALOG_LIST_CACHE_TTL", 30*time.Second),
			StoreDriver:  strings.ToLower(getEnv("STORE_DRIVER", "postgres")),
			CacheDriver:  strings.ToLower(getEnv("CACHE_DRIVER", "redis")),
		},
		Queue: QueueConfig{
			Enabled:     getEnvBool("QUEUE_ENABLED", true),
			Concurrency: getEnvInt("QUEUE_CONCURRENCY", 5),
		},
		RateLimit: RateLimitConfig{
			Enabled: getEnvBool("RATE_LIMIT_ENABLED", true),
			RPS:     getEnvFloat("RATE_LIMIT_RPS", 20),
			Burst:   getEnvInt("RATE_LIMIT_BURST", 40),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.Catalog.DefaultLimit < 1 {
		return fmt.Errorf("CATALOG_DEFAULT_LIMIT must be >= 1")
	}
	if c.Catalog.MaxLimit < c.Catalog.DefaultLimit {
		return fmt.Errorf("CATALOG_MAX_LIMIT must be >= CATALOG_DEFAULT_LIMIT")
	}
	if c.Catalog.ListCacheTTL < 0 {
		return fmt.Errorf("CATALOG_LIST_CACHE_TTL must not be negative")
	}
	switch c.Catalog.StoreDriver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("STORE_DRIVER must be postgres or memory, got %q", c.Catalog.StoreDriver)
	}
	switch c.Catalog.CacheDriver {
	case "redis", "memory", "none":
	default:
		return fmt.Errorf("CACHE_DRIVER must be redis, memory or none, got %q", c.Catalog.CacheDriver)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	for _, proxy := range c.App.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", proxy)
			}
		}
	}

	// Worker là process riêng: phải dùng chung store và cache với API
	if c.Queue.Enabled {
		if c.Catalog.StoreDriver == "memory" {
			return fmt.Errorf("QUEUE_ENABLED requires STORE_DRIVER=postgres (worker cannot see an in-memory store)")
		}
		if c.Catalog.CacheDriver == "memory" {
			return fmt.Errorf("QUEUE_ENABLED requires CACHE_DRIVER=redis or none (worker cannot invalidate an in-memory cache)")
		}
	}

	// Production environment phải có secret thật
	if c.IsProduction() {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Catalog.StoreDriver == "postgres" && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Catalog.PromoSalt == DefaultPromoSalt {
			return fmt.Errorf("PROMO_SALT must be set in production")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvList - "a, b,,c" => [a b c]; rỗng => nil
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
