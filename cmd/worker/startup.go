// cmd/worker/startup.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"marketplace-backend/pkg/container"

	"github.com/redis/go-redis/v9"
)

// HealthChecker performs startup health checks
type HealthChecker struct {
	redisClient *redis.Client
	container   *container.Container
}

// startServices performs health checks and starts the health endpoint
func startServices(c *container.Container) error {
	log.Println("============================================")
	log.Println("🚀 Catalog Worker Starting...")
	log.Println("============================================")

	opt := c.RedisConnOpt()
	checker := &HealthChecker{
		redisClient: redis.NewClient(&redis.Options{
			Addr:     opt.Addr,
			Password: opt.Password,
			DB:       opt.DB,
		}),
		container: c,
	}
	defer checker.redisClient.Close()

	if err := checker.checkAll(); err != nil {
		return err
	}

	go startHealthCheckServer(getEnv("WORKER_HEALTH_ADDR", ":9999"))
	return nil
}

// checkAll runs all health checks
func (h *HealthChecker) checkAll() error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"Redis Connection", h.checkRedis},
		{"Product Store", h.checkStore},
	}

	for _, check := range checks {
		log.Printf("⏳ Checking %s...", check.name)
		if err := check.fn(); err != nil {
			log.Printf("❌ %s: %v", check.name, err)
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Printf("✓ %s: OK", check.name)
	}
	return nil
}

func (h *HealthChecker) checkRedis() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.redisClient.Ping(ctx).Err()
}

// checkStore - worker ở memory store thì không thấy data của API
func (h *HealthChecker) checkStore() error {
	if h.container.DB == nil {
		log.Println("⚠️  Worker is running on the in-memory store")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.container.DB.Ping(ctx)
}

func startHealthCheckServer(addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"UP","service":"catalog-worker"}`))
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"READY"}`))
	})

	log.Printf("[Health] Starting health check server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("[Health] Failed to start: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
