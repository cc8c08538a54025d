// cmd/worker/main.go
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"marketplace-backend/internal/config"
	"marketplace-backend/pkg/container"
	"marketplace-backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Config] Invalid configuration: %v", err)
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	if !cfg.Queue.Enabled {
		log.Fatalf("[Config] QUEUE_ENABLED=false, worker has nothing to consume")
	}

	c, err := container.New(cfg)
	if err != nil {
		log.Fatalf("[Container] Failed to initialize: %v", err)
	}
	defer c.Cleanup()

	handlers := newHandlerRegistry(c)
	srv := setupAsynqServer(c, handlers)

	if err := startServices(c); err != nil {
		log.Fatalf("[Startup] Health check failed: %v", err)
	}

	waitForShutdown(srv)
}

func waitForShutdown(srv *asynqServer) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("[Shutdown] Gracefully stopping...")
	srv.Shutdown()
	log.Println("[Shutdown] ✓ Stopped")
}
