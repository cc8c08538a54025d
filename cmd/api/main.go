package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"marketplace-backend/internal/config"
	"marketplace-backend/pkg/container"
	"marketplace-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env chỉ dùng cho local; production đọc system env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	appContainer, err := container.New(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize container: %v", err)
	}
	defer appContainer.Cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := Serve(ctx, appContainer); err != nil {
		logger.Error("api server stopped with error", err)
	}
}
