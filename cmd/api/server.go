package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"marketplace-backend/pkg/container"
	"marketplace-backend/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// Serve - chạy HTTP server tới khi ctx bị huỷ rồi shutdown có timeout
func Serve(ctx context.Context, c *container.Container) error {
	port := c.Config.App.Port
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           SetupRouter(c),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second, // export xlsx
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("catalog api listening", map[string]interface{}{
			"port":   port,
			"env":    c.Config.App.Environment,
			"store":  c.Config.Catalog.StoreDriver,
			"cache":  c.Config.Catalog.CacheDriver,
			"queued": c.Queue != nil,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down api server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
