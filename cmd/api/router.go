package main

import (
	"context"
	"net/http"
	"time"

	"marketplace-backend/internal/domains/product/model"
	"marketplace-backend/internal/infrastructure/metrics"
	"marketplace-backend/internal/shared/middleware"
	"marketplace-backend/pkg/container"
	"marketplace-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	// gin mặc định tin mọi proxy; chỉ tin danh sách cấu hình (rỗng => dùng RemoteAddr)
	if err := router.SetTrustedProxies(c.Config.App.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies, falling back to none", err)
		_ = router.SetTrustedProxies(nil)
	}

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.GET("/metrics", gin.WrapH(metrics.Handler(c.Registry)))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCategoryRoutes(v1, c)
		setupProductRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// CATEGORY ROUTES
// ========================================
func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/categories", c.CategoryHandler.ListActive)

	admin := v1.Group("/admin/categories")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.POST("", c.CategoryHandler.Create)
		admin.PATCH("/:id/active", c.CategoryHandler.SetActive)
	}
}

// ========================================
// PRODUCT ROUTES
// ========================================
func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")

	// Public listing: rate limit theo IP
	public := products.Group("")
	if c.Config.RateLimit.Enabled {
		public.Use(middleware.RateLimit(c.Config.RateLimit.RPS, c.Config.RateLimit.Burst))
	}
	{
		public.GET("", c.ProductHandler.ListProducts)
		public.GET("/by-seller/:sellerId", c.ProductHandler.ListBySeller)
		public.GET("/by-category/:categorySlug", c.ProductHandler.ListByCategory)
		public.GET("/:id", c.ProductHandler.GetProduct)
	}

	// Seller / admin
	authed := products.Group("")
	authed.Use(
		middleware.AuthMiddleware(c.JWTManager),
		middleware.RequireRoles(model.RoleSeller, model.RoleAdmin),
	)
	{
		authed.POST("", c.ProductHandler.CreateProduct)
		authed.PATCH("/:id", c.ProductHandler.UpdateProduct)
		authed.DELETE("/:id", c.ProductHandler.DeleteProduct)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin/products")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.POST("/reshuffle", c.ProductHandler.Reshuffle)
		admin.GET("/export", c.ProductHandler.Export)
	}
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		services := appCtx.HealthCheck(ctx)
		status, code := "ok", http.StatusOK
		if services["database"] == "down" {
			status, code = "degraded", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
		})
	}
}
