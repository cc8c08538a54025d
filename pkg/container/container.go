package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"marketplace-backend/internal/config"
	"marketplace-backend/internal/domains/category"
	categoryHandler "marketplace-backend/internal/domains/category/handler"
	categoryRepo "marketplace-backend/internal/domains/category/repository"
	categoryService "marketplace-backend/internal/domains/category/service"
	productHandler "marketplace-backend/internal/domains/product/handler"
	"marketplace-backend/internal/domains/product/ranking"
	productRepo "marketplace-backend/internal/domains/product/repository"
	productService "marketplace-backend/internal/domains/product/service"
	infraCache "marketplace-backend/internal/infrastructure/cache"
	"marketplace-backend/internal/infrastructure/database"
	"marketplace-backend/internal/infrastructure/metrics"
	"marketplace-backend/internal/infrastructure/queue"
	"marketplace-backend/pkg/cache"
	"marketplace-backend/pkg/jwt"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
type Container struct {
	// INFRASTRUCTURE
	Config     *config.Config
	DB         *database.PostgresDB   // nil khi STORE_DRIVER=memory
	Redis      *infraCache.RedisClient // nil khi không dùng redis cache
	Cache      cache.Cache             // nil => listing không cache
	JWTManager *jwt.Manager
	Registry   *prometheus.Registry
	Metrics    *metrics.Collector
	Queue      *queue.Client // nil khi QUEUE_ENABLED=false

	// REPOSITORIES
	CategoryRepo category.CategoryRepository
	ProductRepo  productRepo.RepositoryInterface

	// SERVICES
	CategoryService category.CategoryService
	ProductService  *productService.ProductService

	// HANDLERS
	CategoryHandler *categoryHandler.CategoryHandler
	ProductHandler  *productHandler.Handler
}

// New - Thứ tự: infrastructure -> repositories -> services -> handlers
func New(cfg *config.Config) (*Container, error) {
	log.Printf("[Container] Initializing (env: %s, store: %s, cache: %s)",
		cfg.App.Environment, cfg.Catalog.StoreDriver, cfg.Catalog.CacheDriver)

	c := &Container{
		Config:     cfg,
		JWTManager: jwt.NewManagerWithTTL(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute, time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour),
		Registry:   prometheus.NewRegistry(),
	}
	c.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	c.Metrics = metrics.NewCollector(c.Registry)

	if err := c.initDatabase(); err != nil {
		c.Cleanup()
		return nil, err
	}
	c.initCache()
	c.initQueue()
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("[Container] ✓ Initialized")
	return c, nil
}

// ========================================
// INFRASTRUCTURE
// ========================================

func (c *Container) initDatabase() error {
	if c.Config.Catalog.StoreDriver != "postgres" {
		log.Println("[Container] Using in-memory product store")
		return nil
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	if c.Config.Database.AutoMigrate {
		if err := database.RunMigrations(dbConfig.URL()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Println("[Container] ✓ Migrations applied")
	}

	db := database.NewPostgresDB(dbConfig)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	metrics.RegisterDBPool(c.Registry, func() (int32, int32, int32, int32) {
		s := db.Stats()
		return s.AcquiredConns, s.IdleConns, s.TotalConns, s.MaxConns
	})
	log.Println("[Container] ✓ Database connected")
	return nil
}

// initCache - Redis lỗi không critical: chạy tiếp không cache
func (c *Container) initCache() {
	switch c.Config.Catalog.CacheDriver {
	case "memory":
		c.Cache = infraCache.NewMemoryCache()
		log.Println("[Container] Using in-process listing cache")
	case "redis":
		rc := infraCache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rc.Connect(ctx); err != nil {
			log.Printf("[Container] ⚠️ Redis unavailable, listing cache disabled: %v", err)
			_ = rc.Close()
			return
		}
		c.Redis = rc
		c.Cache = infraCache.NewRedisCache(rc.Client)
	default:
		log.Println("[Container] Listing cache disabled")
	}
}

func (c *Container) initQueue() {
	if !c.Config.Queue.Enabled {
		log.Println("[Container] Queue disabled, reshuffle runs inline")
		return
	}
	c.Queue = queue.NewClient(c.RedisConnOpt())
}

// RedisConnOpt - Kết nối asynq dùng chung config Redis
func (c *Container) RedisConnOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

// ========================================
// DOMAINS
// ========================================

func (c *Container) initRepositories() {
	if c.DB != nil {
		c.CategoryRepo = categoryRepo.NewPostgresRepository(c.DB.Pool)
		c.ProductRepo = productRepo.NewPostgresRepository(c.DB.Pool)
		return
	}
	c.CategoryRepo = categoryRepo.NewMemoryRepository()
	c.ProductRepo = productRepo.NewMemoryRepository()
}

func (c *Container) initServices() {
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo)
	c.ProductService = productService.NewService(c.ProductRepo, c.CategoryService, productService.Options{
		Salt:         ranking.Salt(c.Config.Catalog.PromoSalt),
		Cache:        c.Cache,
		ListCacheTTL: c.Config.Catalog.ListCacheTTL,
		Metrics:      c.Metrics,
	})
}

func (c *Container) initHandlers() {
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)

	// nil *queue.Client không được lọt vào interface
	var tasks productHandler.TaskEnqueuer
	if c.Queue != nil {
		tasks = c.Queue
	}
	c.ProductHandler = productHandler.NewHandler(c.ProductService, tasks, c.Config.Catalog.DefaultLimit, c.Config.Catalog.MaxLimit)
}

// ========================================
// HEALTH / CLEANUP
// ========================================

// HealthCheck - DB bắt buộc, cache chỉ báo trạng thái
func (c *Container) HealthCheck(ctx context.Context) map[string]string {
	status := map[string]string{"database": "memory", "cache": "disabled"}
	if c.DB != nil {
		status["database"] = "ok"
		if err := c.DB.Ping(ctx); err != nil {
			status["database"] = "down"
		}
	}
	if c.Cache != nil {
		status["cache"] = "ok"
		if err := c.Cache.Ping(ctx); err != nil {
			status["cache"] = "down"
		}
	}
	return status
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Printf("[Container] ⚠️ Failed to close queue client: %v", err)
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("[Container] ⚠️ Failed to close Redis: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Println("[Container] ✓ Cleanup completed")
}
