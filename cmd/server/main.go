package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	catalogapp "github.com/wholesale/backend/internal/application/catalog"
	orderingapp "github.com/wholesale/backend/internal/application/ordering"
	partnerapp "github.com/wholesale/backend/internal/application/partner"
	"github.com/wholesale/backend/internal/infrastructure/auth"
	"github.com/wholesale/backend/internal/infrastructure/cache"
	"github.com/wholesale/backend/internal/infrastructure/config"
	"github.com/wholesale/backend/internal/infrastructure/event"
	"github.com/wholesale/backend/internal/infrastructure/logger"
	"github.com/wholesale/backend/internal/infrastructure/persistence"
	"github.com/wholesale/backend/internal/infrastructure/sheet"
	"github.com/wholesale/backend/internal/interfaces/http/handler"
	"github.com/wholesale/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting wholesale backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Redis backs the accessible-catalog cache; without it the cache
	// degrades to in-process memory
	var redisClient *redis.Client
	var accessCache catalogapp.AccessCache
	redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("Redis unreachable, using in-memory access cache", zap.Error(err))
		redisClient = nil
		accessCache = cache.NewMemoryAccessCache(cfg.Access.CacheTTL)
	} else {
		accessCache = cache.NewRedisAccessCache(redisClient, cfg.Access.CacheTTL)
	}

	// Repositories
	priorityRepo := persistence.NewGormPriorityRepository(db.DB)
	retailerRepo := persistence.NewGormRetailerRepository(db.DB)
	catalogRepo := persistence.NewGormCatalogRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	poRepo := persistence.NewGormPurchaseOrderRepository(db.DB)

	// Domain events feed the audit log
	eventBus := event.NewInProcessBus(log)
	eventBus.Subscribe(event.NewAuditLogHandler(log))

	// Application services
	accessService := catalogapp.NewAccessService(catalogRepo, retailerRepo, accessCache)
	priorityService := partnerapp.NewPriorityService(priorityRepo, retailerRepo, accessService)
	retailerService := partnerapp.NewRetailerService(retailerRepo, priorityRepo, accessService)
	sheetSource := sheet.NewHTTPSource(cfg.Sheet.URLs, cfg.Sheet.FetchTimeout)
	syncService := partnerapp.NewSyncService(retailerRepo, priorityRepo, sheetSource, accessService)
	catalogService := catalogapp.NewCatalogService(catalogRepo, productRepo, accessService)
	productService := catalogapp.NewProductService(productRepo, catalogRepo, accessService)
	orderService := orderingapp.NewOrderService(orderRepo, retailerRepo, productRepo, accessService,
		eventBus, cfg.Tax.GSTRate, cfg.Tax.GSTByDefault)
	poService := orderingapp.NewPurchaseOrderService(poRepo, orderRepo, eventBus, orderingapp.SellerInfo{
		BusinessName: cfg.Seller.BusinessName,
		Address:      cfg.Seller.Address,
		Phone:        cfg.Seller.Phone,
		Email:        cfg.Seller.Email,
		GSTNumber:    cfg.Seller.GSTNumber,
	})

	jwtService := auth.NewJWTService(cfg.JWT)

	base := handler.NewBaseHandler(log)
	handlers := router.Handlers{
		System:        handler.NewSystemHandler(base, db, redisClient, cfg.App.Name, cfg.App.Env),
		Priority:      handler.NewPriorityHandler(base, priorityService),
		Retailer:      handler.NewRetailerHandler(base, retailerService),
		Sync:          handler.NewSyncHandler(base, syncService),
		Catalog:       handler.NewCatalogHandler(base, catalogService),
		Product:       handler.NewProductHandler(base, productService),
		Order:         handler.NewOrderHandler(base, orderService),
		PurchaseOrder: handler.NewPurchaseOrderHandler(base, poService),
	}

	engine := router.New(cfg, log, jwtService, handlers)

	// Periodic directory sync when enabled; every run logs its report
	syncCtx, stopSync := context.WithCancel(context.Background())
	defer stopSync()
	if cfg.Sheet.AutoSync {
		go runPeriodicSync(syncCtx, syncService, cfg.Sheet.SyncInterval, log)
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited gracefully")
}

func runPeriodicSync(ctx context.Context, syncService *partnerapp.SyncService, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			report, err := syncService.Sync(ctx)
			if err != nil {
				log.Error("Scheduled directory sync failed", zap.Error(err))
				continue
			}
			log.Info("Scheduled directory sync finished",
				zap.Int("created", report.TotalCreated),
				zap.Int("updated", report.TotalUpdated),
				zap.Int("removed", report.TotalRemoved),
				zap.Int("source_errors", len(report.SourceErrors)),
			)
		}
	}
}
