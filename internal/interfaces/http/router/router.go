package router

import (
	"github.com/gin-gonic/gin"
	"github.com/wholesale/backend/internal/infrastructure/auth"
	"github.com/wholesale/backend/internal/infrastructure/config"
	"github.com/wholesale/backend/internal/infrastructure/logger"
	"github.com/wholesale/backend/internal/interfaces/http/handler"
	"github.com/wholesale/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every handler the router wires up.
type Handlers struct {
	System        *handler.SystemHandler
	Priority      *handler.PriorityHandler
	Retailer      *handler.RetailerHandler
	Sync          *handler.SyncHandler
	Catalog       *handler.CatalogHandler
	Product       *handler.ProductHandler
	Order         *handler.OrderHandler
	PurchaseOrder *handler.PurchaseOrderHandler
}

// New builds the gin engine with the full middleware stack and all
// API routes under /api/v1.
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(corsCfg),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuth(middleware.JWTAuthConfig{
		Service:   jwtService,
		SkipPaths: []string{"/api/v1/health"},
	}))

	api.GET("/health", h.System.Health)

	admin := middleware.RequireAdmin()

	// Priority tiers (admin)
	priorities := api.Group("/priorities", admin)
	{
		priorities.POST("", h.Priority.Create)
		priorities.GET("", h.Priority.List)
		priorities.GET("/:code", h.Priority.Get)
		priorities.PUT("/:code", h.Priority.Update)
		priorities.POST("/:code/activate", h.Priority.Activate)
		priorities.DELETE("/:code", h.Priority.Remove)
	}

	// Retailer directory (admin)
	retailers := api.Group("/retailers", admin)
	{
		retailers.POST("", h.Retailer.Create)
		retailers.GET("", h.Retailer.List)
		retailers.POST("/refresh-access", h.Retailer.RefreshAllAccess)
		retailers.GET("/by-phone/:phone", h.Retailer.GetByPhone)
		retailers.GET("/:id", h.Retailer.Get)
		retailers.PUT("/:id", h.Retailer.Update)
		retailers.PUT("/:id/priorities", h.Retailer.SetPriorities)
		retailers.POST("/:id/refresh-access", h.Retailer.RefreshAccess)
		retailers.POST("/:id/activate", h.Retailer.Activate)
		retailers.POST("/:id/deactivate", h.Retailer.Deactivate)
	}

	// Directory sheet sync (admin)
	api.POST("/sync/retailers", admin, h.Sync.Run)

	// Catalogs
	catalogs := api.Group("/catalogs")
	{
		catalogs.POST("", admin, h.Catalog.Create)
		catalogs.GET("", admin, h.Catalog.List)
		catalogs.GET("/:id", admin, h.Catalog.Get)
		catalogs.PUT("/:id", admin, h.Catalog.Update)
		catalogs.POST("/:id/activate", admin, h.Catalog.Activate)
		catalogs.POST("/:id/deactivate", admin, h.Catalog.Deactivate)
	}

	// Products
	products := api.Group("/products")
	{
		products.POST("", admin, h.Product.Create)
		products.GET("", admin, h.Product.List)
		products.GET("/:id", admin, h.Product.Get)
		products.PUT("/:id", admin, h.Product.Update)
		products.POST("/:id/activate", admin, h.Product.Activate)
		products.POST("/:id/deactivate", admin, h.Product.Deactivate)
	}

	// Retailer-facing catalog browsing, filtered by accessible set
	my := api.Group("/my")
	{
		my.GET("/catalogs", h.Catalog.ListMine)
		my.GET("/catalogs/:id/products", h.Product.ListMine)
		my.GET("/products/:id", h.Product.GetMine)
	}

	// Order workflow
	orders := api.Group("/orders")
	{
		orders.POST("", h.Order.Create)
		orders.GET("", h.Order.List)
		orders.GET("/by-number/:number", h.Order.GetByNumber)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/submit", h.Order.Submit)
		orders.POST("/:id/start-review", admin, h.Order.StartReview)
		orders.POST("/:id/review", admin, h.Order.Review)
		orders.DELETE("/:id", admin, h.Order.Delete)
		orders.POST("/:id/purchase-order", admin, h.PurchaseOrder.Generate)
		orders.GET("/:id/purchase-order", admin, h.PurchaseOrder.GetByOrder)
	}

	// Purchase orders (admin)
	pos := api.Group("/purchase-orders", admin)
	{
		pos.GET("", h.PurchaseOrder.List)
		pos.GET("/:id", h.PurchaseOrder.Get)
		pos.GET("/:id/document", h.PurchaseOrder.Document)
		pos.POST("/:id/sent", h.PurchaseOrder.MarkSent)
		pos.POST("/:id/acknowledged", h.PurchaseOrder.MarkAcknowledged)
	}

	// System stats (admin)
	api.GET("/system/stats", admin, h.System.Stats)

	return engine
}
