package router

import (
	"time"

	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/config"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/handler"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/infra"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/middleware"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/model"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/repository"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/service"
	"github.com/Foreversengine/Bespoke-Inventory-management-system/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine plus the
// worker handlers the caller should register with the pool.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, worker.Handlers) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	// Worker dispatcher, injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	categorySvc := service.NewCategoryService(categoryRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo, variantRepo, rdb)
	variantSvc := service.NewVariantService(variantRepo, productRepo)
	stockSvc := service.NewStockService(variantRepo, auditRepo, dispatcher)
	saleSvc := service.NewSaleService(saleRepo, variantRepo, productRepo, stockSvc, dispatcher, cfg.PDFStoragePath)
	orderSvc := service.NewOrderService(orderRepo, productRepo, nil)
	alertSvc := service.NewAlertService(alertRepo, variantRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	productsH := handler.NewProductsHandler(productSvc)
	variantsH := handler.NewVariantsHandler(variantSvc, stockSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	alertsH := handler.NewAlertsHandler(alertSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/signup", middleware.LoginRateLimiter(), authH.Signup)
		auth.POST("/refresh", authH.Refresh)
	}

	// Price check, no auth required
	r.GET("/v1/price/:sku", alertsH.LookupPrice)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleStaff)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	v1 := r.Group("/v1", jwtMW)
	{
		// Categories: everyone reads, admin writes
		v1.GET("/categories", anyRole, categoriesH.List)
		categories := v1.Group("/categories", adminOnly)
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Delete)
		}

		// Products and their variants (staff operate on their own catalog)
		products := v1.Group("/products", anyRole)
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.Get)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.POST("/:id/variants", variantsH.Create)
			products.GET("/:id/variants", variantsH.ListByProduct)
		}

		variants := v1.Group("/variants", anyRole)
		{
			variants.GET("/low-stock", variantsH.ListLowStock)
			variants.GET("/:id", variantsH.Get)
			variants.PUT("/:id", variantsH.Update)
			variants.DELETE("/:id", variantsH.Delete)
			variants.PATCH("/:id/stock", variantsH.AdjustStock)
		}

		// Audit trail is read-only by design
		v1.GET("/audits", anyRole, variantsH.ListAudits)

		sales := v1.Group("/sales", anyRole)
		{
			sales.POST("", salesH.Record)
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.Get)
			sales.GET("/:id/receipt", salesH.Receipt)
		}

		orders := v1.Group("/orders", anyRole)
		{
			orders.POST("", ordersH.Create)
			orders.GET("", ordersH.List)
			orders.GET("/:id", ordersH.Get)
			orders.PATCH("/:id/status", ordersH.UpdateStatus)
		}

		alerts := v1.Group("/alerts", anyRole)
		{
			alerts.GET("", alertsH.List)
			alerts.PATCH("/:id/resolve", alertsH.Resolve)
		}
	}

	// Swagger UI, only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Worker handlers consume the queues the services above feed.
	mailer := infra.NewMailer(cfg)
	handlers := worker.Handlers{
		Alert: worker.NewAlertWorker(variantRepo, alertRepo, userRepo, dispatcher),
		Email: worker.NewEmailWorker(mailer),
	}
	return r, handlers
}
