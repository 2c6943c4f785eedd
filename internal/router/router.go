package router

import (
	"brokerbook/internal/config"
	"brokerbook/internal/handler"
	"brokerbook/internal/infra"
	"brokerbook/internal/middleware"
	"brokerbook/internal/repository"
	"brokerbook/internal/service"
	"brokerbook/internal/store"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← Store ← KV backend.
// limiter may be nil to run without rate limiting; breaker is the flush
// circuit breaker reported by /health, nil when nothing is flushed.
func New(cfg *config.Config, st *store.Store, limiter *middleware.RateLimiter, breaker *infra.CircuitBreaker) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	if limiter != nil {
		r.Use(limiter.Handler())
	}

	// ── Repositories ─────────────────────────────────────────────────────────
	supplierRepo := repository.NewSupplierRepository(st)
	buyerRepo := repository.NewBuyerRepository(st)
	dealRepo := repository.NewDealRepository(st)
	deliveryRepo := repository.NewDeliveryRepository(st)

	// ── Services ─────────────────────────────────────────────────────────────
	partySvc := service.NewPartyService(supplierRepo, buyerRepo)
	dealSvc := service.NewDealService(dealRepo, deliveryRepo, supplierRepo, buyerRepo, cfg.DealDeleteCascade)
	deliverySvc := service.NewDeliveryService(deliveryRepo, dealRepo, supplierRepo, buyerRepo)
	dashboardSvc := service.NewDashboardService(dealRepo)
	reportSvc := service.NewReportService(dealRepo, supplierRepo, buyerRepo)
	dataSvc := service.NewDataService(st)

	// ── Handlers ─────────────────────────────────────────────────────────────
	partiesH := handler.NewPartyHandler(partySvc)
	dealsH := handler.NewDealHandler(dealSvc, deliverySvc)
	deliveriesH := handler.NewDeliveryHandler(deliverySvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	reportsH := handler.NewReportHandler(reportSvc)
	dataH := handler.NewDataHandler(dataSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(st, cfg.StoreDriver, breaker))

	v1 := r.Group("/v1")
	{
		v1.POST("/suppliers", partiesH.CreateSupplier)
		v1.GET("/suppliers", partiesH.ListSuppliers)
		v1.POST("/buyers", partiesH.CreateBuyer)
		v1.GET("/buyers", partiesH.ListBuyers)

		deals := v1.Group("/deals")
		{
			deals.GET("", dealsH.List)
			deals.POST("", dealsH.Create)
			deals.POST("/preview", dealsH.Preview)
			deals.GET("/:id", dealsH.Get)
			deals.DELETE("/:id", dealsH.Delete)
			deals.PATCH("/:id/status", dealsH.UpdateStatus)
			deals.GET("/:id/summary", dealsH.Summary)
			deals.GET("/:id/note.pdf", dealsH.NotePDF)
		}

		deliveries := v1.Group("/deliveries")
		{
			deliveries.GET("", deliveriesH.List)
			deliveries.POST("", deliveriesH.Record)
			deliveries.PATCH("/:id/status", deliveriesH.UpdateStatus)
			deliveries.DELETE("/:id", deliveriesH.Delete)
		}

		v1.GET("/dashboard/stats", dashboardH.Stats)
		v1.GET("/dashboard/alerts", dashboardH.Alerts)

		v1.GET("/reports/deals", reportsH.Deals)
		v1.GET("/reports/deals.xlsx", reportsH.DealsXLSX)

		v1.POST("/data/reset", dataH.Reset)
	}

	// Swagger UI — only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
