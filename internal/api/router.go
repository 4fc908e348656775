package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/portfoli/internal/middleware"
)

// MetricsSource is what the router needs from the metrics registry.
type MetricsSource interface {
	middleware.RequestObserver
	Handler() http.Handler
}

// RouterConfig carries the transport settings taken from config.
type RouterConfig struct {
	RequestTimeout time.Duration
	RateLimit      int
	RateWindow     time.Duration
	Metrics        MetricsSource
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler,
//     RateLimiter, Metrics).
//   - Bounds every request with cfg.RequestTimeout (default 10 seconds).
//   - Mounts Swagger docs (/swagger/*any) and Prometheus (/metrics).
//   - Configures API v1 routes (/api/v1).
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.RateLimiter(cfg.RateLimit, cfg.RateWindow),
	)
	if cfg.Metrics != nil {
		router.Use(middleware.Metrics(cfg.Metrics))
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// ─── Timeout ──────────────────────────────────
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API v1 ───────────────────────────────────
	v1 := router.Group("/api/v1")
	{
		portfolios := v1.Group("/portfolios")
		portfolios.GET("", handler.ListPortfolios)
		portfolios.POST("", handler.CreatePortfolio)
		portfolios.GET("/:portfolioId", handler.GetPortfolio)
		portfolios.PATCH("/:portfolioId", handler.RenamePortfolio)
		portfolios.DELETE("/:portfolioId", handler.DeletePortfolio)

		holdings := portfolios.Group("/:portfolioId/holdings")
		holdings.POST("", handler.CreateHolding)
		holdings.GET("/:holdingId", handler.GetHolding)
		holdings.DELETE("/:holdingId", handler.DeleteHolding)

		transactions := holdings.Group("/:holdingId/transactions")
		transactions.POST("", handler.CreateTransaction)
		transactions.GET("/:transactionId", handler.GetTransaction)
		transactions.DELETE("/:transactionId", handler.DeleteTransaction)

		assets := v1.Group("/assets")
		assets.GET("", handler.ListAssets)
		assets.POST("", handler.CreateAsset)
		assets.GET("/lookup", handler.FindAsset)
		assets.GET("/:assetId", handler.GetAsset)
		assets.DELETE("/:assetId", handler.DeleteAsset)
	}

	return router
}
