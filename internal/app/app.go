package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/guttosm/portfoli/config"
	"github.com/guttosm/portfoli/internal/api"
	"github.com/guttosm/portfoli/internal/cache"
	"github.com/guttosm/portfoli/internal/events"
	"github.com/guttosm/portfoli/internal/logger"
	"github.com/guttosm/portfoli/internal/metrics"
	"github.com/guttosm/portfoli/internal/service"
	"github.com/guttosm/portfoli/internal/storage"
)

// kafkaOpener is overridden in tests.
var kafkaOpener = func(cfg config.KafkaConfig) (events.Publisher, error) {
	return events.NewKafkaPublisher(events.KafkaConfig{Brokers: cfg.Brokers, Topic: cfg.Topic})
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the repositories for the configured storage driver (PostgreSQL
//     via InitPostgres, or in memory).
//   - Puts the Redis asset cache in front of the catalog when REDIS_ADDR is set.
//   - Publishes domain events to Kafka when KAFKA_BROKERS is set, otherwise
//     to the debug log.
//   - Creates services, handlers and the router, with Prometheus metrics.
//   - Registers health and readiness probes, one check per external dependency.
//   - Provides a cleanup function to close everything that was opened.
//
// On error, whatever was opened before the failure is closed and the router
// and cleanup are nil.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig
	log := logger.Component("app")

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*gin.Engine, func(), error) {
		cleanup()
		return nil, nil, err
	}

	checks := map[string]api.Check{}

	// ─── Storage ──────────────────────────────────
	var (
		portfolios storage.PortfolioRepository
		assets     storage.AssetRepository
	)
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store := storage.NewMemoryStore()
		portfolios, assets = store.Portfolios(), store.Assets()
		log.Warn().Msg("using in-memory storage, data is lost on restart")
	default:
		db, err := postgresOpener(cfg)
		if err != nil {
			return fail(fmt.Errorf("failed to initialize postgres: %w", err))
		}
		closers = append(closers, func() { _ = db.Close() })
		portfolios = storage.NewPortfolioRepository(db)
		assets = storage.NewAssetRepository(db)
		checks["postgres"] = db.PingContext
	}

	// ─── Asset cache ──────────────────────────────
	if cfg.Redis.Enabled() {
		rdb, err := redisOpener(context.Background(), cfg.Redis)
		if err != nil {
			return fail(fmt.Errorf("failed to initialize redis: %w", err))
		}
		closers = append(closers, func() { _ = rdb.Close() })
		assets = cache.NewAssetRepository(assets, rdb, cfg.Redis.Prefix, cfg.Redis.TTL)
		checks["redis"] = pingRedis(rdb)
	}

	// ─── Events ───────────────────────────────────
	var publisher events.Publisher = events.LogPublisher{}
	if cfg.Kafka.Enabled() {
		kp, err := kafkaOpener(cfg.Kafka)
		if err != nil {
			return fail(fmt.Errorf("failed to initialize kafka publisher: %w", err))
		}
		closers = append(closers, func() {
			if err := kp.Close(); err != nil {
				log.Error().Err(err).Msg("kafka publisher close failed")
			}
		})
		publisher = kp
	}

	// ─── Services and transport ───────────────────
	m := metrics.New()
	portfolioSvc := service.NewPortfolioService(portfolios, assets, publisher, m)
	assetSvc := service.NewAssetService(assets, m)

	handler := api.NewHandler(portfolioSvc, assetSvc)
	router := api.NewRouter(handler, api.RouterConfig{
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimit:      cfg.RateLimit.Requests,
		RateWindow:     cfg.RateLimit.Window,
		Metrics:        m,
	})

	api.NewHealthHandler(checks).Register(router)

	log.Info().
		Str("storage", cfg.Storage.Driver).
		Bool("redis", cfg.Redis.Enabled()).
		Bool("kafka", cfg.Kafka.Enabled()).
		Msg("application initialized")

	return router, cleanup, nil
}

func pingRedis(rdb redis.Cmdable) api.Check {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
