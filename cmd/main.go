package main

//
//  @title           portfoli API
//  @version         1.0
//  @description     Investment portfolio tracking: portfolios, holdings, transactions and the asset catalog.
//  @termsOfService  https://github.com/guttosm/portfoli
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/portfoli
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        portfolios
//  @tag.description Create, rename, list and delete portfolios
//
//  @tag.name        holdings
//  @tag.description Positions in a single asset inside a portfolio
//
//  @tag.name        transactions
//  @tag.description Buy and sell records of a holding
//
//  @tag.name        assets
//  @tag.description The shared asset catalog
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guttosm/portfoli/config"
	"github.com/guttosm/portfoli/db"
	_ "github.com/guttosm/portfoli/docs" // swagger docs
	"github.com/guttosm/portfoli/internal/app"
	"github.com/guttosm/portfoli/internal/ingestion"
	"github.com/guttosm/portfoli/internal/logger"
	"github.com/guttosm/portfoli/internal/storage"
)

const defaultShutdownTimeout = 10 * time.Second

// startServer initializes and starts the HTTP server in a separate goroutine.
//
// Parameters:
//   - router (http.Handler): The HTTP router (Gin Engine) configured with all routes.
//   - port (string): The port where the server will listen for incoming requests.
//
// Returns:
//   - *http.Server: The initialized HTTP server instance.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown waits for SIGINT or SIGTERM, drains the server within
// timeout and then runs cleanup.
func gracefulShutdown(ctx context.Context, server *http.Server, timeout time.Duration, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	<-quit
	logger.L().Info().Msg("shutting down server")

	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Error().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// runMigrations applies the embedded schema migrations.
func runMigrations(cfg config.Config) error {
	conn, err := app.InitPostgres(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	if err := db.Migrate(conn); err != nil {
		return err
	}
	version, err := db.Version(conn)
	if err != nil {
		return err
	}
	logger.L().Info().Int64("version", version).Msg("migrations applied")
	return nil
}

// loadAssets reads the catalog files in dir into the PostgreSQL catalog.
func loadAssets(ctx context.Context, cfg config.Config, dir string, workers int) (ingestion.Summary, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		return ingestion.Summary{}, fmt.Errorf("asset ingestion needs STORAGE_DRIVER=%s", config.DriverPostgres)
	}
	conn, err := app.InitPostgres(cfg)
	if err != nil {
		return ingestion.Summary{}, err
	}
	defer func() { _ = conn.Close() }()

	return ingestion.ProcessDirectory(ctx, dir, storage.NewAssetRepository(conn), ingestion.Options{
		Workers:   workers,
		BatchSize: cfg.Ingestion.BatchSize,
	})
}

// main is the entry point of the portfoli application.
//
// Modes (selected via --mode flag):
//   - api:     Starts the REST API (default).
//   - migrate: Applies the database migrations and exits.
//   - assets:  Loads the asset catalog from the *.csv files in --dir.
//
// Flags:
//   - --dir:     Directory containing catalog files. Defaults to INGESTION_DIR.
//   - --workers: Files processed concurrently (0 = auto).
//   - --port:    Port for the API server. Defaults to SERVER_PORT.
func main() {
	ctx := context.Background()

	config.LoadConfig()
	logger.Init()

	cfg := config.AppConfig
	mode := flag.String("mode", "api", "Mode: api, migrate or assets")
	dir := flag.String("dir", cfg.Ingestion.Dir, "Directory with asset catalog .csv files")
	workers := flag.Int("workers", cfg.Ingestion.Workers, "Catalog files processed concurrently (0=auto)")
	port := flag.String("port", cfg.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "migrate":
		if err := runMigrations(cfg); err != nil {
			logger.L().Fatal().Err(err).Msg("migration failed")
		}

	case "assets":
		logger.L().Info().Str("dir", *dir).Msg("loading asset catalog")
		summary, err := loadAssets(ctx, cfg, *dir, *workers)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("asset ingestion failed")
		}
		logger.L().Info().
			Int("files", summary.Files).
			Int("rows", summary.Rows).
			Int("inserted", summary.Inserted).
			Int("skipped", summary.Skipped).
			Msg("asset ingestion completed")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cfg.Server.ShutdownTimeout, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
