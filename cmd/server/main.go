package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hotelops/guest-services-backend/internal/app"
	"github.com/hotelops/guest-services-backend/internal/availability"
	"github.com/hotelops/guest-services-backend/internal/config"
	"github.com/hotelops/guest-services-backend/internal/db"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		errLogger := zerolog.New(os.Stderr)
		errLogger.Fatal().Err(err).Msg("failed to load config")
	}

	logger := newLogger(cfg.IsProduction)

	// Connect the operations database replica when configured for direct
	// reads; the REST client mode needs no pool.
	var pool *pgxpool.Pool
	if cfg.DBDSN != "" {
		pool, err = db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to db")
		}
		defer pool.Close()
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
	}

	container := app.NewContainer(app.Dependencies{
		Config: cfg,
		Logger: logger,
		DBPool: pool,
		Redis:  rdb,
	})

	// With the Redis cache on, keep the availability cache warm by
	// re-resolving every service on the poll interval.
	if rdb != nil && cfg.CacheTTL > 0 && cfg.PollInterval > 0 {
		go warmAvailabilityCache(ctx, container, cfg.PollInterval, logger)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("server running")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited gracefully")
}

// warmAvailabilityCache starts one polling watcher per catalog service. Each
// resolve cycle refreshes the cached availability through the source
// decorator; the snapshots themselves are not consumed here.
func warmAvailabilityCache(ctx context.Context, container *app.Container, interval time.Duration, logger zerolog.Logger) {
	services, err := container.Catalog.List(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("cache warming skipped, could not list services")
		return
	}
	for _, svc := range services {
		w := availability.NewWatcher(container.Resolver, availability.Query{ServiceID: svc.ID}, interval, logger)
		go w.Start(ctx, func(*availability.Snapshot) {})
	}
}

func newLogger(isProduction bool) zerolog.Logger {
	if isProduction {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	return zerolog.New(output).With().Timestamp().Logger()
}
