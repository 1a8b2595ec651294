package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lendly/internal/api"
	"lendly/internal/config"
	"lendly/internal/database"
	"lendly/internal/domain"
	"lendly/internal/events"
	"lendly/internal/logging"
	"lendly/internal/metrics"
	"lendly/internal/repository"
	"lendly/internal/service"
	"lendly/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userLimiter := initUserLimiter(ctx, cfg, &logger)

	bus := events.NewEventBus()

	userService := service.NewUserService(db, &logger)
	itemService := service.NewItemService(db, bus, &logger)
	bookingService := service.NewBookingService(db, bus, &logger)
	requestService := service.NewRequestService(db, &logger)

	startExports(ctx, cfg, db, bus, &logger)
	startBackups(ctx, cfg, &logger)
	startMetrics(ctx, cfg, &logger)

	httpServer := api.NewHTTPServer(cfg.API, api.Services{
		Users:    userService,
		Items:    itemService,
		Bookings: bookingService,
		Requests: requestService,
	}, userLimiter, &logger)

	return serve(ctx, httpServer, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

// initUserLimiter собирает лимитер: redis с фолбэком в память либо чистая память.
func initUserLimiter(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) domain.RequestLimiter {
	memory := repository.NewMemoryLimiter()

	if !cfg.Redis.Enabled {
		return memory
	}

	client := repository.NewRedisClient(cfg.Redis)
	if _, err := client.Ping(ctx).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, per-user limits stay in memory")
		_ = client.Close()
		return memory
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return repository.NewFailoverLimiter(repository.NewRedisLimiter(client), memory, logger)
}

func startExports(ctx context.Context, cfg *config.Config, db *database.DB, bus *events.EventBus, logger *zerolog.Logger) {
	if !cfg.Exports.Enabled {
		return
	}

	exportWorker := worker.NewExportWorker(db, cfg.Exports, worker.RetryPolicy{}, logger)

	// Отчет пересобирается после каждого события, меняющего картину бронирований.
	refresh := func(*events.Event) error {
		exportWorker.Enqueue()
		return nil
	}
	bus.Subscribe(events.EventBookingCreated, refresh)
	bus.Subscribe(events.EventBookingApproved, refresh)
	bus.Subscribe(events.EventBookingRejected, refresh)

	go exportWorker.Start(ctx)
}

func startBackups(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Backup.Enabled {
		return
	}
	backup := database.NewBackupService(cfg.Database.Path, cfg.Backup, logger)
	go backup.Start(ctx)
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func serve(ctx context.Context, httpServer *api.HTTPServer, logger *zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
