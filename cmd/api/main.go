// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/user-registry/internal/admin"
	"github.com/carterperez-dev/templates/user-registry/internal/config"
	"github.com/carterperez-dev/templates/user-registry/internal/core"
	"github.com/carterperez-dev/templates/user-registry/internal/health"
	"github.com/carterperez-dev/templates/user-registry/internal/middleware"
	"github.com/carterperez-dev/templates/user-registry/internal/server"
	"github.com/carterperez-dev/templates/user-registry/internal/user"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	telemetry, err := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
	if err != nil {
		logger.Warn("failed to initialize telemetry, tracing disabled", "error", err)
		telemetry = core.DisabledTelemetry()
	} else if cfg.Otel.Enabled {
		logger.Info("OpenTelemetry tracer initialized",
			"endpoint", cfg.Otel.Endpoint,
		)
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	switch {
	case errors.Is(err, core.ErrRedisDisabled):
		logger.Info("redis not configured, rate limiting is process local")
	case err != nil:
		logger.Warn("redis unavailable, rate limiting is process local",
			"error", err,
		)
	default:
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	}

	userRepo := user.NewRepository(db)
	userSvc := user.NewService(userRepo, telemetry.Tracer)
	userHandler := user.NewHandler(userSvc)

	healthHandler := health.NewHandler(userRepo)

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = newRateLimiter(cfg.RateLimit, redis)
		defer limiter.Close()
	}

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	router.Route("/api/v1", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Handler)
		}
		userHandler.RegisterRoutes(r)
	})

	if cfg.Admin.Enabled {
		sources := admin.Sources{
			DBStats: db.Stats,
			DBPing:  db.Ping,
		}
		if redis.Enabled() {
			sources.RedisStats = redis.PoolStats
			sources.RedisPing = redis.Ping
		}
		admin.NewHandler(sources).RegisterRoutes(router)
		logger.Info("admin stats endpoint enabled")
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		closeAll(context.Background(), logger, telemetry, redis, db)
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+cfg.Server.DrainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, cfg.Server.DrainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	closeAll(shutdownCtx, logger, telemetry, redis, db)

	logger.Info("application stopped")
	return nil
}

func newRateLimiter(
	cfg config.RateLimitConfig,
	redis *core.Redis,
) *middleware.RateLimiter {
	return middleware.NewRateLimiter(redis.Client(), middleware.RateLimitConfig{
		Limit:    middleware.PerWindow(cfg.Requests, cfg.Burst, cfg.Window),
		KeyFunc:  middleware.KeyFuncFor(cfg.KeyBy),
		FailOpen: true,
	})
}

func closeAll(
	ctx context.Context,
	logger *slog.Logger,
	telemetry *core.Telemetry,
	redis *core.Redis,
	db *core.Database,
) {
	if err := telemetry.Shutdown(ctx); err != nil {
		logger.Error("telemetry shutdown error", "error", err)
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
