// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carterperez-dev/templates/rbac-api/internal/admin"
	"github.com/carterperez-dev/templates/rbac-api/internal/auth"
	"github.com/carterperez-dev/templates/rbac-api/internal/config"
	"github.com/carterperez-dev/templates/rbac-api/internal/core"
	"github.com/carterperez-dev/templates/rbac-api/internal/health"
	"github.com/carterperez-dev/templates/rbac-api/internal/middleware"
	"github.com/carterperez-dev/templates/rbac-api/internal/permission"
	"github.com/carterperez-dev/templates/rbac-api/internal/rbac"
	"github.com/carterperez-dev/templates/rbac-api/internal/role"
	"github.com/carterperez-dev/templates/rbac-api/internal/router"
	"github.com/carterperez-dev/templates/rbac-api/internal/server"
	"github.com/carterperez-dev/templates/rbac-api/internal/user"
)

const (
	drainDelay    = 5 * time.Second
	refreshWindow = 15 * time.Minute
	refreshBudget = 5
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
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

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
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
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	tokens, err := auth.NewTokenManager(cfg.JWT)
	if err != nil {
		return err
	}
	logger.Info("token manager initialized",
		"algorithm", "HS256",
		"access_ttl", cfg.JWT.AccessTokenExpire.String(),
		"refresh_ttl", cfg.JWT.RefreshTokenExpire.String(),
	)

	cache := core.NewCache(redis.Client)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, cache, cfg.Cache.ListTTL)

	rbacSvc := rbac.NewService(rbac.NewRepository(db.DB))

	permRepo := permission.NewRepository(db.DB)
	permSvc := permission.NewService(permRepo)

	roleSvc := role.NewService(db.DB, role.NewRepository(db.DB), permRepo)

	authSvc := auth.NewService(tokens, userSvc)

	authenticator := middleware.Authenticator(tokens)
	requirePermission := func(perms ...string) func(http.Handler) http.Handler {
		return middleware.RequirePermission(rbacSvc, perms...)
	}

	defaultLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
				cfg.RateLimit.Window,
			),
			FailOpen: true,
		},
	)

	// Credential endpoints get a much tighter budget, keyed by ip plus
	// the submitted email so one address cannot lock out every account.
	loginLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit: middleware.PerWindow(
				cfg.RateLimit.AuthRequests,
				cfg.RateLimit.AuthBurst,
				cfg.RateLimit.AuthWindow,
			),
			KeyFunc:  middleware.KeyByIPAndIdentifier("email"),
			FailOpen: true,
		},
	)

	refreshLimiter := middleware.NewRateLimiter(
		redis.Client,
		middleware.RateLimitConfig{
			Limit:    middleware.PerWindow(refreshBudget, refreshBudget, refreshWindow),
			FailOpen: true,
		},
	)

	registry := router.New(router.Options{
		DefaultLimiter: defaultLimiter.Handler,
	})

	authHandler := auth.NewHandler(authSvc)
	if err := registry.Add("/v1/auth", authHandler.Routes(auth.RouteOptions{
		Authenticator:  authenticator,
		LoginLimiter:   loginLimiter.Handler,
		RefreshLimiter: refreshLimiter.Handler,
	})...); err != nil {
		return err
	}

	userHandler := user.NewHandler(userSvc, rbacSvc)
	if err := registry.Add("/v1/users", userHandler.Routes(user.RouteOptions{
		Authenticator:     authenticator,
		RequirePermission: requirePermission,
	})...); err != nil {
		return err
	}

	roleHandler := role.NewHandler(roleSvc)
	if err := registry.Add("/v1/roles", roleHandler.Routes(role.RouteOptions{
		Authenticator:     authenticator,
		RequirePermission: requirePermission,
	})...); err != nil {
		return err
	}

	permHandler := permission.NewHandler(permSvc)
	if err := registry.Add(
		"/v1/permissions",
		permHandler.Routes(permission.RouteOptions{
			Authenticator:     authenticator,
			RequirePermission: requirePermission,
		})...,
	); err != nil {
		return err
	}

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
	})
	if err := registry.Add("/v1/admin", adminHandler.Routes(admin.RouteOptions{
		Authenticator:     authenticator,
		RequirePermission: requirePermission,
	})...); err != nil {
		return err
	}

	srv := server.New(server.Config{
		ServerConfig: cfg.Server,
		Logger:       logger,
	})

	mux := srv.Router()

	mux.Use(middleware.RequestID)
	mux.Use(middleware.Logger(logger))
	mux.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	mux.Use(middleware.CORS(cfg.CORS))

	healthHandler := health.NewHandler(db, redis)
	healthHandler.RegisterRoutes(mux)

	if err := registry.Mount(mux); err != nil {
		return err
	}

	mux.Get("/v1/docs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck // best-effort response
		_ = json.NewEncoder(w).Encode(registry.Docs())
	})

	registry.Freeze()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	healthHandler.SetShutdown(true)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
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
