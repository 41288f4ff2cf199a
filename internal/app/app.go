package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/scripture-backend/internal/adapter/postgres"
	"github.com/heartmarshall/scripture-backend/internal/config"
	"github.com/heartmarshall/scripture-backend/internal/transport/middleware"
	"github.com/heartmarshall/scripture-backend/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, connects to the
// database, applies migrations, wires the cache services and serves HTTP
// until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(startupCtx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(startupCtx, cfg.Database.DSN, logger); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	svc := NewServices(pool, cfg, logger)

	var limit middleware.Middleware
	if cfg.RateLimit.RequestsPerMinute > 0 {
		rl := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.CleanupInterval)
		defer rl.Stop()
		limit = rl.Limit()
	}

	health := rest.NewHealthHandler(BuildVersion(), map[string]rest.Checker{
		"database": pool.Ping,
	})

	router := rest.NewRouter(rest.RouterDeps{
		Scripture: rest.NewScriptureHandler(svc.Translations, svc.Books, svc.Chapters, logger),
		Health:    health,
		CORS:      middleware.CORS(cfg.CORS),
		Limit:     limit,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	logger.Info("shutting down http server", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
