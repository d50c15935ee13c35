package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/codekids/academy-api/config"
	httpx "github.com/codekids/academy-api/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	DB       *sql.DB
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	// Every route depends on sessions, so a server without auth is useless.
	if cfg.Services.Auth == nil {
		logger.Error("refusing to start HTTP server without an auth service")
		return nil
	}

	var throttle *httpx.Throttler
	if appCfg.HTTP.ThrottleEnabled {
		throttle = httpx.NewThrottler(httpx.ThrottleOptions{
			RequestsPerSecond: appCfg.HTTP.ThrottleRPS,
			Burst:             appCfg.HTTP.ThrottleBurst,
		})
	}

	services := httpx.RouterServices{
		Auth:          cfg.Services.Auth,
		Courses:       cfg.Services.Courses,
		Enrollments:   cfg.Services.Enrollments,
		ClassSessions: cfg.Services.ClassSessions,
		PasswordReset: cfg.Services.PasswordReset,
		Presence:      cfg.Services.Presence,
		DB:            cfg.DB,
		Throttle:      throttle,
		CallbackURL:   strings.TrimSuffix(appCfg.HTTP.BaseURL, "/") + "/auth/callback",
		SecureCookies: appCfg.HTTP.SecureCookies,
		Logger:        logger,
	}

	// Order: Recover -> Logging -> Router (throttle applies inside the router)
	h := httpx.NewRouter(services)
	h = httpx.Logging(logger)(h)
	h = httpx.Recover(logger)(h)

	return startServer(logger, h, appCfg.HTTP.Addr)
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}

	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}

	return nil
}
