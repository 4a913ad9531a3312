package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/sessions"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ghuser/itemstack/pkg/cache"
	"github.com/ghuser/itemstack/pkg/config"
	"github.com/ghuser/itemstack/pkg/httpx"
	"github.com/ghuser/itemstack/pkg/logger"
	"github.com/ghuser/itemstack/pkg/session"
	"github.com/ghuser/itemstack/pkg/telemetry"
	webApi "github.com/ghuser/itemstack/services/web/api"
	"github.com/ghuser/itemstack/services/web/client"
)

// webContentSecurityPolicy allows the page's inline stylesheet.
const webContentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg, config.UsesSessions); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}
	if err := config.ValidateSessionKeys(cfg); err != nil {
		slog.Error("invalid session keys", "error", err)
		os.Exit(1)
	}
	cfg.ServiceName = strings.TrimSuffix(cfg.ServiceName, "-api") + "-web"

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	itemsAPI := client.New(cfg.APIURL)
	checks := httpx.HealthChecks{"api": itemsAPI}

	sessionStore, redisClient := newSessionStore(ctx, cfg, log)
	if redisClient != nil {
		defer redisClient.Close() //nolint:errcheck
		checks["redis"] = redisClient
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:           cfg.ServiceName,
			IsDevelopment:         cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins:    cfg.CORSAllowedOrigins,
			RateLimitPerMinute:    cfg.RateLimitPerMinute,
			ContentSecurityPolicy: webContentSecurityPolicy,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(checks))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	webApi.WebRoutes(r, itemsAPI, sessionStore, log)

	srv := httpx.NewServer(":"+cfg.WebPort, r)

	go func() {
		log.Info("web listening", "addr", srv.Addr, "api_url", cfg.APIURL, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// newSessionStore keeps view sessions in Redis when REDIS_URL is set and
// reachable, and in encrypted cookies otherwise. A Redis failure is not fatal.
func newSessionStore(ctx context.Context, cfg *config.Config, log logger.Logger) (sessions.Store, *cache.RedisClient) {
	authKey := []byte(cfg.SessionAuthKey)
	encKey := []byte(cfg.SessionEncryptionKey)
	secure := cfg.Environment == config.EnvProduction

	if cfg.RedisURL != "" {
		rc, err := cache.Open(ctx, cfg.RedisURL)
		if err == nil {
			log.Info("session store initialized", "backend", "redis")
			return session.NewStore(rc.Client(), authKey, encKey, secure), rc
		}
		log.Warn("redis unavailable, falling back to cookie sessions", "error", err)
	}

	log.Info("session store initialized", "backend", "cookie")
	return session.NewStore(nil, authKey, encKey, secure), nil
}
