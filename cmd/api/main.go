package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/itemstack/docs/swagger"
	"github.com/ghuser/itemstack/migrations/item"
	"github.com/ghuser/itemstack/pkg/app"
	"github.com/ghuser/itemstack/pkg/config"
	"github.com/ghuser/itemstack/pkg/database"
	"github.com/ghuser/itemstack/pkg/events"
	"github.com/ghuser/itemstack/pkg/httpx"
	"github.com/ghuser/itemstack/pkg/logger"
	"github.com/ghuser/itemstack/pkg/telemetry"
	itemApi "github.com/ghuser/itemstack/services/item/application/api"
	"github.com/ghuser/itemstack/services/item/application/subscribers"
)

// apiContentSecurityPolicy lets the Swagger UI under /api-docs load its inline assets.
const apiContentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:"

// @title			Items API
// @version		1.0
// @description	CRUD over a single item resource backed by MongoDB, PostgreSQL, or memory.
// @license.name	MIT
// @license.url	https://opensource.org/licenses/MIT
// @host			localhost:5000
// @BasePath		/api
// @schemes		http https
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg, config.UsesDatabase); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	// Telemetry: OTel tracing + metrics
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	// Crash reporting: Sentry (optional; log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	target, err := database.ParseTarget(cfg.DatabaseURL)
	if err != nil {
		log.Error("invalid DATABASE_URL", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}

	// The store connects in the background; requests before readiness get 500.
	storeOpts := []database.Option{database.WithRetryDelay(cfg.DatabaseRetryDelay)}
	if target.Kind() == database.KindPostgres {
		storeOpts = append(storeOpts, database.WithOnConnect(func(context.Context) error {
			return item.Migrate(target.URI(), log)
		}))
	}
	store := database.New(target, log, storeOpts...)
	store.Start(ctx)
	defer store.Close(context.Background()) //nolint:errcheck
	log.Info("database target", "kind", string(target.Kind()), "url", target.Redacted())

	eventBus, err := newEventBus(ctx, cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	appConfig := &app.Application{
		Store:             store,
		Logger:            log,
		EventBus:          eventBus,
		AdminInterfaceURL: cfg.AdminInterfaceURL,
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:           cfg.ServiceName,
			IsDevelopment:         cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins:    cfg.CORSAllowedOrigins,
			RateLimitPerMinute:    cfg.RateLimitPerMinute,
			ContentSecurityPolicy: apiContentSecurityPolicy,
		},
		logger.Middleware(log),
		logger.Recovery(log),
		telemetry.SentryMiddleware(),
		otelhttp.NewMiddleware(cfg.ServiceName),
	)

	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		"database": store,
		"events":   eventBus,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/api-docs/*", httpSwagger.Handler(httpSwagger.URL("/api-docs/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig)
	})

	srv := httpx.NewServer(":"+cfg.Port, r)

	go func() {
		log.Info("server listening",
			"addr", srv.Addr,
			"env", cfg.Environment,
			"docs", "http://localhost:"+cfg.Port+"/api-docs/index.html",
		)
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

// newEventBus returns the durable SQL bus when EVENTS_DATABASE_URL is set, leaving
// consumption to cmd/worker. Otherwise it returns an in-process bus with the
// activity subscriber registered here.
func newEventBus(ctx context.Context, cfg *config.Config, log logger.Logger) (*events.EventBus, error) {
	if cfg.EventsDatabaseURL != "" {
		bus, err := events.NewSQLBus(cfg.EventsDatabaseURL, cfg.ServiceName+"-consumer", log)
		if err != nil {
			return nil, err
		}
		log.Info("event bus ready", "transport", "sql", "durable", bus.Durable())
		return bus, nil
	}

	bus := events.NewInProcessBus(log)
	activity, err := subscribers.NewActivity(log)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	if err := subscribers.Register(ctx, bus, activity, log); err != nil {
		_ = bus.Close()
		return nil, err
	}
	log.Info("event bus ready", "transport", "in-process", "durable", bus.Durable())
	return bus, nil
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application) {
	itemApi.ItemRoutes(r, a)
}
