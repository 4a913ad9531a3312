package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/itemstack/pkg/config"
	"github.com/ghuser/itemstack/pkg/events"
	"github.com/ghuser/itemstack/pkg/logger"
	"github.com/ghuser/itemstack/pkg/telemetry"
	"github.com/ghuser/itemstack/services/item/application/subscribers"
)

// The worker consumes item events from the durable SQL transport. With the
// in-process transport the api binary consumes its own events and no worker runs.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg, 0); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg).With("component", "worker")

	if cfg.EventsDatabaseURL == "" {
		log.Error("EVENTS_DATABASE_URL is required for the worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	eventBus, err := events.NewSQLBus(cfg.EventsDatabaseURL, cfg.ServiceName+"-consumer", log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	activity, err := subscribers.NewActivity(log)
	if err != nil {
		log.Error("failed to create activity subscriber", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	if err := subscribers.Register(ctx, eventBus, activity, log); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	<-ctx.Done()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("shutting down worker...")
}
