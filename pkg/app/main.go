package app

import (
	"github.com/ghuser/itemstack/pkg/database"
	"github.com/ghuser/itemstack/pkg/events"
	"github.com/ghuser/itemstack/pkg/logger"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service route registration calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler; use slog's context methods
// and trace_id, span_id, and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "processing item", "item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	// Store is the single long-lived item store handle. It may not be connected yet.
	Store    *database.Store
	Logger   logger.Logger
	EventBus *events.EventBus // nil disables item event publishing

	// AdminInterfaceURL is reported by the connection-info endpoint.
	AdminInterfaceURL string
}
