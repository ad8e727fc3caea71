package app

import (
	"github.com/gorilla/sessions"

	"github.com/ziplofy/storeconfig/pkg/auth"
	"github.com/ziplofy/storeconfig/pkg/cache"
	"github.com/ziplofy/storeconfig/pkg/config"
	"github.com/ziplofy/storeconfig/pkg/database"
	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/events"
	"github.com/ziplofy/storeconfig/pkg/logger"
	"github.com/ziplofy/storeconfig/pkg/telemetry"
	"github.com/ziplofy/storeconfig/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to every service's Routes function during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler; use the context
// methods and trace_id, span_id and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "tag created", "tag_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	Lists          cache.Lists
	TemporalClient *workflows.TemporalClient // nil unless TEMPORAL_ENABLED
	SessionStore   sessions.Store            // admin sessions; nil in worker process
	VisitorStore   sessions.Store            // storefront visitors; nil in worker process
	Tokens         *auth.Tokens
	Errors         *errhttp.Responder
	Metrics        *telemetry.Metrics
}

// Publisher returns the outbox publisher, or a nil interface when the
// process runs without an event bus.
func (a *Application) Publisher() events.TxPublisher {
	if a.EventBus == nil {
		return nil
	}
	return a.EventBus
}
