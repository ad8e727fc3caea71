package telemetry

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"

	"github.com/ziplofy/storeconfig/pkg/config"
)

// Headers that must never leave the process with an event.
var scrubbedHeaders = []string{"Authorization", "Cookie", "Set-Cookie", "X-Api-Key"}

// SetupSentry initialises crash reporting. An empty DSN disables it.
func SetupSentry(cfg *config.Config) error {
	if cfg.SentryDSN == "" {
		return nil
	}
	rate := 0.2
	if cfg.IsProduction() {
		rate = 0.05
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          cfg.ServiceName + "@" + cfg.ServiceVersion,
		ServerName:       cfg.ServiceName,
		TracesSampleRate: rate,
		SendDefaultPII:   false,
		BeforeSend:       scrubEvent,
	})
	if err != nil {
		return fmt.Errorf("telemetry: sentry init: %w", err)
	}
	return nil
}

// scrubEvent strips credentials and request bodies. Bodies may carry store
// access codes.
func scrubEvent(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	if event.Request == nil {
		return event
	}
	for _, h := range scrubbedHeaders {
		delete(event.Request.Headers, h)
	}
	event.Request.Cookies = ""
	event.Request.Data = ""
	return event
}

// CaptureError reports err on the request hub bound by SentryMiddleware, or
// the global hub outside a request. The storeId route parameter, when
// present, is attached as the "store_id" tag.
func CaptureError(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		if rc := chi.RouteContext(ctx); rc != nil {
			if store := rc.URLParam("storeId"); store != "" {
				scope.SetTag("store_id", store)
			}
			if pattern := rc.RoutePattern(); pattern != "" {
				scope.SetTag("route", pattern)
			}
		}
		hub.CaptureException(err)
	})
}

// SentryFlush waits up to 2s for queued events.
func SentryFlush() {
	sentry.Flush(2 * time.Second)
}

// SentryMiddleware binds a hub to each request and reports panics. It
// re-panics so logger.Recovery still writes the 500.
func SentryMiddleware() func(http.Handler) http.Handler {
	return sentryhttp.New(sentryhttp.Options{Repanic: true, Timeout: 2 * time.Second}).Handle
}
