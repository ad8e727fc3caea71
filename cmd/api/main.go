package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ziplofy/storeconfig/docs/swagger"
	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/pkg/auth"
	"github.com/ziplofy/storeconfig/pkg/cache"
	"github.com/ziplofy/storeconfig/pkg/config"
	"github.com/ziplofy/storeconfig/pkg/database"
	"github.com/ziplofy/storeconfig/pkg/errhttp"
	"github.com/ziplofy/storeconfig/pkg/events"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	"github.com/ziplofy/storeconfig/pkg/logger"
	"github.com/ziplofy/storeconfig/pkg/telemetry"
	discountApi "github.com/ziplofy/storeconfig/services/discount/application/api"
	policyApi "github.com/ziplofy/storeconfig/services/policy/application/api"
	roleApi "github.com/ziplofy/storeconfig/services/role/application/api"
	securityApi "github.com/ziplofy/storeconfig/services/security/application/api"
	storefrontApi "github.com/ziplofy/storeconfig/services/storefront/application/api"
	tagApi "github.com/ziplofy/storeconfig/services/tag/application/api"
)

// @title						Ziplofy Store Configuration API
// @version					1.0
// @description				Per-store configuration for the Ziplofy admin dashboard and storefront carts.
// @contact.name				Ziplofy Platform
// @license.name				MIT
// @license.url				https://opensource.org/licenses/MIT
// @host						localhost:8080
// @BasePath					/api
// @schemes					http https
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrHelpShown) {
		return
	}
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)
	log.Debug("effective config\n" + cfg.String())

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		log.Error("failed to create metric instruments", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}

	db, err := database.New(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer db.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	secureCookie := cfg.IsProduction()
	sessionStore := auth.NewSessionStore(redisClient.Client(),
		[]byte(cfg.SessionAuthKey), []byte(cfg.SessionEncryptionKey), secureCookie, auth.AdminSessionMaxAge)
	visitorStore := auth.NewSessionStore(redisClient.Client(),
		[]byte(cfg.SessionAuthKey), []byte(cfg.SessionEncryptionKey), secureCookie, auth.VisitorSessionMaxAge)
	log.Info("session stores initialized", "backend", "redis")

	a := &app.Application{
		Config:       cfg,
		Db:           db,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		Lists:        cache.NewListCache(redisClient, cfg.ListCacheTTL),
		SessionStore: sessionStore,
		VisitorStore: visitorStore,
		Tokens:       auth.NewTokens(cfg.JWTSecret, cfg.JWTTokenTTL),
		Errors:       errhttp.NewResponder(log, cfg.IsProduction()),
		Metrics:      metrics,
	}

	sc := httpx.ServerConfigFrom(cfg)
	r := httpx.NewRouter(sc, httpx.Middlewares{
		Recovery: logger.Recovery(log),
		Sentry:   telemetry.SentryMiddleware(),
		Tracing:  otelhttp.NewMiddleware(cfg.ServiceName),
		Logger:   logger.Middleware(log),
	})

	r.Get("/livez", httpx.Live)
	r.Get("/health", httpx.HealthHandler(cfg.ServiceVersion, httpx.HealthChecks{
		"database": db,
		"redis":    redisClient,
		"events":   eventBus,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.Protect(a.Tokens, sessionStore, log))
			registerAdminRoutes(r, a)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.Visitor(visitorStore, log))
			storefrontApi.StorefrontRoutes(r, a)
		})
	})

	srv := httpx.NewServer(sc, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerAdminRoutes mounts the authenticated configuration routes under /api.
// Add each new bounded context's route function here.
func registerAdminRoutes(r chi.Router, a *app.Application) {
	tagApi.TagRoutes(r, a)
	policyApi.PolicyRoutes(r, a)
	discountApi.DiscountRoutes(r, a)
	roleApi.RoleRoutes(r, a)
	securityApi.SecurityRoutes(r, a)
}
