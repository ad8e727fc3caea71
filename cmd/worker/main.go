package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ziplofy/storeconfig/pkg/app"
	"github.com/ziplofy/storeconfig/pkg/cache"
	"github.com/ziplofy/storeconfig/pkg/config"
	"github.com/ziplofy/storeconfig/pkg/database"
	"github.com/ziplofy/storeconfig/pkg/events"
	"github.com/ziplofy/storeconfig/pkg/logger"
	"github.com/ziplofy/storeconfig/pkg/telemetry"
	"github.com/ziplofy/storeconfig/pkg/workflows"
	discountSubscribers "github.com/ziplofy/storeconfig/services/discount/application/subscribers"
	policySubscribers "github.com/ziplofy/storeconfig/services/policy/application/subscribers"
	roleServices "github.com/ziplofy/storeconfig/services/role/application/services"
	roleWorkflows "github.com/ziplofy/storeconfig/services/role/application/workflows"
	tagSubscribers "github.com/ziplofy/storeconfig/services/tag/application/subscribers"
)

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

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		log.Error("failed to create metric instruments", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	db, err := database.New(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer db.Close() //nolint:errcheck
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	a := &app.Application{
		Config:   cfg,
		Db:       db,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
		Lists:    cache.NewListCache(redisClient, cfg.ListCacheTTL),
		Metrics:  metrics,
	}

	if err := registerSubscribers(ctx, a); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	if cfg.TemporalEnabled {
		tc, err := workflows.NewTemporalClient(ctx, cfg, log)
		if err != nil {
			log.Error("failed to initialize temporal client", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer tc.Close()
		a.TemporalClient = tc

		w := tc.NewWorker(roleWorkflows.NewRegistrar(roleServices.New(a).Role))
		if err := w.Start(); err != nil {
			log.Error("failed to start temporal worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer w.Stop()
		log.Info("temporal worker started", "task_queue", cfg.TemporalTaskQueue)
	}

	<-ctx.Done()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("shutting down worker...")
}

// registerSubscribers wires the cache invalidators of every bounded context
// that publishes events. Handlers must be idempotent: the bus redelivers on
// failure.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	var subs []events.Subscription
	subs = append(subs, tagSubscribers.Subscriptions(a.Lists, a.Logger)...)
	subs = append(subs, policySubscribers.Subscriptions(a.Lists, a.Logger)...)
	subs = append(subs, discountSubscribers.Subscriptions(a.Lists, a.Logger)...)

	topics, err := a.EventBus.SubscribeAll(ctx, subs...)
	if err != nil {
		return err
	}
	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

