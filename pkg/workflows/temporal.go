// Package workflows hosts the Temporal client and worker. Workflow and
// activity definitions live with their bounded context, for example
// services/role/application/workflows.
package workflows

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	"go.temporal.io/sdk/interceptor"
	temporallog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"

	"github.com/ziplofy/storeconfig/pkg/config"
	"github.com/ziplofy/storeconfig/pkg/logger"
)

// Runs that have not finished within this window are abandoned. Seeding a
// store normally completes in well under a second.
const executionTimeout = 10 * time.Minute

// TemporalClient is a dialled Temporal client bound to one task queue.
type TemporalClient struct {
	Client    client.Client
	Namespace string
	TaskQueue string
	log       logger.Logger
}

// NewTemporalClient dials cfg.TemporalHostPort with tracing installed. Workers
// built from the client inherit the interceptor.
func NewTemporalClient(ctx context.Context, cfg *config.Config, log logger.Logger) (*TemporalClient, error) {
	tracing, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: otel.Tracer(cfg.ServiceName + "/temporal"),
	})
	if err != nil {
		return nil, fmt.Errorf("workflows: tracing interceptor: %w", err)
	}

	log = log.With("component", "temporal", "task_queue", cfg.TemporalTaskQueue)
	c, err := client.DialContext(ctx, client.Options{
		HostPort:     cfg.TemporalHostPort,
		Namespace:    cfg.TemporalNamespace,
		Identity:     cfg.ServiceName + "@" + cfg.ServiceVersion,
		Logger:       NewLogger(log),
		Interceptors: []interceptor.ClientInterceptor{tracing},
	})
	if err != nil {
		return nil, fmt.Errorf("workflows: dial %s: %w", cfg.TemporalHostPort, err)
	}
	log.Info("temporal connected", "host_port", cfg.TemporalHostPort, "namespace", cfg.TemporalNamespace)

	return &TemporalClient{
		Client:    c,
		Namespace: cfg.TemporalNamespace,
		TaskQueue: cfg.TemporalTaskQueue,
		log:       log,
	}, nil
}

// NewLogger routes Temporal SDK logging through log.
func NewLogger(log logger.Logger) temporallog.Logger {
	return temporallog.NewStructuredLogger(log.ToSlog())
}

// Registrar registers the workflows and activities of one bounded context.
type Registrar interface {
	Register(w worker.Registry)
}

// NewWorker returns a worker on the client's task queue with every registrar
// applied. Run it with Start and Stop.
func (tc *TemporalClient) NewWorker(registrars ...Registrar) worker.Worker {
	w := worker.New(tc.Client, tc.TaskQueue, worker.Options{
		MaxConcurrentActivityExecutionSize: 16,
		WorkerStopTimeout:                  15 * time.Second,
	})
	for _, r := range registrars {
		r.Register(w)
	}
	return w
}

// StartOptions returns the options Start uses. A second start for a running
// ID attaches to the existing run instead of failing, and a completed ID may
// be started again.
func (tc *TemporalClient) StartOptions(id string) client.StartWorkflowOptions {
	return client.StartWorkflowOptions{
		ID:                       id,
		TaskQueue:                tc.TaskQueue,
		WorkflowExecutionTimeout: executionTimeout,
		WorkflowIDReusePolicy:    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		WorkflowIDConflictPolicy: enumspb.WORKFLOW_ID_CONFLICT_POLICY_USE_EXISTING,
	}
}

// Start launches workflow fn under id.
func (tc *TemporalClient) Start(ctx context.Context, id string, fn any, args ...any) (client.WorkflowRun, error) {
	run, err := tc.Client.ExecuteWorkflow(ctx, tc.StartOptions(id), fn, args...)
	if err != nil {
		return nil, fmt.Errorf("workflows: start %s: %w", id, err)
	}
	tc.log.InfoContext(ctx, "workflow started", "workflow_id", run.GetID(), "run_id", run.GetRunID())
	return run, nil
}

// Ping asks the frontend service for its health.
func (tc *TemporalClient) Ping(ctx context.Context) error {
	if _, err := tc.Client.CheckHealth(ctx, &client.CheckHealthRequest{}); err != nil {
		return fmt.Errorf("workflows: health: %w", err)
	}
	return nil
}

// Close releases the connection.
func (tc *TemporalClient) Close() {
	tc.Client.Close()
	tc.log.Info("temporal closed")
}
