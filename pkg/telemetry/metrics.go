package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "storeconfig"

// Metrics holds the domain metric instruments. A nil *Metrics is valid and
// records nothing, which keeps services usable in tests without a provider.
type Metrics struct {
	RecordsCreated metric.Int64Counter
	RecordsDeleted metric.Int64Counter
	Conflicts      metric.Int64Counter
	CodesIssued    metric.Int64Counter
	CartMutations  metric.Int64Counter
}

// NewMetrics creates all metric instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.RecordsCreated, err = meter.Int64Counter("storeconfig.records.created",
		metric.WithDescription("Configuration records created, by kind"))
	if err != nil {
		return nil, err
	}

	m.RecordsDeleted, err = meter.Int64Counter("storeconfig.records.deleted",
		metric.WithDescription("Configuration records deleted, by kind"))
	if err != nil {
		return nil, err
	}

	m.Conflicts, err = meter.Int64Counter("storeconfig.records.conflicts",
		metric.WithDescription("Writes rejected by a uniqueness constraint, by kind"))
	if err != nil {
		return nil, err
	}

	m.CodesIssued, err = meter.Int64Counter("storeconfig.security.codes_issued",
		metric.WithDescription("Store security codes issued"))
	if err != nil {
		return nil, err
	}

	m.CartMutations, err = meter.Int64Counter("storeconfig.storefront.mutations",
		metric.WithDescription("Storefront cart and wishlist mutations, by action"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Created counts one created record of kind.
func (m *Metrics) Created(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.RecordsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// Deleted counts one deleted record of kind.
func (m *Metrics) Deleted(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.RecordsDeleted.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// Conflict counts one rejected duplicate of kind.
func (m *Metrics) Conflict(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.Conflicts.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// CodeIssued counts one generated security code.
func (m *Metrics) CodeIssued(ctx context.Context) {
	if m == nil {
		return
	}
	m.CodesIssued.Add(ctx, 1)
}

// Mutation counts one storefront mutation.
func (m *Metrics) Mutation(ctx context.Context, list, action string) {
	if m == nil {
		return
	}
	m.CartMutations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("list", list),
		attribute.String("action", action),
	))
}
