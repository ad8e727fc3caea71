// Package events carries store configuration change events through a
// transactional outbox in PostgreSQL.
//
// Repositories write events with PublishTx inside the same transaction as the
// row they change. In outbox mode those writes land on an internal queue and a
// forwarder running in the API process relays them to their real topics. The
// worker subscribes with a shared consumer group, so each event is handled by
// one worker instance.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"
	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver "pgx"

	"github.com/ziplofy/storeconfig/pkg/config"
	"github.com/ziplofy/storeconfig/pkg/logger"
)

const (
	outboxTopic   = "storeconfig_outbox"
	outboxGroup   = "storeconfig-outbox-relay"
	drainTimeout  = 30 * time.Second
	errBufferSize = 64
)

var (
	ErrNotOutbox      = errors.New("events: bus was opened without the outbox")
	ErrRelayStarted   = errors.New("events: outbox relay already running")
	errNilTransaction = errors.New("events: nil transaction")
)

// TxPublisher writes events inside a caller-owned transaction.
type TxPublisher interface {
	PublishTx(ctx context.Context, tx *sql.Tx, topic string, payload any) error
}

// EventBus publishes and consumes events stored in PostgreSQL.
type EventBus struct {
	db     *sql.DB
	log    logger.Logger
	wlog   *watermillLogger
	group  string
	outbox bool
	retry  RetryPolicy

	publisher  message.Publisher
	subscriber *watermillsql.Subscriber
	relay      *forwarder.Forwarder

	wg sync.WaitGroup
}

// NewEventBus opens a bus that publishes straight to topics. The worker uses
// it to consume.
func NewEventBus(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return open(cfg, log, false)
}

// NewEventBusWithForwarder opens a bus whose writes go through the outbox
// queue. Call StartForwarder to relay them.
func NewEventBusWithForwarder(cfg *config.Config, log logger.Logger) (*EventBus, error) {
	return open(cfg, log, true)
}

func open(cfg *config.Config, log logger.Logger, outbox bool) (*EventBus, error) {
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("events: open db: %w", err)
	}
	b := &EventBus{
		db:     db,
		log:    log.With("component", "events"),
		group:  cfg.ServiceName + "-consumer",
		outbox: outbox,
		retry:  DefaultRetryPolicy,
	}
	b.wlog = &watermillLogger{log: b.log}

	pub, err := b.sqlPublisher(nil)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	b.publisher = b.wrap(pub)

	b.subscriber, err = b.sqlSubscriber(b.group)
	if err != nil {
		_ = pub.Close()
		_ = db.Close()
		return nil, err
	}
	return b, nil
}

// sqlPublisher returns a publisher on the bus handle, or on tx when given.
// Transactional publishers never create the schema: it exists once the bus is
// open, and DDL inside tx would block concurrent writers.
func (b *EventBus) sqlPublisher(tx *sql.Tx) (*watermillsql.Publisher, error) {
	var (
		pub *watermillsql.Publisher
		err error
	)
	if tx != nil {
		pub, err = watermillsql.NewPublisher(tx, watermillsql.PublisherConfig{
			SchemaAdapter: watermillsql.DefaultPostgreSQLSchema{},
		}, b.wlog)
	} else {
		pub, err = watermillsql.NewPublisher(b.db, watermillsql.PublisherConfig{
			SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: true,
		}, b.wlog)
	}
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}
	return pub, nil
}

func (b *EventBus) sqlSubscriber(group string) (*watermillsql.Subscriber, error) {
	sub, err := watermillsql.NewSubscriber(b.db, watermillsql.SubscriberConfig{
		SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
		OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
		InitializeSchema: true,
		ConsumerGroup:    group,
	}, b.wlog)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber %s: %w", group, err)
	}
	return sub, nil
}

// wrap routes publishes through the outbox topic when the bus is in outbox mode.
func (b *EventBus) wrap(pub message.Publisher) message.Publisher {
	if !b.outbox {
		return pub
	}
	return forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: outboxTopic})
}

// StartForwarder runs the outbox relay until ctx is done. It returns once the
// relay is accepting messages.
func (b *EventBus) StartForwarder(ctx context.Context) error {
	if !b.outbox {
		return ErrNotOutbox
	}
	if b.relay != nil {
		return ErrRelayStarted
	}

	sub, err := b.sqlSubscriber(outboxGroup)
	if err != nil {
		return err
	}
	target, err := b.sqlPublisher(nil)
	if err != nil {
		_ = sub.Close()
		return err
	}
	relay, err := forwarder.NewForwarder(sub, target, b.wlog, forwarder.Config{ForwarderTopic: outboxTopic})
	if err != nil {
		_ = target.Close()
		_ = sub.Close()
		return fmt.Errorf("events: new forwarder: %w", err)
	}
	b.relay = relay

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		b.log.InfoContext(ctx, "outbox relay started")
		if err := relay.Run(ctx); err != nil {
			b.log.ErrorContext(ctx, "outbox relay stopped", "error", err)
			return
		}
		b.log.InfoContext(ctx, "outbox relay stopped")
	}()

	select {
	case <-relay.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: waiting for outbox relay: %w", ctx.Err())
	}
}

// PublishTx writes payload to topic on tx. The event becomes visible only if
// tx commits.
func (b *EventBus) PublishTx(ctx context.Context, tx *sql.Tx, topic string, payload any) error {
	if tx == nil {
		return errNilTransaction
	}
	msg, err := NewEventMessage(ctx, payload)
	if err != nil {
		return err
	}
	pub, err := b.sqlPublisher(tx)
	if err != nil {
		return err
	}
	if err := b.wrap(pub).Publish(topic, msg); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish %s: %w", topic, err)
	}
	b.log.DebugContext(ctx, "event staged", "topic", topic, "event_id", msg.Metadata.Get(MetaEventID))
	return nil
}

// Publish sends already-built messages outside any transaction.
func (b *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	for _, msg := range msgs {
		injectTrace(ctx, msg)
	}
	if err := b.publisher.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish %s: %w", topic, err)
	}
	return nil
}

// Ping reports whether the event store is reachable.
func (b *EventBus) Ping(ctx context.Context) error {
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping: %w", err)
	}
	return nil
}

// Close stops consumption, waits for in-flight handlers and releases the
// database handle.
func (b *EventBus) Close() error {
	var errs []error
	if err := b.subscriber.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close subscriber: %w", err))
	}
	if b.relay != nil {
		if err := b.relay.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: close relay: %w", err))
		}
	}

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(drainTimeout):
		b.log.Error("handlers still running after drain timeout", "timeout", drainTimeout)
	}

	if err := b.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close publisher: %w", err))
	}
	if err := b.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close db: %w", err))
	}
	return errors.Join(errs...)
}
