package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cenkalti/backoff/v5"
)

// HandlerFunc processes one event. Returning an error retries it.
type HandlerFunc func(ctx context.Context, msg *message.Message) error

// Subscription binds a handler to a topic. Each bounded context exposes its
// own list and the worker registers them all.
type Subscription struct {
	Topic   string
	Handler HandlerFunc
}

// RetryPolicy bounds how often a failing handler is re-run before the event
// is nacked.
type RetryPolicy struct {
	Attempts  uint
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// DefaultRetryPolicy tries three times, waiting 1s then 2s.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, BaseDelay: time.Second, MaxDelay: 10 * time.Second}

func (p RetryPolicy) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.BaseDelay
	b.MaxInterval = p.MaxDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	return b
}

// run calls handler until it succeeds, attempts run out or ctx ends.
func (p RetryPolicy) run(ctx context.Context, msg *message.Message, handler HandlerFunc, onRetry func(error, time.Duration)) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if err := ctx.Err(); err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, handler(ctx, msg)
	},
		backoff.WithBackOff(p.backOff()),
		backoff.WithMaxTries(p.Attempts),
		backoff.WithNotify(onRetry),
	)
	if err != nil {
		return fmt.Errorf("events: handler gave up on %s after %d attempts: %w", msg.UUID, p.Attempts, err)
	}
	return nil
}

// Subscribe consumes topic in the background. Each message runs under the
// retry policy and is acked on success or nacked once retries are spent.
// Failures are reported on the returned channel, which closes when the
// subscription ends. Callers must drain it.
func (b *EventBus) Subscribe(ctx context.Context, topic string, handler HandlerFunc) (<-chan error, error) {
	msgs, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe %s: %w", topic, err)
	}
	errs := make(chan error, errBufferSize)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer close(errs)
		for msg := range msgs {
			b.handle(extractTrace(ctx, msg), topic, msg, handler, errs)
		}
	}()
	return errs, nil
}

func (b *EventBus) handle(ctx context.Context, topic string, msg *message.Message, handler HandlerFunc, errs chan<- error) {
	log := b.log.With("topic", topic, "event_id", msg.Metadata.Get(MetaEventID), "store_id", msg.Metadata.Get(MetaStoreID))
	err := b.retry.run(ctx, msg, handler, func(err error, next time.Duration) {
		log.WarnContext(ctx, "handler failed, retrying", "next_delay", next, "error", err)
	})
	if err == nil {
		msg.Ack()
		return
	}
	msg.Nack()
	select {
	case errs <- err:
	default:
		log.ErrorContext(ctx, "error channel full, dropping", "error", err)
	}
}

// SubscribeAll registers every subscription and logs their failures. It
// returns the topics now being consumed.
func (b *EventBus) SubscribeAll(ctx context.Context, subs ...Subscription) ([]string, error) {
	topics := make([]string, 0, len(subs))
	for _, sub := range subs {
		errs, err := b.Subscribe(ctx, sub.Topic, sub.Handler)
		if err != nil {
			return topics, err
		}
		go func(topic string) {
			for err := range errs {
				b.log.ErrorContext(ctx, "event dropped", "topic", topic, "error", err)
			}
		}(sub.Topic)
		topics = append(topics, sub.Topic)
	}
	return topics, nil
}
