package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/ziplofy/storeconfig/pkg/logger"
)

var fastRetry = RetryPolicy{Attempts: 3, BaseDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}

func setupTracer(t *testing.T) {
	t.Helper()
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
}

func TestRetryPolicy_StopsOnFirstSuccess(t *testing.T) {
	calls := 0
	err := fastRetry.run(context.Background(), message.NewMessage("id", nil), func(context.Context, *message.Message) error {
		calls++
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetryPolicy_RetriesUntilSuccess(t *testing.T) {
	calls, notified := 0, 0
	err := fastRetry.run(context.Background(), message.NewMessage("id", nil), func(context.Context, *message.Message) error {
		calls++
		if calls < 3 {
			return errors.New("redis unavailable")
		}
		return nil
	}, func(error, time.Duration) { notified++ })
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls != 3 || notified != 2 {
		t.Errorf("calls = %d notified = %d, want 3 and 2", calls, notified)
	}
}

func TestRetryPolicy_GivesUpAfterAttempts(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	err := fastRetry.run(context.Background(), message.NewMessage("id", nil), func(context.Context, *message.Message) error {
		calls++
		return boom
	}, func(error, time.Duration) {})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapping boom", err)
	}
	if calls != int(fastRetry.Attempts) {
		t.Errorf("calls = %d, want %d", calls, fastRetry.Attempts)
	}
}

func TestRetryPolicy_CancelledContextSkipsHandler(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := fastRetry.run(ctx, message.NewMessage("id", nil), func(context.Context, *message.Message) error {
		calls++
		return nil
	}, func(error, time.Duration) {})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if calls != 0 {
		t.Errorf("calls = %d, want 0", calls)
	}
}

func TestStartForwarder_RequiresOutbox(t *testing.T) {
	b := &EventBus{log: logger.Discard()}
	if err := b.StartForwarder(context.Background()); !errors.Is(err, ErrNotOutbox) {
		t.Fatalf("err = %v, want ErrNotOutbox", err)
	}
}

func TestPublishTx_RejectsNilTransaction(t *testing.T) {
	b := &EventBus{log: logger.Discard()}
	if err := b.PublishTx(context.Background(), nil, "tag.created", nil); err == nil {
		t.Fatal("expected error for nil tx")
	}
}

type tagCreated struct {
	TagID   string `json:"tagId"`
	StoreID string `json:"storeId"`
	Name    string `json:"name"`
}

func (e tagCreated) Store() string { return e.StoreID }

func TestNewEventMessage_StampsMetadata(t *testing.T) {
	setupTracer(t)
	ctx, span := otel.Tracer("test").Start(context.Background(), "create-tag")
	defer span.End()

	msg, err := NewEventMessage(ctx, tagCreated{TagID: "64b7f0c2a1e4d3b2c1a09f87", StoreID: "64b7f0c2a1e4d3b2c1a09f00", Name: "summer"})
	if err != nil {
		t.Fatalf("NewEventMessage: %v", err)
	}
	if msg.Metadata.Get(MetaEventID) == "" {
		t.Error("missing event_id")
	}
	if got := msg.Metadata.Get(MetaEventVersion); got != "1" {
		t.Errorf("event_version = %q", got)
	}
	if got := msg.Metadata.Get(MetaStoreID); got != "64b7f0c2a1e4d3b2c1a09f00" {
		t.Errorf("store_id = %q", got)
	}
	if _, err := time.Parse(time.RFC3339Nano, msg.Metadata.Get(MetaPublishedAt)); err != nil {
		t.Errorf("published_at: %v", err)
	}

	got := trace.SpanFromContext(extractTrace(context.Background(), msg)).SpanContext()
	if got.TraceID() != span.SpanContext().TraceID() {
		t.Errorf("trace id = %s, want %s", got.TraceID(), span.SpanContext().TraceID())
	}

	decoded, err := Decode[tagCreated](msg)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Name != "summer" {
		t.Errorf("name = %q", decoded.Name)
	}
}

func TestNewEventMessage_UnscopedPayload(t *testing.T) {
	msg, err := NewEventMessage(context.Background(), map[string]string{"k": "v"})
	if err != nil {
		t.Fatalf("NewEventMessage: %v", err)
	}
	if got := msg.Metadata.Get(MetaStoreID); got != "" {
		t.Errorf("store_id = %q, want empty", got)
	}
}

func TestDecode_InvalidPayload(t *testing.T) {
	if _, err := Decode[tagCreated](message.NewMessage("id", []byte("{not json"))); err == nil {
		t.Fatal("expected decode error")
	}
}
