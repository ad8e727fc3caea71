package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Metadata keys stamped on every event.
const (
	MetaEventID      = "event_id"
	MetaEventVersion = "event_version"
	MetaStoreID      = "store_id"
	MetaPublishedAt  = "published_at"

	eventVersion = "1"
)

// StoreScoped payloads name the store they belong to. The bus copies it into
// MetaStoreID so consumers can filter without decoding.
type StoreScoped interface {
	Store() string
}

// NewEventMessage encodes payload as JSON and stamps the event metadata and
// the trace context carried by ctx.
func NewEventMessage(ctx context.Context, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("events: encode %T: %w", payload, err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set(MetaEventID, uuid.NewString())
	msg.Metadata.Set(MetaEventVersion, eventVersion)
	msg.Metadata.Set(MetaPublishedAt, time.Now().UTC().Format(time.RFC3339Nano))
	if s, ok := payload.(StoreScoped); ok && s.Store() != "" {
		msg.Metadata.Set(MetaStoreID, s.Store())
	}
	injectTrace(ctx, msg)
	return msg, nil
}

// Decode unmarshals a payload written by NewEventMessage.
func Decode[T any](msg *message.Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, fmt.Errorf("events: decode %s into %T: %w", msg.UUID, v, err)
	}
	return v, nil
}

func injectTrace(ctx context.Context, msg *message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for k, v := range carrier {
		msg.Metadata.Set(k, v)
	}
}

// extractTrace returns parent carrying the publisher's span context.
func extractTrace(parent context.Context, msg *message.Message) context.Context {
	return otel.GetTextMapPropagator().Extract(parent, propagation.MapCarrier(msg.Metadata))
}
