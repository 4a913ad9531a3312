// Package subscribers consumes item change events.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/ghuser/itemstack/pkg/events"
	"github.com/ghuser/itemstack/pkg/logger"
	itemEvents "github.com/ghuser/itemstack/services/item/domain/events"
)

const meterName = "github.com/ghuser/itemstack/services/item/application/subscribers"

// Activity records every item change: one structured log line and one
// increment of item_events_total{topic}.
type Activity struct {
	log     logger.Logger
	counter metric.Int64Counter
}

// NewActivity returns an Activity using the global meter provider.
func NewActivity(log logger.Logger) (*Activity, error) {
	counter, err := otel.Meter(meterName).Int64Counter("item_events_total",
		metric.WithDescription("Item change events consumed, by topic"),
	)
	if err != nil {
		return nil, fmt.Errorf("create item_events_total counter: %w", err)
	}
	return &Activity{log: log, counter: counter}, nil
}

// Handle processes one item event. Handlers must be idempotent; the bus retries on error.
func (a *Activity) Handle(ctx context.Context, msg *message.Message) error {
	var evt itemEvents.ItemEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return fmt.Errorf("decode item event %s: %w", msg.UUID, err)
	}

	a.counter.Add(ctx, 1, metric.WithAttributes(attribute.String("topic", evt.Type)))
	a.log.InfoContext(ctx, "item activity",
		"type", evt.Type,
		"event_id", evt.EventID,
		"item_id", evt.ItemID,
		"name", evt.Name,
		"occurred_at", evt.OccurredAt,
	)
	return nil
}

// Register subscribes a to every item topic on bus. Subscriber errors are drained
// and logged until ctx is cancelled or the bus is closed.
func Register(ctx context.Context, bus *events.EventBus, a *Activity, log logger.Logger) error {
	for _, topic := range itemEvents.Topics {
		errCh, err := bus.Subscribe(ctx, topic, a.Handle)
		if err != nil {
			return err
		}

		go func(topic string) {
			for err := range errCh {
				log.ErrorContext(ctx, "subscriber error",
					"topic", topic,
					"error", err,
				)
			}
		}(topic)
	}

	log.Info("event subscribers registered",
		"topics", itemEvents.Topics,
		"durable", bus.Durable(),
	)
	return nil
}
