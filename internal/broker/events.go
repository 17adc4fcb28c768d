package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"catalog-service/internal/models"
)

// EventPublisher publishes catalog events. The catalog engine itself is
// read-only; publishing is used by operational tooling (and by the admin
// service, which shares this topic).
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishCatalogFlush publishes a CatalogFlush event forcing every
// catalog replica to drop its cache.
func (ep *EventPublisher) PublishCatalogFlush(ctx context.Context, event *models.CatalogFlushEvent) error {
	return ep.producer.PublishEvent(ctx, "catalog-flush", event)
}

// EventHandler routes catalog mutation events to registered callbacks.
type EventHandler struct {
	onProductUpserted func(context.Context, *models.ProductUpsertedEvent) error
	onProductDeleted  func(context.Context, *models.ProductDeletedEvent) error
	onCatalogFlush    func(context.Context, *models.CatalogFlushEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnProductUpserted registers a handler for ProductUpserted events
func (eh *EventHandler) OnProductUpserted(handler func(context.Context, *models.ProductUpsertedEvent) error) {
	eh.onProductUpserted = handler
}

// OnProductDeleted registers a handler for ProductDeleted events
func (eh *EventHandler) OnProductDeleted(handler func(context.Context, *models.ProductDeletedEvent) error) {
	eh.onProductDeleted = handler
}

// OnCatalogFlush registers a handler for CatalogFlush events
func (eh *EventHandler) OnCatalogFlush(handler func(context.Context, *models.CatalogFlushEvent) error) {
	eh.onCatalogFlush = handler
}

// HandleMessage routes messages to appropriate handlers. Unknown event
// types are ignored; the topic is shared with collaborators.
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	log.Printf("Handling event: type=%s, id=%s", baseEvent.EventType, baseEvent.EventID)

	switch baseEvent.EventType {
	case models.EventTypeProductUpserted:
		if eh.onProductUpserted != nil {
			var event models.ProductUpsertedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ProductUpserted event: %w", err)
			}
			return eh.onProductUpserted(ctx, &event)
		}

	case models.EventTypeProductDeleted:
		if eh.onProductDeleted != nil {
			var event models.ProductDeletedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ProductDeleted event: %w", err)
			}
			return eh.onProductDeleted(ctx, &event)
		}

	case models.EventTypeCatalogFlush:
		if eh.onCatalogFlush != nil {
			var event models.CatalogFlushEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal CatalogFlush event: %w", err)
			}
			return eh.onCatalogFlush(ctx, &event)
		}
	}

	return nil
}
