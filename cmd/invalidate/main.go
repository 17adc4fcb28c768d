// Command invalidate publishes a CatalogFlush event, forcing every
// catalog replica to drop its listing cache. Operators run it after bulk
// imports or manual data fixes that bypass the admin service.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"

	"catalog-service/config"
	"catalog-service/internal/broker"
	"catalog-service/internal/models"
)

func main() {
	reason := flag.String("reason", "manual", "why the cache is being flushed")
	flag.Parse()

	cfg := config.Load()

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicCatalog)
	defer producer.Close()

	publisher := broker.NewEventPublisher(producer)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	event := &models.CatalogFlushEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeCatalogFlush,
			Timestamp: time.Now(),
		},
		Reason: *reason,
	}

	if err := publisher.PublishCatalogFlush(ctx, event); err != nil {
		log.Fatalf("Failed to publish flush event: %v", err)
	}

	log.Printf("Catalog flush published: id=%s, reason=%s", event.EventID, *reason)
}
