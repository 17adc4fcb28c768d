package worker

import (
	"context"
	"log"

	"catalog-service/internal/broker"
	"catalog-service/internal/models"
)

// CacheInvalidator is the slice of the catalog service the worker needs.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// InvalidationWorker consumes catalog mutation events published by the
// admin service and drops the listing cache in response. This bounds
// catalog staleness by admin writes as well as by the cache TTL.
type InvalidationWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	invalidator  CacheInvalidator
}

// NewInvalidationWorker creates a new invalidation worker
func NewInvalidationWorker(consumer *broker.Consumer, invalidator CacheInvalidator) *InvalidationWorker {
	eventHandler := broker.NewEventHandler()

	eventHandler.OnProductUpserted(func(ctx context.Context, event *models.ProductUpsertedEvent) error {
		log.Printf("Product upserted, invalidating cache: product=%d, slug=%s",
			event.ProductID, event.Slug)
		return invalidator.InvalidateCache(ctx)
	})
	eventHandler.OnProductDeleted(func(ctx context.Context, event *models.ProductDeletedEvent) error {
		log.Printf("Product deleted, invalidating cache: product=%d, slug=%s",
			event.ProductID, event.Slug)
		return invalidator.InvalidateCache(ctx)
	})
	eventHandler.OnCatalogFlush(func(ctx context.Context, event *models.CatalogFlushEvent) error {
		log.Printf("Catalog flush requested: reason=%s", event.Reason)
		return invalidator.InvalidateCache(ctx)
	})

	return &InvalidationWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
		invalidator:  invalidator,
	}
}

// Start starts the worker
func (w *InvalidationWorker) Start(ctx context.Context) error {
	log.Println("Starting cache invalidation worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *InvalidationWorker) Stop() error {
	log.Println("Stopping cache invalidation worker...")
	return w.consumer.Close()
}
