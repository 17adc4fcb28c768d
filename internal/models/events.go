package models

import "time"

// Event types published on the catalog topic by the admin mutation path.
// The catalog engine only consumes them to invalidate its cache; it never
// mutates catalog data itself.
const (
	EventTypeProductUpserted = "CATALOG_PRODUCT_UPSERTED"
	EventTypeProductDeleted  = "CATALOG_PRODUCT_DELETED"
	EventTypeCatalogFlush    = "CATALOG_FLUSH"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductUpsertedEvent published after an admin creates or updates a
// product, variant or option.
type ProductUpsertedEvent struct {
	BaseEvent
	ProductID int64  `json:"product_id"`
	Slug      string `json:"slug"`
}

// ProductDeletedEvent published after an admin removes a product.
type ProductDeletedEvent struct {
	BaseEvent
	ProductID int64  `json:"product_id"`
	Slug      string `json:"slug"`
}

// CatalogFlushEvent forces a full cache invalidation, used by operators
// after bulk imports.
type CatalogFlushEvent struct {
	BaseEvent
	Reason string `json:"reason"`
}
