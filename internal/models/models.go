package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product statuses
const (
	ProductStatusAvailable = "AVAILABLE"
	ProductStatusDraft     = "DRAFT"
	ProductStatusArchived  = "ARCHIVED"
)

// Product represents a catalog product with its nested pricing sources.
// Variants, Options and Media are populated by the store's eager-loading
// pass, not by the row scan itself.
type Product struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Slug        string          `db:"slug" json:"slug"`
	Description string          `db:"description" json:"description"`
	BasePrice   decimal.Decimal `db:"base_price" json:"base_price"`
	Stock       int             `db:"stock" json:"stock"`
	MinOrder    int             `db:"min_order" json:"min_order"`
	MaxOrder    int             `db:"max_order" json:"max_order"`
	Status      string          `db:"status" json:"status"`
	ViewCount   int64           `db:"view_count" json:"view_count"`
	SaleCount   int64           `db:"sale_count" json:"sale_count"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`

	Variants []Variant `db:"-" json:"variants"`
	Options  []Option  `db:"-" json:"options"`
	Media    []Media   `db:"-" json:"media"`

	ReviewCount   int64           `db:"-" json:"review_count"`
	ReviewAverage decimal.Decimal `db:"-" json:"review_average"`
}

// Variant is a purchasable variation of a product ("Size"/"L") with an
// optional price override and its own nested options.
type Variant struct {
	ID        int64               `db:"id" json:"id"`
	ProductID int64               `db:"product_id" json:"product_id"`
	Label     string              `db:"label" json:"label"`
	Value     string              `db:"value" json:"value"`
	Price     decimal.NullDecimal `db:"price" json:"price"`
	Stock     int                 `db:"stock" json:"stock"`
	MinOrder  int                 `db:"min_order" json:"min_order"`
	MaxOrder  int                 `db:"max_order" json:"max_order"`

	Options []Option `db:"-" json:"options"`
	Media   []Media  `db:"-" json:"media"`
}

// Option is an add-on attached either to a product directly or to one of
// its variants, never both. ProductID and VariantID are mutually exclusive.
type Option struct {
	ID        int64               `db:"id" json:"id"`
	ProductID *int64              `db:"product_id" json:"product_id,omitempty"`
	VariantID *int64              `db:"variant_id" json:"variant_id,omitempty"`
	Label     string              `db:"label" json:"label"`
	Value     string              `db:"value" json:"value"`
	Price     decimal.NullDecimal `db:"price" json:"price"`
	MinOrder  int                 `db:"min_order" json:"min_order"`
	MaxOrder  int                 `db:"max_order" json:"max_order"`
}

// Media is an ordered image or video entry owned by a product or variant.
type Media struct {
	ID        int64  `db:"id" json:"id"`
	ProductID *int64 `db:"product_id" json:"product_id,omitempty"`
	VariantID *int64 `db:"variant_id" json:"variant_id,omitempty"`
	URL       string `db:"url" json:"url"`
	Kind      string `db:"kind" json:"kind"`
	Position  int    `db:"position" json:"position"`
}

// Review is a customer review; the catalog only surfaces the aggregate.
type Review struct {
	ID        int64     `db:"id" json:"id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	Rating    int       `db:"rating" json:"rating"`
	Comment   string    `db:"comment" json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ReviewSummary is the per-product review aggregate shown on listing rows.
type ReviewSummary struct {
	ProductID int64           `db:"product_id" json:"product_id"`
	Count     int64           `db:"count" json:"count"`
	Average   decimal.Decimal `db:"average" json:"average"`
}

// Category groups products; referenced by slug in catalog filters.
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

// SubCategory is a second-level grouping under a category.
type SubCategory struct {
	ID         int64  `db:"id" json:"id"`
	CategoryID int64  `db:"category_id" json:"category_id"`
	Name       string `db:"name" json:"name"`
	Slug       string `db:"slug" json:"slug"`
}
