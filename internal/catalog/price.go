package catalog

import (
	"github.com/shopspring/decimal"

	"catalog-service/internal/models"
)

// ResolveEffectivePrice computes the minimum purchasable price of a
// product: the minimum of its base price, every variant price override,
// and every option price override (product-level or nested under a
// variant). A product with no variants and no options resolves to its
// base price. Comparisons are exact decimal comparisons.
func ResolveEffectivePrice(p *models.Product) decimal.Decimal {
	min := p.BasePrice
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.Price.Valid && v.Price.Decimal.LessThan(min) {
			min = v.Price.Decimal
		}
		for j := range v.Options {
			if o := &v.Options[j]; o.Price.Valid && o.Price.Decimal.LessThan(min) {
				min = o.Price.Decimal
			}
		}
	}
	for i := range p.Options {
		if o := &p.Options[i]; o.Price.Valid && o.Price.Decimal.LessThan(min) {
			min = o.Price.Decimal
		}
	}
	return min
}

// MatchesPriceRange reports whether any of the product's price sources
// falls inside [min, max], bounds inclusive, missing bounds unbounded.
// The sources are: the base price (only when the product has no
// variants), every variant price, and every option price.
//
// This is deliberately an existential match across sources, not a check
// on the resolved minimum: a product is shown whenever some purchasable
// configuration is affordable. Keep this function and
// ResolveEffectivePrice separate; they answer different questions.
func MatchesPriceRange(p *models.Product, min, max decimal.NullDecimal) bool {
	if !min.Valid && !max.Valid {
		return true
	}

	if len(p.Variants) == 0 && inRange(p.BasePrice, min, max) {
		return true
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		if v.Price.Valid && inRange(v.Price.Decimal, min, max) {
			return true
		}
		for j := range v.Options {
			if o := &v.Options[j]; o.Price.Valid && inRange(o.Price.Decimal, min, max) {
				return true
			}
		}
	}
	for i := range p.Options {
		if o := &p.Options[i]; o.Price.Valid && inRange(o.Price.Decimal, min, max) {
			return true
		}
	}
	return false
}

func inRange(d decimal.Decimal, min, max decimal.NullDecimal) bool {
	if min.Valid && d.LessThan(min.Decimal) {
		return false
	}
	if max.Valid && d.GreaterThan(max.Decimal) {
		return false
	}
	return true
}
