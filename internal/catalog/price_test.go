package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"catalog-service/internal/models"
)

func price(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func override(v string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: price(v), Valid: true}
}

func bound(v string) decimal.NullDecimal {
	return override(v)
}

func noBound() decimal.NullDecimal {
	return decimal.NullDecimal{}
}

func TestResolveEffectivePriceBaseOnly(t *testing.T) {
	p := models.Product{BasePrice: price("50000")}

	assert.True(t, ResolveEffectivePrice(&p).Equal(price("50000")))
}

func TestResolveEffectivePriceTakesMinimumAcrossAllSources(t *testing.T) {
	p := models.Product{
		BasePrice: price("50000"),
		Variants: []models.Variant{
			{Label: "Size", Value: "L", Price: override("45000")},
			{
				Label: "Size", Value: "XL", Price: override("60000"),
				Options: []models.Option{
					{Label: "Fabric", Value: "Linen", Price: override("42000")},
				},
			},
			{Label: "Size", Value: "M"}, // no override
		},
		Options: []models.Option{
			{Label: "Gift Wrap", Value: "Yes", Price: override("48000")},
		},
	}

	resolved := ResolveEffectivePrice(&p)
	assert.True(t, resolved.Equal(price("42000")), "got %s", resolved)
	assert.True(t, resolved.LessThanOrEqual(p.BasePrice))
}

func TestResolveEffectivePriceIgnoresAbsentOverrides(t *testing.T) {
	p := models.Product{
		BasePrice: price("30000"),
		Variants:  []models.Variant{{Label: "Size", Value: "M"}},
		Options:   []models.Option{{Label: "Gift Wrap", Value: "Yes"}},
	}

	assert.True(t, ResolveEffectivePrice(&p).Equal(price("30000")))
}

func TestResolveEffectivePriceExactDecimals(t *testing.T) {
	p := models.Product{
		BasePrice: price("19.99"),
		Variants:  []models.Variant{{Price: override("19.989")}},
	}

	assert.True(t, ResolveEffectivePrice(&p).Equal(price("19.989")))
}

func TestMatchesPriceRangeBasePriceWithoutVariants(t *testing.T) {
	p := models.Product{BasePrice: price("50000")}

	assert.True(t, MatchesPriceRange(&p, bound("40000"), bound("60000")))
	assert.False(t, MatchesPriceRange(&p, bound("60000"), bound("70000")))
}

func TestMatchesPriceRangeIsExistentialAcrossSources(t *testing.T) {
	// One overpriced variant and one cheap nested option: the product
	// still matches because some purchasable configuration is in range.
	p := models.Product{
		BasePrice: price("50000"),
		Variants: []models.Variant{
			{
				Price: override("90000"),
				Options: []models.Option{
					{Price: override("45000")},
				},
			},
		},
	}

	assert.True(t, MatchesPriceRange(&p, bound("40000"), bound("60000")))
}

func TestMatchesPriceRangeIgnoresBasePriceWhenVariantsExist(t *testing.T) {
	p := models.Product{
		BasePrice: price("50000"),
		Variants:  []models.Variant{{Price: override("90000")}},
	}

	// Base price is in range but is not purchasable once variants exist.
	assert.False(t, MatchesPriceRange(&p, bound("40000"), bound("60000")))
}

func TestMatchesPriceRangeInclusiveBounds(t *testing.T) {
	p := models.Product{BasePrice: price("50000")}

	assert.True(t, MatchesPriceRange(&p, bound("50000"), bound("50000")))
}

func TestMatchesPriceRangeOpenBounds(t *testing.T) {
	p := models.Product{BasePrice: price("50000")}

	assert.True(t, MatchesPriceRange(&p, noBound(), noBound()))
	assert.True(t, MatchesPriceRange(&p, bound("40000"), noBound()))
	assert.True(t, MatchesPriceRange(&p, noBound(), bound("60000")))
	assert.False(t, MatchesPriceRange(&p, bound("60000"), noBound()))
	assert.False(t, MatchesPriceRange(&p, noBound(), bound("40000")))
}

func TestMatchAndResolutionAgreeOnSingleSource(t *testing.T) {
	// With exactly one price source the existential match and the
	// resolved minimum answer the same question.
	p := models.Product{BasePrice: price("123.45")}

	resolved := ResolveEffectivePrice(&p)
	lo, hi := bound("100"), bound("200")
	inRange := resolved.GreaterThanOrEqual(lo.Decimal) && resolved.LessThanOrEqual(hi.Decimal)

	assert.Equal(t, inRange, MatchesPriceRange(&p, lo, hi))
}
