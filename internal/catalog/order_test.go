package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/models"
)

func pageOf(prices ...string) []models.Product {
	items := make([]models.Product, len(prices))
	for i, p := range prices {
		items[i] = models.Product{ID: int64(i + 1), BasePrice: price(p)}
	}
	return items
}

func TestOrderByPriceAscending(t *testing.T) {
	items := pageOf("30000", "10000", "20000")

	OrderByPrice(items, SortPriceAsc)

	require.Len(t, items, 3)
	assert.True(t, items[0].BasePrice.Equal(price("10000")))
	assert.True(t, items[1].BasePrice.Equal(price("20000")))
	assert.True(t, items[2].BasePrice.Equal(price("30000")))
}

func TestOrderByPriceDescending(t *testing.T) {
	items := pageOf("30000", "10000", "20000")

	OrderByPrice(items, SortPriceDesc)

	assert.True(t, items[0].BasePrice.Equal(price("30000")))
	assert.True(t, items[1].BasePrice.Equal(price("20000")))
	assert.True(t, items[2].BasePrice.Equal(price("10000")))
}

func TestOrderByPriceUsesEffectivePrice(t *testing.T) {
	// The first product's base price is higher, but a variant override
	// drops its effective price below the second product's.
	items := []models.Product{
		{ID: 1, BasePrice: price("100"), Variants: []models.Variant{{Price: override("10")}}},
		{ID: 2, BasePrice: price("50")},
	}

	OrderByPrice(items, SortPriceAsc)

	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
}

func TestOrderByPriceStableOnEqualPrices(t *testing.T) {
	items := pageOf("20000", "20000", "20000")

	OrderByPrice(items, SortPriceAsc)

	// Equal effective prices keep the storage-layer order.
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, int64(3), items[2].ID)
}

func TestOrderByPriceLeavesStoredSortsAlone(t *testing.T) {
	items := pageOf("30000", "10000", "20000")

	OrderByPrice(items, SortLatest)

	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, int64(2), items[1].ID)
	assert.Equal(t, int64(3), items[2].ID)
}
