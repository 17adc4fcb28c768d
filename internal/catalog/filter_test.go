package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileDefaults(t *testing.T) {
	f := Compile(Query{}, DefaultLimits())

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 12, f.PageSize)
	assert.Equal(t, 0, f.Skip())
	assert.Equal(t, SortPopular, f.SortBy)
	assert.Empty(t, f.ExcludeSlug)
	assert.Empty(t, f.Variants)
	assert.Empty(t, f.Options)
	assert.False(t, f.MinPrice.Valid)
	assert.False(t, f.MaxPrice.Valid)
}

func TestCompileMalformedInputIgnored(t *testing.T) {
	f := Compile(Query{
		Page:     "abc",
		PageSize: "-5",
		MinPrice: "cheap",
		MaxPrice: "-10",
		SortBy:   "bogus",
		Variant:  "reddish",
		Option:   "Gift Wrap:",
	}, DefaultLimits())

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 12, f.PageSize)
	assert.False(t, f.MinPrice.Valid)
	assert.False(t, f.MaxPrice.Valid)
	assert.Equal(t, SortPopular, f.SortBy)
	assert.Empty(t, f.Variants)
	assert.Empty(t, f.Options)
}

func TestCompileVariantPairs(t *testing.T) {
	f := Compile(Query{Variant: "Color:Red,Size:L"}, DefaultLimits())

	require.Len(t, f.Variants, 2)
	assert.Equal(t, LabelValue{Label: "Color", Value: "Red"}, f.Variants[0])
	assert.Equal(t, LabelValue{Label: "Size", Value: "L"}, f.Variants[1])
}

func TestCompilePairsDropMalformedEntries(t *testing.T) {
	f := Compile(Query{Variant: "Color:Red,nodelimiter,:L, Size : XL "}, DefaultLimits())

	require.Len(t, f.Variants, 2)
	assert.Equal(t, LabelValue{Label: "Color", Value: "Red"}, f.Variants[0])
	assert.Equal(t, LabelValue{Label: "Size", Value: "XL"}, f.Variants[1])
}

func TestCompilePagination(t *testing.T) {
	f := Compile(Query{Page: "3", PageSize: "20"}, DefaultLimits())

	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 20, f.PageSize)
	assert.Equal(t, 40, f.Skip())
}

func TestCompilePageSizeCapped(t *testing.T) {
	f := Compile(Query{PageSize: "500"}, DefaultLimits())

	assert.Equal(t, 100, f.PageSize)
}

func TestCompilePriceBounds(t *testing.T) {
	f := Compile(Query{MinPrice: "40000", MaxPrice: "59999.99"}, DefaultLimits())

	require.True(t, f.MinPrice.Valid)
	require.True(t, f.MaxPrice.Valid)
	assert.True(t, f.MinPrice.Decimal.Equal(decimal.RequireFromString("40000")))
	assert.True(t, f.MaxPrice.Decimal.Equal(decimal.RequireFromString("59999.99")))
}

func TestCompileSortKeys(t *testing.T) {
	cases := map[string]SortKey{
		"popular":            SortPopular,
		"latest":             SortLatest,
		"top-sales":          SortTopSales,
		"price-low-to-high":  SortPriceAsc,
		"price-high-to-low":  SortPriceDesc,
		"":                   SortPopular,
		"alphabetical":       SortPopular,
		" price-low-to-high": SortPriceAsc,
	}

	for raw, want := range cases {
		f := Compile(Query{SortBy: raw}, DefaultLimits())
		assert.Equal(t, want, f.SortBy, "sortBy=%q", raw)
	}
}

func TestCacheKeyCoversFullTuple(t *testing.T) {
	base := Query{Category: "shirts", SortBy: "latest", Page: "2"}

	same := Compile(base, DefaultLimits()).CacheKey()
	assert.Equal(t, same, Compile(base, DefaultLimits()).CacheKey())

	otherPage := base
	otherPage.Page = "3"
	assert.NotEqual(t, same, Compile(otherPage, DefaultLimits()).CacheKey())

	otherSort := base
	otherSort.SortBy = "top-sales"
	assert.NotEqual(t, same, Compile(otherSort, DefaultLimits()).CacheKey())

	otherPrice := base
	otherPrice.MinPrice = "100"
	assert.NotEqual(t, same, Compile(otherPrice, DefaultLimits()).CacheKey())
}
