package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// SortKey identifies a catalog sort order.
type SortKey string

const (
	SortPopular   SortKey = "popular"
	SortLatest    SortKey = "latest"
	SortTopSales  SortKey = "top-sales"
	SortPriceAsc  SortKey = "price-low-to-high"
	SortPriceDesc SortKey = "price-high-to-low"
)

// NeedsPriceSort reports whether the key orders by effective price, which
// is not a stored column and must be applied in memory after the fetch.
func (k SortKey) NeedsPriceSort() bool {
	return k == SortPriceAsc || k == SortPriceDesc
}

// Query is the raw, loosely-typed parameter bag delivered by the
// storefront. Every field is a string exactly as it arrived; Compile turns
// it into a typed Filter.
type Query struct {
	ExcludeSlug string
	Category    string
	SubCategory string
	Search      string
	Variant     string
	Option      string
	MinPrice    string
	MaxPrice    string
	SortBy      string
	Page        string
	PageSize    string
}

// LabelValue is one required label/value membership test. Multiple pairs
// are ANDed together, never ORed.
type LabelValue struct {
	Label string
	Value string
}

// Limits bounds pagination during compilation.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
}

// DefaultLimits returns the storefront defaults.
func DefaultLimits() Limits {
	return Limits{DefaultPageSize: 12, MaxPageSize: 100}
}

// Filter is the normalized predicate set for one catalog query. Zero
// values mean "no constraint" for that dimension.
type Filter struct {
	ExcludeSlug     string
	CategorySlug    string
	SubCategorySlug string
	Search          string
	Variants        []LabelValue
	Options         []LabelValue
	MinPrice        decimal.NullDecimal
	MaxPrice        decimal.NullDecimal
	SortBy          SortKey
	Page            int
	PageSize        int
}

// Compile normalizes a raw query into a Filter. Malformed values are
// dropped, not rejected: a broken filter narrows results, it never fails
// the request.
func Compile(q Query, limits Limits) Filter {
	if limits.DefaultPageSize <= 0 {
		limits.DefaultPageSize = DefaultLimits().DefaultPageSize
	}
	if limits.MaxPageSize <= 0 {
		limits.MaxPageSize = DefaultLimits().MaxPageSize
	}

	f := Filter{
		ExcludeSlug:     strings.TrimSpace(q.ExcludeSlug),
		CategorySlug:    strings.TrimSpace(q.Category),
		SubCategorySlug: strings.TrimSpace(q.SubCategory),
		Search:          strings.TrimSpace(q.Search),
		Variants:        parsePairs(q.Variant),
		Options:         parsePairs(q.Option),
		MinPrice:        parsePrice(q.MinPrice),
		MaxPrice:        parsePrice(q.MaxPrice),
		SortBy:          parseSortKey(q.SortBy),
	}

	f.Page = parsePositiveInt(q.Page, 1)
	f.PageSize = parsePositiveInt(q.PageSize, limits.DefaultPageSize)
	if f.PageSize > limits.MaxPageSize {
		f.PageSize = limits.MaxPageSize
	}

	return f
}

// Skip returns the row offset for the requested page.
func (f Filter) Skip() int {
	return (f.Page - 1) * f.PageSize
}

// CacheKey returns a deterministic key covering the full normalized
// filter/sort/page tuple. Two queries that compile to the same Filter
// share a cache entry.
func (f Filter) CacheKey() string {
	var b strings.Builder
	b.WriteString("catalog:v1")
	fmt.Fprintf(&b, "|ex=%s", f.ExcludeSlug)
	fmt.Fprintf(&b, "|cat=%s", f.CategorySlug)
	fmt.Fprintf(&b, "|sub=%s", f.SubCategorySlug)
	fmt.Fprintf(&b, "|q=%s", strings.ToLower(f.Search))
	fmt.Fprintf(&b, "|var=%s", joinPairs(f.Variants))
	fmt.Fprintf(&b, "|opt=%s", joinPairs(f.Options))
	fmt.Fprintf(&b, "|min=%s", nullDecimalString(f.MinPrice))
	fmt.Fprintf(&b, "|max=%s", nullDecimalString(f.MaxPrice))
	fmt.Fprintf(&b, "|sort=%s", f.SortBy)
	fmt.Fprintf(&b, "|page=%d|size=%d", f.Page, f.PageSize)
	return b.String()
}

// parsePairs splits a comma-separated list of label:value pairs. Entries
// without both a label and a value are dropped.
func parsePairs(raw string) []LabelValue {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var pairs []LabelValue
	for _, entry := range strings.Split(raw, ",") {
		label, value, ok := strings.Cut(entry, ":")
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		value = strings.TrimSpace(value)
		if label == "" || value == "" {
			continue
		}
		pairs = append(pairs, LabelValue{Label: label, Value: value})
	}
	return pairs
}

func parsePrice(raw string) decimal.NullDecimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func parseSortKey(raw string) SortKey {
	switch SortKey(strings.TrimSpace(raw)) {
	case SortLatest:
		return SortLatest
	case SortTopSales:
		return SortTopSales
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortPopular
	}
}

func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func joinPairs(pairs []LabelValue) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.Label+":"+p.Value)
	}
	return strings.Join(parts, ",")
}

func nullDecimalString(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
