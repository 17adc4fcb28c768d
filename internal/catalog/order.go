package catalog

import (
	"sort"

	"github.com/shopspring/decimal"

	"catalog-service/internal/models"
)

// OrderByPrice re-sorts one fetched page in place by effective price,
// ascending for SortPriceAsc and descending for SortPriceDesc. Keys other
// than the two price sorts leave the storage-layer order untouched.
//
// Effective price is not a stored column, so pagination happens before
// price resolution: a row's page is determined by the default order and
// only its position within that page is corrected here. Cross-page price
// ordering is therefore approximate for result sets larger than one page.
func OrderByPrice(items []models.Product, key SortKey) {
	if !key.NeedsPriceSort() {
		return
	}

	type priced struct {
		product models.Product
		price   decimal.Decimal
	}

	rows := make([]priced, len(items))
	for i := range items {
		rows[i] = priced{product: items[i], price: ResolveEffectivePrice(&items[i])}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if key == SortPriceDesc {
			return rows[i].price.GreaterThan(rows[j].price)
		}
		return rows[i].price.LessThan(rows[j].price)
	})

	for i := range rows {
		items[i] = rows[i].product
	}
}
