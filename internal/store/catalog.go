package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/errgroup"

	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
)

// productColumns is the listing-row projection. Nested variants, options
// and media are loaded in a second pass.
const productColumns = `p.id, p.name, p.slug, p.description, p.base_price,
	p.stock, p.min_order, p.max_order, p.status, p.view_count, p.sale_count,
	p.created_at`

// buildCatalogPredicate translates a compiled filter into a WHERE clause
// with ? placeholders. The clause is built exactly once per request and
// shared by the page query and the count query, so the two can never
// drift apart.
func buildCatalogPredicate(f catalog.Filter) (string, []interface{}) {
	where := []string{"p.status = ?"}
	args := []interface{}{models.ProductStatusAvailable}

	if f.ExcludeSlug != "" {
		where = append(where, "p.slug <> ?")
		args = append(args, f.ExcludeSlug)
	}

	if f.CategorySlug != "" {
		where = append(where, `EXISTS (
			SELECT 1 FROM product_categories pc
			JOIN categories c ON c.id = pc.category_id
			WHERE pc.product_id = p.id AND c.slug = ?)`)
		args = append(args, f.CategorySlug)
	}

	if f.SubCategorySlug != "" {
		where = append(where, `EXISTS (
			SELECT 1 FROM product_sub_categories psc
			JOIN sub_categories sc ON sc.id = psc.sub_category_id
			WHERE psc.product_id = p.id AND sc.slug = ?)`)
		args = append(args, f.SubCategorySlug)
	}

	if f.Search != "" {
		where = append(where, "(p.name ILIKE ? OR p.description ILIKE ?)")
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}

	// Each pair is an independent EXISTS, giving AND semantics across pairs.
	for _, pair := range f.Variants {
		where = append(where, `EXISTS (
			SELECT 1 FROM variants v
			WHERE v.product_id = p.id AND v.label = ? AND v.value = ?)`)
		args = append(args, pair.Label, pair.Value)
	}

	for _, pair := range f.Options {
		where = append(where, `EXISTS (
			SELECT 1 FROM options o
			LEFT JOIN variants ov ON ov.id = o.variant_id
			WHERE (o.product_id = p.id OR ov.product_id = p.id)
			AND o.label = ? AND o.value = ?)`)
		args = append(args, pair.Label, pair.Value)
	}

	if clause, priceArgs := buildPricePredicate(f); clause != "" {
		where = append(where, clause)
		args = append(args, priceArgs...)
	}

	return strings.Join(where, " AND "), args
}

// buildPricePredicate mirrors catalog.MatchesPriceRange in SQL: a product
// matches when any price source lies in the requested range — the base
// price when no variants exist, any variant price, or any option price.
func buildPricePredicate(f catalog.Filter) (string, []interface{}) {
	if !f.MinPrice.Valid && !f.MaxPrice.Valid {
		return "", nil
	}

	bound := func(col string) (string, []interface{}) {
		var parts []string
		var args []interface{}
		if f.MinPrice.Valid {
			parts = append(parts, col+" >= ?")
			args = append(args, f.MinPrice.Decimal)
		}
		if f.MaxPrice.Valid {
			parts = append(parts, col+" <= ?")
			args = append(args, f.MaxPrice.Decimal)
		}
		return strings.Join(parts, " AND "), args
	}

	baseBound, baseArgs := bound("p.base_price")
	variantBound, variantArgs := bound("v.price")
	optionBound, optionArgs := bound("o.price")

	clause := fmt.Sprintf(`(
		(NOT EXISTS (SELECT 1 FROM variants v WHERE v.product_id = p.id) AND %s)
		OR EXISTS (
			SELECT 1 FROM variants v
			WHERE v.product_id = p.id AND v.price IS NOT NULL AND %s)
		OR EXISTS (
			SELECT 1 FROM options o
			LEFT JOIN variants ov ON ov.id = o.variant_id
			WHERE (o.product_id = p.id OR ov.product_id = p.id)
			AND o.price IS NOT NULL AND %s))`,
		baseBound, variantBound, optionBound)

	args := make([]interface{}, 0, len(baseArgs)+len(variantArgs)+len(optionArgs))
	args = append(args, baseArgs...)
	args = append(args, variantArgs...)
	args = append(args, optionArgs...)
	return clause, args
}

// orderClause maps a sort key to the storage-layer ORDER BY. Every sort
// breaks ties on the primary key so repeated requests paginate
// deterministically. The two price sorts fetch in the default order; the
// in-memory resort happens after the fetch.
func orderClause(key catalog.SortKey) string {
	switch key {
	case catalog.SortLatest:
		return "p.created_at DESC, p.id DESC"
	case catalog.SortTopSales:
		return "p.sale_count DESC, p.id DESC"
	default:
		return "p.view_count DESC, p.id DESC"
	}
}

// FetchCatalogPage returns one page of available products matching the
// filter, with variants, options, media and review summaries attached,
// plus the total count of matching rows ignoring pagination. The page and
// count queries run concurrently over the same predicate.
func (s *Store) FetchCatalogPage(ctx context.Context, f catalog.Filter) ([]models.Product, int, error) {
	where, args := buildCatalogPredicate(f)

	pageQuery := fmt.Sprintf(
		"SELECT %s FROM products p WHERE %s ORDER BY %s LIMIT ? OFFSET ?",
		productColumns, where, orderClause(f.SortBy))
	pageArgs := make([]interface{}, 0, len(args)+2)
	pageArgs = append(pageArgs, args...)
	pageArgs = append(pageArgs, f.PageSize, f.Skip())

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products p WHERE %s", where)

	var products []models.Product
	var total int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.SelectContext(gctx, &products, s.db.Rebind(pageQuery), pageArgs...)
	})
	g.Go(func() error {
		return s.db.GetContext(gctx, &total, s.db.Rebind(countQuery), args...)
	})
	if err := g.Wait(); err != nil {
		return nil, 0, fmt.Errorf("catalog fetch failed: %w", err)
	}

	if err := s.loadAssociations(ctx, products); err != nil {
		return nil, 0, fmt.Errorf("failed to load product associations: %w", err)
	}

	return products, total, nil
}

// loadAssociations eagerly loads the nested variants, options, media and
// review summaries for one page of products.
func (s *Store) loadAssociations(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	productIDs := make([]int64, len(products))
	byID := make(map[int64]*models.Product, len(products))
	for i := range products {
		productIDs[i] = products[i].ID
		byID[products[i].ID] = &products[i]
	}

	variants, err := s.selectVariants(ctx, productIDs)
	if err != nil {
		return err
	}

	variantIDs := make([]int64, len(variants))
	variantIdx := make(map[int64]int, len(variants))
	for i := range variants {
		variantIDs[i] = variants[i].ID
		variantIdx[variants[i].ID] = i
	}

	options, err := s.selectOptions(ctx, productIDs, variantIDs)
	if err != nil {
		return err
	}
	media, err := s.selectMedia(ctx, productIDs, variantIDs)
	if err != nil {
		return err
	}

	// Attach nested options and media to variants first, then group the
	// fully-assembled variants under their products.
	for _, o := range options {
		if o.VariantID != nil {
			if i, ok := variantIdx[*o.VariantID]; ok {
				variants[i].Options = append(variants[i].Options, o)
			}
		}
	}
	for _, m := range media {
		if m.VariantID != nil {
			if i, ok := variantIdx[*m.VariantID]; ok {
				variants[i].Media = append(variants[i].Media, m)
			}
		}
	}

	for i := range variants {
		if p, ok := byID[variants[i].ProductID]; ok {
			p.Variants = append(p.Variants, variants[i])
		}
	}
	for _, o := range options {
		if o.VariantID == nil && o.ProductID != nil {
			if p, ok := byID[*o.ProductID]; ok {
				p.Options = append(p.Options, o)
			}
		}
	}
	for _, m := range media {
		if m.VariantID == nil && m.ProductID != nil {
			if p, ok := byID[*m.ProductID]; ok {
				p.Media = append(p.Media, m)
			}
		}
	}

	summaries, err := s.selectReviewSummaries(ctx, productIDs)
	if err != nil {
		return err
	}
	for _, sum := range summaries {
		if p, ok := byID[sum.ProductID]; ok {
			p.ReviewCount = sum.Count
			p.ReviewAverage = sum.Average
		}
	}

	return nil
}

func (s *Store) selectVariants(ctx context.Context, productIDs []int64) ([]models.Variant, error) {
	query, args, err := sqlx.In(`
		SELECT id, product_id, label, value, price, stock, min_order, max_order
		FROM variants WHERE product_id IN (?) ORDER BY id`, productIDs)
	if err != nil {
		return nil, err
	}

	var variants []models.Variant
	err = s.db.SelectContext(ctx, &variants, s.db.Rebind(query), args...)
	return variants, err
}

func (s *Store) selectOptions(ctx context.Context, productIDs, variantIDs []int64) ([]models.Option, error) {
	// Variant IN-lists reject empty slices; substitute an impossible ID.
	if len(variantIDs) == 0 {
		variantIDs = []int64{-1}
	}

	query, args, err := sqlx.In(`
		SELECT id, product_id, variant_id, label, value, price, min_order, max_order
		FROM options WHERE product_id IN (?) OR variant_id IN (?) ORDER BY id`,
		productIDs, variantIDs)
	if err != nil {
		return nil, err
	}

	var options []models.Option
	err = s.db.SelectContext(ctx, &options, s.db.Rebind(query), args...)
	return options, err
}

func (s *Store) selectMedia(ctx context.Context, productIDs, variantIDs []int64) ([]models.Media, error) {
	if len(variantIDs) == 0 {
		variantIDs = []int64{-1}
	}

	query, args, err := sqlx.In(`
		SELECT id, product_id, variant_id, url, kind, position
		FROM media WHERE product_id IN (?) OR variant_id IN (?)
		ORDER BY position, id`, productIDs, variantIDs)
	if err != nil {
		return nil, err
	}

	var media []models.Media
	err = s.db.SelectContext(ctx, &media, s.db.Rebind(query), args...)
	return media, err
}

func (s *Store) selectReviewSummaries(ctx context.Context, productIDs []int64) ([]models.ReviewSummary, error) {
	query, args, err := sqlx.In(`
		SELECT product_id, COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average
		FROM reviews WHERE product_id IN (?) GROUP BY product_id`, productIDs)
	if err != nil {
		return nil, err
	}

	var summaries []models.ReviewSummary
	err = s.db.SelectContext(ctx, &summaries, s.db.Rebind(query), args...)
	return summaries, err
}
