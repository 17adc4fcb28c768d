package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"catalog-service/internal/cache"
	"catalog-service/internal/catalog"
	"catalog-service/internal/models"
	"catalog-service/internal/util"
)

// catalogStore is the slice of the storage layer the service needs; tests
// inject a fake.
type catalogStore interface {
	FetchCatalogPage(ctx context.Context, f catalog.Filter) ([]models.Product, int, error)
}

// CatalogService answers storefront listing queries. It is read-only and
// stateless per request; the only shared state is the injected cache.
type CatalogService struct {
	store  catalogStore
	cache  cache.Cache
	logger *zap.Logger
	limits catalog.Limits
	ttl    time.Duration
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store catalogStore, c cache.Cache, limits catalog.Limits, ttl time.Duration) *CatalogService {
	return &CatalogService{
		store:  store,
		cache:  c,
		logger: util.GetLogger(),
		limits: limits,
		ttl:    ttl,
	}
}

// CatalogPage is the paginated listing response. All fields are plain
// serializable values; nothing holds a handle to the storage layer.
type CatalogPage struct {
	Items       []models.Product `json:"items"`
	CurrentPage int              `json:"current_page"`
	PageSize    int              `json:"page_size"`
	TotalPages  int              `json:"total_pages"`
	TotalCount  int              `json:"total_count"`
}

// FetchCatalog compiles the raw query, serves from cache when possible,
// and otherwise fetches, price-sorts and caches one listing page.
//
// Cache failures degrade to a storage fetch; storage failures propagate
// to the caller unchanged, with no retry and no partial result.
func (s *CatalogService) FetchCatalog(ctx context.Context, q catalog.Query) (*CatalogPage, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.FetchCatalog")
	defer span.End()

	f := catalog.Compile(q, s.limits)
	util.CatalogRequestsTotal.WithLabelValues(string(f.SortBy)).Inc()

	key := f.CacheKey()
	if page, ok := s.readCache(ctx, key); ok {
		util.CatalogCacheHits.Inc()
		return page, nil
	}
	util.CatalogCacheMisses.Inc()

	queryStart := time.Now()
	items, total, err := s.store.FetchCatalogPage(ctx, f)
	util.CatalogQueryLatency.Observe(time.Since(queryStart).Seconds())
	if err != nil {
		util.CatalogRequestsFailed.WithLabelValues("storage_error").Inc()
		return nil, fmt.Errorf("failed to fetch catalog page: %w", err)
	}

	if f.SortBy.NeedsPriceSort() {
		sortStart := time.Now()
		catalog.OrderByPrice(items, f.SortBy)
		util.CatalogPriceSortLatency.Observe(time.Since(sortStart).Seconds())
	}

	if items == nil {
		items = []models.Product{}
	}

	page := &CatalogPage{
		Items:       items,
		CurrentPage: f.Page,
		PageSize:    f.PageSize,
		TotalPages:  totalPages(total, f.PageSize),
		TotalCount:  total,
	}

	s.writeCache(ctx, key, page)
	return page, nil
}

// InvalidateCache drops every cached listing page. Called by the
// invalidation worker when the admin service publishes a mutation event.
func (s *CatalogService) InvalidateCache(ctx context.Context) error {
	util.CatalogCacheInvalidations.Inc()
	if err := s.cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("cache invalidation failed: %w", err)
	}
	s.logger.Info("Catalog cache invalidated")
	return nil
}

func (s *CatalogService) readCache(ctx context.Context, key string) (*CatalogPage, bool) {
	encoded, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("Cache read failed, serving from storage", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var page CatalogPage
	if err := json.Unmarshal(encoded, &page); err != nil {
		s.logger.Warn("Discarding undecodable cache entry",
			zap.String("key", key),
			zap.Error(err))
		return nil, false
	}
	return &page, true
}

func (s *CatalogService) writeCache(ctx context.Context, key string, page *CatalogPage) {
	encoded, err := json.Marshal(page)
	if err != nil {
		s.logger.Warn("Failed to encode page for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, encoded, s.ttl); err != nil {
		s.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func totalPages(total, pageSize int) int {
	if total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
