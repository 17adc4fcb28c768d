package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_requests_total",
		Help: "Total number of catalog fetch requests",
	}, []string{"sort"})

	CatalogRequestsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_requests_failed_total",
		Help: "Total number of failed catalog fetch requests",
	}, []string{"reason"})

	CatalogCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_hits_total",
		Help: "Total number of catalog cache hits",
	})

	CatalogCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_misses_total",
		Help: "Total number of catalog cache misses",
	})

	CatalogCacheInvalidations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalog_cache_invalidations_total",
		Help: "Total number of catalog cache invalidations",
	})

	CatalogQueryLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_query_latency_seconds",
		Help:    "Latency of catalog storage queries (page fetch plus count)",
		Buckets: prometheus.DefBuckets,
	})

	CatalogPriceSortLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_price_sort_latency_seconds",
		Help:    "Latency of the in-memory price resort of one page",
		Buckets: prometheus.DefBuckets,
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
