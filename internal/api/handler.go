package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"catalog-service/internal/catalog"
	"catalog-service/internal/service"
	"catalog-service/internal/util"
)

// Handler contains HTTP handlers
type Handler struct {
	catalogService *service.CatalogService
}

// NewHandler creates a new HTTP handler
func NewHandler(catalogService *service.CatalogService) *Handler {
	return &Handler{
		catalogService: catalogService,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/catalog", h.listCatalog)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listCatalog handles the storefront listing query. Query parameters map
// 1:1 onto the raw catalog query bag; malformed values are ignored by the
// compiler, so this endpoint never rejects a request over a bad filter.
func (h *Handler) listCatalog(c *gin.Context) {
	q := catalog.Query{
		ExcludeSlug: c.Query("excludeSlug"),
		Category:    c.Query("category"),
		SubCategory: c.Query("subCategory"),
		Search:      c.Query("q"),
		Variant:     c.Query("variant"),
		Option:      c.Query("option"),
		MinPrice:    c.Query("minPrice"),
		MaxPrice:    c.Query("maxPrice"),
		SortBy:      c.Query("sortBy"),
		Page:        c.Query("page"),
		PageSize:    c.Query("pageSize"),
	}

	page, err := h.catalogService.FetchCatalog(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch catalog",
		})
		return
	}

	c.JSON(http.StatusOK, page)
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
