package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-service/config"
	"catalog-service/internal/api"
	"catalog-service/internal/broker"
	"catalog-service/internal/cache"
	"catalog-service/internal/catalog"
	"catalog-service/internal/service"
	"catalog-service/internal/store"
	"catalog-service/internal/util"
	"catalog-service/internal/worker"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting catalog service")

	tp, err := util.InitTracer("catalog-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	// The cache is an optimization: if Redis is down the service still
	// answers every query from storage with an in-process cache.
	var listingCache cache.Cache
	redisCache, err := cache.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Printf("Redis unavailable, falling back to in-process cache: %v", err)
		listingCache = cache.NewMemory()
	} else {
		defer redisCache.Close()
		listingCache = redisCache
		log.Println("Redis connected")
	}

	limits := catalog.Limits{
		DefaultPageSize: cfg.Catalog.DefaultPageSize,
		MaxPageSize:     cfg.Catalog.MaxPageSize,
	}
	catalogService := service.NewCatalogService(db, listingCache, limits, cfg.Catalog.CacheTTL)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	catalogConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicCatalog, cfg.Kafka.ConsumerGroup)
	invalidationWorker := worker.NewInvalidationWorker(catalogConsumer, catalogService)
	go func() {
		if err := invalidationWorker.Start(workerCtx); err != nil {
			log.Printf("Invalidation worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(catalogService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	invalidationWorker.Stop()

	log.Println("Server exited")
}
