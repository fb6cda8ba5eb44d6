package main

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/nurtai/product-catalog/docs"
	"github.com/nurtai/product-catalog/internal/catalog"
	httpDelivery "github.com/nurtai/product-catalog/internal/catalog/delivery/http"
	"github.com/nurtai/product-catalog/internal/catalog/domain"
	"github.com/nurtai/product-catalog/internal/catalog/repository"
	"github.com/nurtai/product-catalog/kafka"
	"github.com/nurtai/product-catalog/pkg/logger"
	"github.com/nurtai/product-catalog/pkg/tracing"
)

func main() {
	serviceName := getEnv("OTEL_SERVICE_NAME", "catalog-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting catalog service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Open the record store
	repo, err := openStore()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open store")
	}
	traced := repository.NewTracedStore(repo)

	// Optional Kafka eventing
	var publisher *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize Kafka publisher, eventing disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Optional Redis response cache
	var redisClient *redis.Client
	if addr := getEnv("REDIS_ADDR", ""); addr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: addr})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Error().Err(err).Str("addr", addr).Msg("Redis unreachable, response cache disabled")
			redisClient = nil
		}
	}
	cache := httpDelivery.NewResponseCache(redisClient, 5*time.Minute)

	handler := catalog.InitializeHTTPHandler(traced, publisher, cache)

	httpPort := getEnv("HTTP_PORT", "8080")
	go startHTTPServer(handler, httpPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

// openStore selects the persistence variant from the environment:
// STORE_DRIVER=file persists to STORE_FILE, anything else is in-memory with
// MEMORY_FILLER_ROWS extra demo rows.
func openStore() (domain.Repository, error) {
	if getEnv("STORE_DRIVER", "memory") == "file" {
		path := getEnv("STORE_FILE", "database.json")
		store, err := repository.OpenFileStore(path)
		if err != nil {
			return nil, err
		}
		logger.Logger.Info().Str("path", path).Msg("Using file-backed store")
		return store, nil
	}

	store := repository.NewMemoryStore()
	if n, err := strconv.Atoi(getEnv("MEMORY_FILLER_ROWS", "40")); err == nil && n > 0 {
		store.Fill(n, rand.NewSource(time.Now().UnixNano()))
	}
	logger.Logger.Info().Msg("Using in-memory store")
	return store, nil
}

func startHTTPServer(handler *httpDelivery.CatalogHandler, port string) {
	router := mux.NewRouter()

	httpDelivery.RegisterMiddlewares(router, httpDelivery.DefaultMiddlewareConfig())

	handler.RegisterRoutes(router)

	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
