package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/vpetrenko/ecom_backend/internal/cache"
	"github.com/vpetrenko/ecom_backend/internal/config"
	"github.com/vpetrenko/ecom_backend/internal/db"
	"github.com/vpetrenko/ecom_backend/internal/es"
	"github.com/vpetrenko/ecom_backend/internal/handlers"
	"github.com/vpetrenko/ecom_backend/internal/logging"
	loggingmw "github.com/vpetrenko/ecom_backend/internal/middleware/logging"
	"github.com/vpetrenko/ecom_backend/internal/mykafka"
	"github.com/vpetrenko/ecom_backend/internal/service"
	httpserver "github.com/vpetrenko/ecom_backend/internal/transport/http"
)

const productCacheTTL = time.Minute

func main() {
	cfg := config.Load()
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := context.Background()

	gdb, err := db.Open(ctx, db.DSN(cfg.DBPath))
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	if err := db.Seed(gdb); err != nil {
		log.Fatalf("database seed failed: %v", err)
	}

	var producer *mykafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = mykafka.NewProducer(cfg.KafkaBrokers)
	} else {
		logger.Warn("KAFKA_BROKERS not set, event publishing disabled")
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	var productCache *cache.Cache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("redis init failed: %v", err)
		}
		productCache = cache.New(rdb, productCacheTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, product list caching disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{DB: gdb, JWTSecret: cfg.JWTSecret, Producer: producer},
		ProductHandler: &handlers.ProductHandler{DB: gdb, Producer: producer, ES: esClient, Cache: productCache},
		OrderHandler:   &handlers.OrderHandler{Svc: &service.OrderService{DB: gdb}, Producer: producer},
		SearchHandler:  &handlers.SearchHandler{ES: esClient},
		JWTSecret:      cfg.JWTSecret,
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	logger.Info("shutdown complete")
}
