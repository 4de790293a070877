package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/ecommerce-refarch/product-catalog-service/internal/catalog/application"
	catalogHTTP "github.com/ecommerce-refarch/product-catalog-service/internal/catalog/infrastructure/http"
	catalogKafka "github.com/ecommerce-refarch/product-catalog-service/internal/catalog/infrastructure/kafka"
	catalogDB "github.com/ecommerce-refarch/product-catalog-service/internal/catalog/infrastructure/postgres"
	"github.com/ecommerce-refarch/product-catalog-service/internal/config"
	"github.com/ecommerce-refarch/product-catalog-service/pkg/idempotency"
	"github.com/ecommerce-refarch/product-catalog-service/pkg/logging"
	"github.com/ecommerce-refarch/product-catalog-service/pkg/shutdown"
	"github.com/ecommerce-refarch/product-catalog-service/pkg/tracing"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	// Prices travel as JSON numbers, matching the upstream order service.
	decimal.MarshalJSONWithoutQuotes = true

	tp, err := tracing.Init(ctx, "product-catalog-service", cfg.OtelEndpoint)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		log.Error("pg connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := catalogDB.NewRepository(log, pool)
	if err := store.InitSchema(ctx); err != nil {
		log.Error("schema init failed", "err", err)
		os.Exit(1)
	}

	var idem *idempotency.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		idem = idempotency.NewStore(rdb, cfg.DedupTTL)
	}

	products := application.NewProductService(log, store)

	if cfg.KafkaEnabled {
		publisher := catalogKafka.NewPublisher(log, cfg.KafkaBrokers, cfg.ChangeStateTopic)
		defer publisher.Close()

		validation := application.NewValidationWorkflow(log, store, publisher)
		restoration := application.NewRestorationWorkflow(log, store)
		consumer := catalogKafka.NewConsumer(log, catalogKafka.ConsumerConfig{
			Brokers:       cfg.KafkaBrokers,
			Group:         cfg.ConsumerGroup,
			ValidateTopic: cfg.ValidateItemsTopic,
			RestoreTopic:  cfg.RestoreStockTopic,
		}, validation, restoration, idem)

		go func() {
			log.Info("connecting to broker", "topics", []string{cfg.ValidateItemsTopic, cfg.RestoreStockTopic})
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("consumer stopped", "err", err)
				cancel()
			}
		}()
	}

	handler := catalogHTTP.NewHandler(log, products, []byte(cfg.TokenSecret))
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: handler.Routes()}
	go func() {
		log.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	drainCtx, drainCancel := shutdown.Drain(cfg.ShutdownTimeout)
	defer drainCancel()
	_ = server.Shutdown(drainCtx)
	log.Info("product-catalog-service shutdown")
}
