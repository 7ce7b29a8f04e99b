package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/pocket-shop/internal/config"
	"github.com/example/pocket-shop/internal/infrastructure/kafka"
	"github.com/example/pocket-shop/internal/infrastructure/store"
	"github.com/example/pocket-shop/internal/logging"
	"github.com/example/pocket-shop/internal/projection"
	"go.uber.org/zap"
)

const flushInterval = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logging.Component(logger, "activity")

	brokers := cfg.Brokers()
	if len(brokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("Starting cart activity projector",
		zap.Strings("kafka_brokers", brokers),
		zap.String("topic", cfg.KafkaTopic),
		zap.String("group", cfg.ConsumerGroup),
		zap.String("snapshot_backend", cfg.CredentialBackend))

	kv, closeStore, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		log.Fatal("Failed to open snapshot store", zap.Error(err))
	}
	defer closeStore()

	projector := projection.NewProjector(kv, log)

	consumer := kafka.NewConsumer(brokers, cfg.KafkaTopic, cfg.ConsumerGroup, log)
	defer consumer.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := consumer.Consume(ctx, projector.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Consumer error", zap.Error(err))
		}
	}()

	go func() {
		ticker := time.NewTicker(flushInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				flush(ctx, projector, log)
			}
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutting down")
	cancel()
	<-done

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	flush(flushCtx, projector, log)
}

func flush(ctx context.Context, projector *projection.Projector, log *zap.Logger) {
	snapshot := projector.Snapshot()
	for _, a := range snapshot {
		log.Info("Product activity",
			zap.Int("product_id", a.ProductID),
			zap.String("title", a.Title),
			zap.Int("added", a.Added),
			zap.Int("removed", a.Removed),
			zap.Int("in_cart", a.InCart))
	}
	if err := projector.Flush(ctx); err != nil {
		log.Warn("Failed to flush activity snapshot", zap.Error(err))
	}
}
