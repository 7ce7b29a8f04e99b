package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/pocket-shop/internal/api"
	"github.com/example/pocket-shop/internal/auth"
	"github.com/example/pocket-shop/internal/command"
	"github.com/example/pocket-shop/internal/config"
	"github.com/example/pocket-shop/internal/domain/cart"
	"github.com/example/pocket-shop/internal/domain/product"
	"github.com/example/pocket-shop/internal/domain/user"
	"github.com/example/pocket-shop/internal/infrastructure/kafka"
	"github.com/example/pocket-shop/internal/infrastructure/store"
	"github.com/example/pocket-shop/internal/logging"
	"github.com/example/pocket-shop/internal/query"
	"github.com/example/pocket-shop/internal/screen"
	"go.uber.org/zap"
)

// cartID names the single on-device cart.
const cartID = "device"

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
	log := logging.Component(logger, "api")

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Info("Starting pocket-shop",
		zap.String("port", cfg.Port),
		zap.String("credential_backend", cfg.CredentialBackend),
		zap.Strings("kafka_brokers", cfg.Brokers()))

	// Credential store
	kv, closeStore, err := store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		log.Fatal("Failed to open credential store", zap.Error(err))
	}
	defer closeStore()
	if fileStore, ok := kv.(*store.FileStore); ok {
		log.Info("Using credential file", zap.String("path", fileStore.Path()))
	}

	// Catalog
	catalog, err := product.NewBundledSource(cfg.CatalogLatency)
	if err != nil {
		log.Fatal("Failed to load bundled catalog", zap.Error(err))
	}

	// Cart, with optional event stream
	cartOpts := []cart.Option{cart.WithLogger(logging.Component(logger, "cart"))}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		producer := kafka.NewProducer(brokers, cfg.KafkaTopic)
		defer producer.Close()
		cartOpts = append(cartOpts, cart.WithPublisher(producer))
		log.Info("Publishing cart events", zap.String("topic", cfg.KafkaTopic))
	}
	cartStore := cart.NewStore(cartID, cartOpts...)

	// Navigation starts on the splash screen
	screens := screen.NewRouter(screen.Splash, logging.Component(logger, "screen"))
	defer screens.Close()
	screens.NavigateAfter(cfg.SplashDelay, screen.Login)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.SessionExpiry)
	userSvc := user.NewService(kv, logging.Component(logger, "user"))

	cmdHandler := command.NewHandler(cartStore, catalog, logging.Component(logger, "command"))
	queryHandler := query.NewHandler(cartStore, catalog, logging.Component(logger, "query"))

	handlers := api.NewHandlers(cmdHandler, queryHandler, screens, log)
	authHandlers := api.NewAuthHandlers(userSvc, jwtService, screens, cfg.LoginDelay, log)
	router := api.NewRouter(api.RouterConfig{
		Handlers:     handlers,
		AuthHandlers: authHandlers,
		JWTService:   jwtService,
		Logger:       logging.Component(logger, "http"),
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("Server started", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("Graceful shutdown failed", zap.Error(err))
	}
}
