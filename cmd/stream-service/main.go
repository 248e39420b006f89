package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apimiddleware "auction-ledger/internal/api/middleware"
	"auction-ledger/internal/config"
	"auction-ledger/internal/infrastructure/redis"
	"auction-ledger/internal/infrastructure/websocket"
	"auction-ledger/internal/services"
	"auction-ledger/pkg/logger"

	redisClient "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
)

func main() {
	log := logger.New()
	log.Info("Starting Stream Service")

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize Redis
	rdb := redisClient.NewClient(&redisClient.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	log.Info("Connected to Redis", "address", cfg.Redis.Address)

	// Initialize websocket components
	connManager := websocket.NewConnectionManager(log)
	wsHandler := websocket.NewWebSocketHandler(connManager, log)

	// Bridge redis events to websocket watchers
	subscriber := redis.NewRedisEventSubscriber(rdb, log)
	eventListener := services.NewEventListener(connManager, log)

	subscriberCtx, stopSubscriber := context.WithCancel(context.Background())
	defer stopSubscriber()

	go func() {
		if err := eventListener.Start(subscriberCtx, subscriber); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("Event listener stopped", "error", err)
		}
	}()

	// Routes
	router := mux.NewRouter()
	router.Use(apimiddleware.CORS)
	router.HandleFunc("/ws/listings/{listingID}", wsHandler.HandleConnection)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","service":"stream-service","timestamp":"%s"}`,
			time.Now().Format(time.RFC3339))
	})

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Stream.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	log.Info("Starting stream server", "address", serverAddr)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down stream service...")

	stopSubscriber()

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Stream service stopped")
}
