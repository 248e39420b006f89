package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auction-ledger/internal/api/handlers"
	apimiddleware "auction-ledger/internal/api/middleware"
	"auction-ledger/internal/config"
	"auction-ledger/internal/infrastructure/leader"
	"auction-ledger/internal/infrastructure/mysql"
	"auction-ledger/internal/infrastructure/redis"
	"auction-ledger/internal/services"
	"auction-ledger/pkg/logger"

	redisClient "github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	log := logger.New()
	log.Info("Starting Ledger Service")

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

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		log.Error("Failed to connect to MySQL", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			log.Error("Failed to close MySQL connection", "error", err)
		}
	}(db)

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		log.Error("Failed to ping MySQL", "error", err)
		os.Exit(1)
	}
	log.Info("Connected to MySQL")

	if err := mysql.InitSchema(ctx, db); err != nil {
		log.Error("Failed to initialize schema", "error", err)
		os.Exit(1)
	}

	// Initialize stores
	listingStore := mysql.NewMySQLListingStore(db)
	sequenceStore := mysql.NewMySQLSequenceStore(db, "listing_id")

	// Initialize Redis based components
	eventPublisher := redis.NewRedisEventPublisher(rdb)
	leaderElection := leader.NewRedisLeaderElection(rdb, cfg.Leader.TTL)

	// Initialize ledger service
	ledger := services.NewLedgerService(listingStore, sequenceStore, eventPublisher, log)

	// Initialize stats reporter
	statsReporter := services.NewStatsReporter(ledger, leaderElection, rdb, cfg.Instance.ID, log)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			echo.GET, echo.POST, echo.PUT, echo.OPTIONS,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			apimiddleware.PrincipalHeader,
		},
		MaxAge: 86400,
	}))
	e.Use(apimiddleware.ExtractIdentity)

	// Initialize handlers
	listingHandler := handlers.NewListingHandler(ledger, log)

	// API routes; reads are public, writes require a caller identity
	api := e.Group("/api/v1")
	api.GET("/listings/count", listingHandler.CountListings)
	api.GET("/listings/:id", listingHandler.GetListing)
	api.POST("/listings", listingHandler.CreateListing, apimiddleware.RequireIdentity)
	api.PUT("/listings/:id", listingHandler.EditListing, apimiddleware.RequireIdentity)
	api.POST("/listings/:id/bids", listingHandler.PlaceBid, apimiddleware.RequireIdentity)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "ok",
			"service":   "ledger-service",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Start background services
	if err := statsReporter.Start(context.Background()); err != nil {
		log.Error("Failed to start stats reporter", "error", err)
		os.Exit(1)
	}

	// Try to become leader
	go func() {
		for {
			became, err := leaderElection.BecomeLeader(context.Background(), cfg.Instance.ID)
			if err != nil {
				log.Error("Failed to attempt leadership", "error", err)
				time.Sleep(5 * time.Second)
				continue
			}
			if became {
				log.Info("Became ledger leader", "instance_id", cfg.Instance.ID)
			}
			time.Sleep(10 * time.Second)
		}
	}()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("Starting ledger server", "address", serverAddr)

	go func() {
		if err := e.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down ledger service...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := statsReporter.Stop(); err != nil {
		log.Error("Failed to stop stats reporter", "error", err)
	}
	if err := leaderElection.ReleaseLeadership(ctx, cfg.Instance.ID); err != nil {
		log.Error("Failed to release leadership", "error", err)
	}
	if err := e.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Ledger service stopped")
}
