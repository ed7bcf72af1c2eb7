package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MileWise/milewise-backend/config"
	"github.com/MileWise/milewise-backend/db"
	"github.com/MileWise/milewise-backend/handlers"
	"github.com/MileWise/milewise-backend/logger"
	bookingservice "github.com/MileWise/milewise-backend/models/booking/service"
	"github.com/MileWise/milewise-backend/pkg/transfer"
	"github.com/MileWise/milewise-backend/router"
	"github.com/MileWise/milewise-backend/services"
	"github.com/MileWise/milewise-backend/store/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Initialize logger
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database connection
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL())
	if err != nil {
		log.Fatalf("Failed to parse database config: %v", err)
	}
	if cfg.Server.Environment == config.EnvProduction {
		poolConfig.ConnConfig.TLSConfig = &tls.Config{
			ServerName: cfg.Database.Host,
			MinVersion: tls.VersionTLS12,
		}
	}
	if cfg.Database.MaxOpenConns > 0 {
		poolConfig.MaxConns = int32(cfg.Database.MaxOpenConns)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Apply pending schema migrations
	if err := db.RunMigrations(cfg.Database.URL()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis client with TLS in production
	redisOptions := &redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.UseTLS {
		redisOptions.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	redisClient := redis.NewClient(redisOptions)

	// Stores
	walletStore := postgres.NewPgWalletStore(pool)
	itineraryStore := postgres.NewPgItineraryStore(pool)

	// Services
	rateLimitService := services.NewRateLimitService(redisClient)
	healthService := services.NewHealthService(pool, redisClient, cfg.Server.Version)
	bookingService := bookingservice.NewService(transfer.Default())

	// Handlers
	deps := router.Dependencies{
		Config:           cfg,
		RateLimitService: rateLimitService,
		OptimizeHandler:  handlers.NewOptimizeHandler(bookingService, walletStore, cfg.Optimizer.MaxFlights, cfg.Optimizer.MaxTravelers),
		ItineraryHandler: handlers.NewItineraryHandler(itineraryStore, walletStore, bookingService),
		WalletHandler:    handlers.NewWalletHandler(walletStore),
		TransferHandler:  handlers.NewTransferHandler(transfer.Default()),
		HealthHandler:    handlers.NewHealthHandler(healthService),
		Logger:           log,
	}

	r := router.SetupRouter(deps)
	if err := r.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Fatalf("Failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Block until a shutdown signal arrives, then drain in-flight requests.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	if err := redisClient.Close(); err != nil {
		log.Errorf("Failed to close redis client: %v", err)
	}
	log.Info("Server exited")
}
