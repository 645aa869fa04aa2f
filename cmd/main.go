package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog_service/config"
	"catalog_service/internal/delivery"
	grpcdelivery "catalog_service/internal/delivery/grpc"
	"catalog_service/internal/repository"
	"catalog_service/internal/usecase"
	"catalog_service/migrations"
	"catalog_service/pkg/db"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", level, logLevel.String())
	}
	logger.SetLevel(logLevel)
	return logger
}

func main() {
	logger := newLogger("info")
	cfg := config.LoadConfig(logger)
	logger = newLogger(cfg.LogLevel)
	logger.Info("Starting Catalog Service...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	retryPolicy := db.RetryPolicy{
		MaxRetries: cfg.DBRetryMaxAttempts,
		BaseDelay:  cfg.DBRetryBaseDelay,
		MaxDelay:   cfg.DBRetryMaxDelay,
	}

	// --- Database Connection ---
	database, err := db.Connect(ctx, db.Options{
		URL:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		Retry:           retryPolicy,
	}, logger)
	switch {
	case errors.Is(err, db.ErrUnreachable):
		// keep serving; /health and gRPC report the outage until the store comes back
		logger.Errorf("Database not reachable at startup: %v", err)
	case err != nil:
		logger.Fatalf("FATAL: Failed to connect to database: %v", err)
	default:
		logger.Info("Database connection established.")
	}
	defer database.Close()

	// a failed migration leaves the service running against the current schema
	if cfg.MigrateOnStart {
		if err := migrations.Up(ctx, database, logger); err != nil {
			logger.Errorf("Database migration failed: %v", err)
		}
	}

	// --- Dependency Injection ---
	categoryRepo := repository.NewPostgresCategoryRepository(database, retryPolicy, logger)
	productRepo := repository.NewPostgresProductRepository(database, retryPolicy, logger)

	categoryUseCase := usecase.NewCategoryUseCase(categoryRepo, productRepo, logger)
	productUseCase := usecase.NewProductUseCase(productRepo, categoryRepo, logger)

	gin.SetMode(cfg.GinMode)
	router := delivery.NewRouter(delivery.RouterDeps{
		Categories: delivery.NewCategoryHandler(categoryUseCase, logger),
		Products:   delivery.NewProductHandler(productUseCase, logger),
		DB:         database,
		Log:        logger,
	})

	// --- gRPC health ---
	healthServer := grpcdelivery.NewHealthServer(database, cfg.HealthInterval, logger)
	lis, err := net.Listen("tcp", cfg.GrpcPort)
	if err != nil {
		logger.Fatalf("Failed to listen on gRPC port %s: %v", cfg.GrpcPort, err)
	}
	go healthServer.Watch(ctx)
	go func() {
		if err := healthServer.Serve(lis); err != nil {
			logger.Errorf("gRPC health server stopped: %v", err)
		}
	}()

	// --- Start Server ---
	server := &http.Server{
		Addr:              cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Infof("Starting server on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	healthServer.GracefulStop()
	logger.Info("Server stopped")
}
