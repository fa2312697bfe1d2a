package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"github.com/rl1809/shopping-assistant/internal/adapter/catalog"
	"github.com/rl1809/shopping-assistant/internal/adapter/handler"
	"github.com/rl1809/shopping-assistant/internal/adapter/places"
	"github.com/rl1809/shopping-assistant/internal/adapter/storage"
	"github.com/rl1809/shopping-assistant/internal/config"
	"github.com/rl1809/shopping-assistant/internal/core/domain"
	"github.com/rl1809/shopping-assistant/internal/core/service"
	"github.com/rl1809/shopping-assistant/internal/logger"
	"github.com/rl1809/shopping-assistant/internal/port"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer lg.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage backend
	store, closeStore, err := openStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to open storage", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	defer closeStore()

	// Initialize providers
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	catalogClient := catalog.NewFakeStoreClient(cfg.CatalogURL, httpClient)
	placesClient := places.NewGoogleClient(cfg.PlacesURL, cfg.PlacesAPIKey, httpClient)
	if cfg.PlacesAPIKey == "" {
		lg.Warn("PLACES_API_KEY is not set, nearby store search will fail")
	}

	// Initialize session
	session := service.NewSession(
		service.NewCatalogService(catalogClient, lg),
		service.NewListService(store, lg),
		service.NewAlertService(lg),
		service.NewStoreLocator(placesClient, lg),
		lg,
	)
	session.Start(ctx)

	if cfg.DefaultLocation != nil {
		loc := domain.Coordinate{Lat: cfg.DefaultLocation[0], Lng: cfg.DefaultLocation[1]}
		if err := session.Stores.SetLocation(loc); err != nil {
			lg.Warn("ignoring default location", zap.Error(err))
		}
	}

	// Initialize gRPC server
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(handler.LoggingInterceptor(lg)))
	handler.RegisterAssistantServer(grpcServer, handler.NewGRPCHandler(session))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		lg.Fatal("failed to listen", zap.String("addr", cfg.GRPCAddr), zap.Error(err))
	}

	go func() {
		lg.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr))
		if err := grpcServer.Serve(lis); err != nil {
			lg.Error("gRPC server error", zap.Error(err))
		}
	}()

	// Initialize HTTP server
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.NewHTTPHandler(session, lg).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		lg.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			lg.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	lg.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	lg.Info("gRPC server stopped")

	// Final flush; mutations already write through unless storage failed earlier.
	if session.Lists.Degraded() {
		lg.Warn("list storage degraded, skipping final flush")
	} else if err := session.Lists.Persist(shutdownCtx); err != nil {
		lg.Warn("final list flush failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.Config, lg *zap.Logger) (port.KeyValueStore, func(), error) {
	switch cfg.StorageBackend {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		lg.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
		return storage.NewRedisAdapter(rdb, cfg.StorageNamespace), func() { rdb.Close() }, nil

	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ping mysql: %w", err)
		}
		adapter := storage.NewMySQLAdapter(db, cfg.StorageNamespace)
		if err := adapter.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		lg.Info("connected to mysql")
		return adapter, func() { db.Close() }, nil

	default:
		lg.Info("using in-memory storage", zap.Int("quota_bytes", cfg.MemoryQuotaBytes))
		return storage.NewMemoryStore(cfg.MemoryQuotaBytes), func() {}, nil
	}
}
