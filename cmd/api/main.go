package main

// @title Mask Map Service API
// @version 1.0.0
// @description Backend for the mask-map application: loads the city/district hierarchy and the
// @description pharmacy GeoJSON points from their upstream sources, keeps the filtered pharmacy
// @description view and the map marker state in sync with the current selection, and serves both
// @description to a map frontend.

// @contact.name API Support
// @contact.email support@maskmap-service.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/maskmap-service/docs"
	"github.com/maskmap-service/internal/config"
	httpDelivery "github.com/maskmap-service/internal/delivery/http"
	"github.com/maskmap-service/internal/delivery/http/handler"
	"github.com/maskmap-service/internal/infrastructure/mapview"
	"github.com/maskmap-service/internal/infrastructure/upstream"
	"github.com/maskmap-service/internal/pkg/logger"
	"github.com/maskmap-service/internal/repository/cache"
	"github.com/maskmap-service/internal/store"
	"github.com/maskmap-service/internal/usecase"
	"github.com/maskmap-service/internal/worker"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Mask Map Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("Redis connected and healthy")

	// 4. Initialize map view - fatal when it cannot be constructed, the
	// service is non-functional without its map
	view, err := mapview.New(&cfg.Map, log)
	if err != nil {
		log.Fatal("Failed to initialize map view", zap.Error(err))
	}

	// 5. Initialize stores and repositories
	areaStore := store.NewAreaStore()
	pharmacyStore := store.NewPharmacyStore()
	upstreamRepo := upstream.NewClient(&cfg.Upstream, log)
	cacheRepo := cache.NewCacheRepository(redisClient)

	log.Info("Stores and repositories initialized")

	// 6. Initialize use cases and bind the derivation pipeline
	mapCtrl := usecase.NewMapController(view, &cfg.Map, log)
	filterUC := usecase.NewFilterUseCase(areaStore, pharmacyStore, mapCtrl, log)
	filterUC.Bind()

	areaUC := usecase.NewAreaUseCase(
		areaStore,
		upstreamRepo,
		cacheRepo,
		log,
		cfg.Cache.AreaCacheTTL,
	)

	pharmacyUC := usecase.NewPharmacyUseCase(
		pharmacyStore,
		filterUC,
		mapCtrl,
		upstreamRepo,
		cacheRepo,
		log,
		cfg.Cache.PharmacyCacheTTL,
	)

	log.Info("Use cases initialized")

	// 7. Initial data load; failures keep the service up with empty data,
	// the refresh endpoints and worker retry later
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 60*time.Second)
	if err := areaUC.Refresh(loadCtx); err != nil {
		log.Warn("Initial area load failed, starting with empty hierarchy", zap.Error(err))
	}
	if err := pharmacyUC.Refresh(loadCtx); err != nil {
		log.Warn("Initial pharmacy load failed, starting with empty list", zap.Error(err))
	}
	loadCancel()

	// 8. Initialize HTTP handlers and server
	areaHandler := handler.NewAreaHandler(areaUC, log)
	pharmacyHandler := handler.NewPharmacyHandler(pharmacyUC, log)
	mapHandler := handler.NewMapHandler(mapCtrl, view, log)

	server := httpDelivery.NewServer(
		cfg,
		log,
		areaHandler,
		pharmacyHandler,
		mapHandler,
	)

	log.Info("HTTP server initialized")

	// 9. Start refresh worker when enabled
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var manager *worker.Manager
	if cfg.Worker.Enabled {
		manager = worker.NewManager(log)
		manager.Register(worker.NewRefreshWorker(
			areaUC,
			pharmacyUC,
			cfg.Worker.RefreshInterval,
			cfg.Worker.AreaRefreshSkip,
			log,
		))
		if err := manager.Start(workerCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if manager != nil {
		workerCancel()
		if err := manager.Stop(); err != nil {
			log.Error("Worker shutdown error", zap.Error(err))
		}
	}

	if err := mapCtrl.Close(); err != nil {
		log.Error("Failed to release map view", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
