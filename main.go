package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"account-portal/internal/cache"
	"account-portal/internal/config"
	"account-portal/internal/database"
	"account-portal/internal/logger"
	"account-portal/internal/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.New(cfg.LogLevel, cfg.GinMode)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logg.Sync()

	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.NewConnection(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logg.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logg.Info("Connected to database", zap.String("driver", cfg.DatabaseDriver))

	if err := database.RunMigrations(ctx, db); err != nil {
		logg.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis backs the login throttle when available; otherwise keep counters in-process
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			logg.Warn("Failed to connect to Redis, using in-memory cache", zap.Error(err))
		} else {
			logg.Info("Connected to Redis cache")
		}
	}
	if cacheClient == nil {
		cacheClient = cache.NewMemoryCache(time.Minute)
	}
	defer cacheClient.Close()

	router, err := server.NewRouter(ctx, cfg, logg, db, cacheClient)
	if err != nil {
		logg.Fatal("Failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Info("Server starting", zap.String("addr", srv.Addr), zap.String("mode", cfg.GinMode))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logg.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("Graceful shutdown failed", zap.Error(err))
	}
}
