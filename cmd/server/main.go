package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hoopsdfs/roster-optimizer/internal/api/handlers"
	"github.com/hoopsdfs/roster-optimizer/internal/dataset"
	"github.com/hoopsdfs/roster-optimizer/pkg/cache"
	"github.com/hoopsdfs/roster-optimizer/pkg/config"
	"github.com/hoopsdfs/roster-optimizer/pkg/database"
	"github.com/hoopsdfs/roster-optimizer/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger("info", cfg.IsDevelopment())
	logger.WithComponent("server").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
	}).Info("Starting Roster Optimizer Service")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewOptimizerConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logger.WithComponent("server").Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.WithComponent("server").Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.WithComponent("server").Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	cacheService := cache.NewRosterCacheService(redisClient, structuredLogger)
	provider := dataset.NewSQLProvider(db.DB, cfg.MinGames)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	optimizationHandler := handlers.NewOptimizationHandler(provider, cacheService, cfg, structuredLogger)
	healthHandler := handlers.NewHealthHandler(db, cacheService, structuredLogger)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/optimize", optimizationHandler.OptimizeRoster)
		apiV1.POST("/trade", optimizationHandler.ProposeTrade)
		apiV1.GET("/optimize/cache-status", optimizationHandler.GetCacheStatus)
	}

	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.WithComponent("server").WithField("port", cfg.Port).Info("Roster optimizer service started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithComponent("server").Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithComponent("server").Info("Shutting down roster optimizer service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithComponent("server").Fatalf("Service forced to shutdown: %v", err)
	}

	logger.WithComponent("server").Info("Roster optimizer service exited")
}
