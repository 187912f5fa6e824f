package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-vote/internal/api"
	"campus-vote/internal/database"
	"campus-vote/pkg/config"
	"campus-vote/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("configs/server.yaml")
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	appLogger := logger.NewLogger(cfg.Logging.Level, cfg.Logging.File)
	appLogger.SetFormatter(cfg.Logging.Format)
	appLogger.Info("Starting campus vote server - mode: %s", cfg.Server.Mode)
	appLogger.Debug("Loaded configuration: %+v", cfg.SanitizeForLogging())

	db, err := database.NewConnection(cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		appLogger.Fatal("Failed to run migrations: %v", err)
	}

	services := api.NewServices(db, appLogger, cfg)
	services.Start()
	defer services.Stop()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	api.SetupRoutes(router, services)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Server failed: %v", err)
		}
	}()

	// Graceful shutdown: finish in-flight casts before closing the listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown: %v", err)
	}

	appLogger.Info("Server stopped")
}
