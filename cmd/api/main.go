package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schema_bootstrap/internal/config"
	"schema_bootstrap/internal/db"
	"schema_bootstrap/internal/handler"
	"schema_bootstrap/internal/health"
	"schema_bootstrap/internal/observability"
	"schema_bootstrap/internal/schema"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	database, err := db.Connect(&cfg.DB)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close database connection")
		}
	}()

	dialect, err := schema.ForDriver(cfg.DB.Driver)
	if err != nil {
		logrus.WithError(err).Fatal("Unknown database driver")
	}

	observability.InitMetrics()
	logrus.Info("Metrics initialized")

	// Bootstrap the schema before accepting any traffic
	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), time.Minute)
	bootstrapper := schema.New(database, dialect)
	if err := bootstrapper.Run(bootstrapCtx); err != nil {
		observability.GlobalMetrics.BootstrapRunsTotal.WithLabelValues("failed").Inc()
		cancelBootstrap()
		logrus.WithError(err).Fatal("Bootstrap failed")
	}
	result, err := bootstrapper.Verify(bootstrapCtx)
	cancelBootstrap()
	if err != nil {
		observability.GlobalMetrics.BootstrapRunsTotal.WithLabelValues("failed").Inc()
		logrus.WithError(err).Fatal("Bootstrap verification failed")
	}
	observability.GlobalMetrics.BootstrapRunsTotal.WithLabelValues("success").Inc()
	logrus.WithFields(logrus.Fields{
		"user_count": result.UserCount,
		"seed_id":    result.SeedID,
	}).Info("Bootstrap complete")

	rdb := health.NewRedisClient(&cfg.Redis)
	defer func() {
		if err := rdb.Close(); err != nil {
			logrus.WithError(err).Error("Failed to close redis connection")
		}
	}()

	// Sample connection pool stats for the /metrics endpoint
	go func() {
		for range time.Tick(15 * time.Second) {
			stats := database.Stats()
			observability.GlobalMetrics.DBConnectionsOpen.Set(float64(stats.OpenConnections))
			observability.GlobalMetrics.DBConnectionsInUse.Set(float64(stats.InUse))
		}
	}()

	r := handler.SetupHandler(database, rdb, dialect, cfg, observability.GlobalMetrics)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logrus.Infof("Starting server on :%s", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}
}
