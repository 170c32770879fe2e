package main

import (
	"context"
	"time"

	"schema_bootstrap/internal/config"
	"schema_bootstrap/internal/db"
	"schema_bootstrap/internal/schema"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// One-shot schema bootstrap. Exit 0 means the store is initialized (whether
// this run did the work or a previous one did); any fatal error exits non-zero
// so orchestration can hold back the dependent service.
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

	dialect, err := schema.ForDriver(cfg.DB.Driver)
	if err != nil {
		logrus.WithError(err).Fatal("Unknown database driver")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	bootstrapper := schema.New(database, dialect)
	if err := bootstrapper.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("Bootstrap failed")
	}

	result, err := bootstrapper.Verify(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Bootstrap verification failed")
	}

	logrus.WithFields(logrus.Fields{
		"dialect":    dialect.Name(),
		"user_count": result.UserCount,
		"seed_id":    result.SeedID,
	}).Info("Bootstrap complete")

	if err := database.Close(); err != nil {
		logrus.WithError(err).Warn("Failed to close database connection")
	}
}
