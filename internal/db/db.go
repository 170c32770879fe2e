package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"schema_bootstrap/internal/config"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

const (
	maxRetries = 10
	retryDelay = 2 * time.Second
)

// Connect opens a database connection for the configured driver and verifies it
// with a ping, retrying while the store comes up.
func Connect(cfg *config.DBConfig) (*sql.DB, error) {
	driver, dsn, err := dataSource(cfg)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open(driver, dsn)
		if err != nil {
			logrus.WithError(err).Warnf("Failed to open database connection (attempt %d/%d)", i+1, maxRetries)
			time.Sleep(retryDelay)
			continue
		}

		if err = db.Ping(); err != nil {
			logrus.WithError(err).Warnf("Failed to ping database (attempt %d/%d)", i+1, maxRetries)
			if closeErr := db.Close(); closeErr != nil {
				logrus.WithError(closeErr).Warn("Failed to close database connection")
			}
			time.Sleep(retryDelay)
			continue
		}

		break
	}

	if err != nil {
		return nil, fmt.Errorf("connect to %s after %d attempts: %w", cfg.Driver, maxRetries, err)
	}

	if cfg.Driver == "sqlite" {
		// sqlite cannot share an in-memory or file handle across connections
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(100)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
	}

	logrus.WithField("driver", cfg.Driver).Info("Database connection established")
	return db, nil
}

func dataSource(cfg *config.DBConfig) (driver, dsn string, err error) {
	switch cfg.Driver {
	case "postgres":
		return "pgx", fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
		), nil
	case "mysql":
		return "mysql", fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name,
		), nil
	case "sqlite":
		if cfg.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
				return "", "", fmt.Errorf("create db dir: %w", err)
			}
		}
		return "sqlite", cfg.Path, nil
	default:
		return "", "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
