package handler

import (
	"database/sql"
	"net/http"

	"schema_bootstrap/internal/config"
	"schema_bootstrap/internal/health"
	"schema_bootstrap/internal/middleware"
	"schema_bootstrap/internal/observability"
	"schema_bootstrap/internal/schema"
	"schema_bootstrap/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const Version = "0.1.0"

// SetupHandler initializes all dependencies and routes
func SetupHandler(db *sql.DB, rdb *redis.Client, dialect schema.Dialect, cfg *config.Config, metrics *observability.Metrics) *gin.Engine {

	r := gin.Default()

	if metrics != nil {
		r.Use(middleware.PrometheusMiddleware(metrics))

		// Expose /metrics endpoint for Prometheus to scrape
		r.GET("/metrics", func(c *gin.Context) {
			promhttp.Handler().ServeHTTP(c.Writer, c.Request)
		})
	}

	userRepo := user.NewUserRepository(db, dialect)
	checker := health.NewChecker(db, rdb)

	setupRoutes(r, userRepo, checker, cfg)

	return r
}

func setupRoutes(r *gin.Engine, userRepo user.UserRepositoryInterface, checker *health.Checker, cfg *config.Config) {

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Hello, World! This is " + cfg.AppName + ".",
		})
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, checker.Check(c.Request.Context()))
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": cfg.AppName,
			"version": Version,
		})
	})

	// Smoke-test route: the row the bootstrap seeded
	r.GET("/users/seed", func(c *gin.Context) {
		u, err := userRepo.GetByUsername(schema.SeedUsername)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Seed user not found"})
			return
		}
		c.JSON(http.StatusOK, u)
	})
}
