package health

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"schema_bootstrap/internal/config"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Report mirrors what orchestration reads to decide whether the service
// may take traffic.
type Report struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

type Checker struct {
	db  *sql.DB
	rdb *redis.Client
}

func NewChecker(db *sql.DB, rdb *redis.Client) *Checker {
	return &Checker{db: db, rdb: rdb}
}

// Check pings every backing service. A nil client counts as down; the
// overall status is healthy only when everything is up.
func (c *Checker) Check(ctx context.Context) *Report {
	dbOK := false
	redisOK := false

	if c.db != nil {
		var one int
		if err := c.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err == nil {
			dbOK = true
		}
	}

	if c.rdb != nil {
		if err := c.rdb.Ping(ctx).Err(); err == nil {
			redisOK = true
		}
	}

	status := "unhealthy"
	if dbOK && redisOK {
		status = "healthy"
	}

	return &Report{
		Status: status,
		Services: map[string]string{
			"postgres": upDown(dbOK),
			"redis":    upDown(redisOK),
		},
	}
}

func upDown(ok bool) string {
	if ok {
		return "up"
	}
	return "down"
}

// NewRedisClient connects to redis and validates the connection with a ping.
// A failed ping is logged but not fatal: the health report carries it as down.
func NewRedisClient(redisCfg *config.RedisConfig) *redis.Client {
	addr := fmt.Sprintf("%s:%s", redisCfg.Host, redisCfg.Port)

	dbNum, err := strconv.Atoi(redisCfg.RedisDB)
	if err != nil {
		logrus.WithError(err).Warn("Invalid Redis DB number, using 0")
		dbNum = 0
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: redisCfg.RedisPassword,
		DB:       dbNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis unreachable")
	}

	return rdb
}
