package config

import (
	"os"
)

type Config struct {
	AppName string
	AppEnv  string
	AppPort string

	DB    DBConfig
	Redis RedisConfig
}

type DBConfig struct {
	Driver   string // postgres, mysql or sqlite
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Path     string // sqlite only
}

type RedisConfig struct {
	Host          string
	Port          string
	RedisPassword string
	RedisDB       string
}

func Load() *Config {
	return &Config{
		AppName: getEnv("APP_NAME", "findev-backend"),
		AppEnv:  getEnv("APP_ENV", "development"),
		AppPort: getEnv("APP_PORT", "8000"),

		DB: DBConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("POSTGRES_HOST", "postgres"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "appuser"),
			Password: getEnv("POSTGRES_PASSWORD", "apppass"),
			Name:     getEnv("POSTGRES_DB", "appdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("SQLITE_PATH", "data/app.db"),
		},

		Redis: RedisConfig{
			Host:          getEnv("REDIS_HOST", "redis"),
			Port:          getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnv("REDIS_DB", "0"),
		},
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
