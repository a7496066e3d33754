package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Dialects supported by the profile store.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Config is the application configuration, populated from environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Queue    QueueConfig
	MinIO    MinIOConfig
	Static   StaticConfig
}

type AppConfig struct {
	Name           string
	Environment    string // development, staging, production
	Port           string
	Version        string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Dialect string // sqlite, postgres
	Storage string // SQLite file path
	URL     string // Postgres DSN, overrides the discrete settings
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// QueueConfig controls the asynq publish pipeline.
type QueueConfig struct {
	Enabled         bool
	RedisAddr       string
	Concurrency     int
	PublishSchedule string // cron spec for republishing every profile
}

type MinIOConfig struct {
	Enabled   bool
	Endpoint  string // localhost:9000
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type StaticConfig struct {
	Dir string // client UI directory, empty disables static serving
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "Profile API"),
			Environment:    getEnv("APP_ENV", "development"),
			Port:           getEnv("APP_PORT", "3000"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Dialect: strings.ToLower(getEnv("DB_DIALECT", DialectSQLite)),
			Storage: getEnv("DB_STORAGE", "data/database.sqlite"),
			URL:     getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("CACHE_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Queue: QueueConfig{
			Enabled:         getEnvBool("QUEUE_ENABLED", false),
			RedisAddr:       getEnv("QUEUE_REDIS_ADDR", getEnv("REDIS_HOST", "localhost:6379")),
			Concurrency:     getEnvInt("QUEUE_CONCURRENCY", 5),
			PublishSchedule: getEnv("PUBLISH_SCHEDULE", "0 3 * * *"),
		},
		MinIO: MinIOConfig{
			Enabled:   getEnvBool("MINIO_ENABLED", false),
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "profiles"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Static: StaticConfig{
			Dir: getEnv("STATIC_DIR", "public"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.Database.Dialect {
	case DialectSQLite:
		if c.Database.Storage == "" {
			return fmt.Errorf("DB_STORAGE must be set for the sqlite dialect")
		}
	case DialectPostgres:
	default:
		return fmt.Errorf("unsupported DB_DIALECT %q (want %s or %s)", c.Database.Dialect, DialectSQLite, DialectPostgres)
	}

	if c.App.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	if c.Queue.Enabled {
		if _, err := cron.ParseStandard(c.Queue.PublishSchedule); err != nil {
			return fmt.Errorf("invalid PUBLISH_SCHEDULE %q: %w", c.Queue.PublishSchedule, err)
		}
	}

	if c.App.Environment == "production" && c.MinIO.Enabled {
		if c.MinIO.AccessKey == "minioadmin" || c.MinIO.SecretKey == "minioadmin" {
			return fmt.Errorf("MINIO_ACCESS_KEY and MINIO_SECRET_KEY must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
