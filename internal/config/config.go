package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverSQLite   = "sqlite"
	StorageDriverMemory   = "memory"

	defaultJWTSecret = "your-secret-key-change-in-production"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Queue    QueueConfig
	Cache    CacheConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production, test
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

// StorageConfig chọn backend cho course/lesson repositories
type StorageConfig struct {
	Driver     string // postgres | sqlite | memory
	SQLitePath string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
	Enabled  bool
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// QueueConfig cấu hình asynq client (API) và worker
type QueueConfig struct {
	Enabled     bool
	Queue       string
	Concurrency int
	HealthPort  string

	// Cron spec của job dọn summary cache, rỗng = tắt
	SummarySweepSchedule string
}

type CacheConfig struct {
	SummaryTTL time.Duration
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Courseware API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "courseware"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Storage: StorageConfig{
			Driver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
			SQLitePath: getEnv("SQLITE_PATH", "courseware.db"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Enabled:  getEnvBool("REDIS_ENABLED", true),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 15), // 15 minutes
		},
		Queue: QueueConfig{
			Enabled:              getEnvBool("QUEUE_ENABLED", true),
			Queue:                getEnv("QUEUE_NAME", "default"),
			Concurrency:          getEnvInt("WORKER_CONCURRENCY", 10),
			HealthPort:           getEnv("WORKER_HEALTH_PORT", "9999"),
			SummarySweepSchedule: getEnv("SUMMARY_SWEEP_SCHEDULE", "@every 30m"),
		},
		Cache: CacheConfig{
			SummaryTTL: getEnvDuration("CACHE_SUMMARY_TTL", 5*time.Minute),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverSQLite, StorageDriverMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.Storage.Driver == StorageDriverSQLite && c.Storage.SQLitePath == "" {
		return fmt.Errorf("SQLITE_PATH must be set when STORAGE_DRIVER=sqlite")
	}

	// Production environment phải có JWT secret
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Storage.Driver == StorageDriverPostgres && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Storage.Driver == StorageDriverMemory {
			return fmt.Errorf("STORAGE_DRIVER=memory is not allowed in production")
		}
	}

	return nil
}

// AccessTokenTTL trả về thời hạn access token dạng time.Duration
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWT.AccessTokenExpiry) * time.Minute
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
