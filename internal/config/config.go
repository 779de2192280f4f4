package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"parkify/internal/cache"
	"parkify/internal/database"
	"parkify/internal/messaging"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию приложения
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration
	Timezone       string

	// memory | postgres | redis
	StorageBackend string

	// minute | hour
	PricingMode string

	MetricsEnabled      bool
	StatsRefreshSeconds int

	SearchEnabled bool

	// OTLP endpoint, tracing is disabled when empty
	OTelEndpoint string
	OTelInsecure bool

	Auth          AuthConfig
	Database      database.Config
	Cache         cache.Config
	NATS          messaging.Config
	Elasticsearch ElasticsearchConfig
}

// AuthConfig содержит настройки сессий
type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

// Load загружает конфигурацию из .env и переменных окружения
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,
		Timezone:       getEnv("TIMEZONE", "UTC"),

		StorageBackend: getEnv("STORAGE_BACKEND", "memory"),
		PricingMode:    getEnv("PRICING_MODE", "minute"),

		MetricsEnabled:      getEnvBool("METRICS_ENABLED", true),
		StatsRefreshSeconds: getEnvInt("STATS_REFRESH_SEC", 60),

		SearchEnabled: getEnvBool("SEARCH_ENABLED", false),

		OTelEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTelInsecure: getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),

		Auth: AuthConfig{
			JWTSecret:  getEnv("JWT_SECRET", "parkify-dev-secret"),
			SessionTTL: time.Duration(getEnvInt("SESSION_TTL_MIN", 24*60)) * time.Minute,
		},

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "parkify"),
			Password:           getEnv("DB_PASSWORD", "parkify"),
			DBName:             getEnv("DB_NAME", "parkify"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		Cache: cache.Config{
			Addr:      getEnv("VALKEY_ADDR", "localhost:6379"),
			Password:  getEnv("VALKEY_PASSWORD", ""),
			DB:        getEnvInt("VALKEY_DB", 0),
			KeyPrefix: getEnv("VALKEY_KEY_PREFIX", "parkify:"),
		},

		NATS: messaging.Config{
			Enabled:   getEnvBool("NATS_ENABLED", false),
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "parkify"),
			ClientID:  getEnv("NATS_CLIENT_ID", "parkify-api"),
		},

		Elasticsearch: LoadElasticsearchConfig(),
	}
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает целочисленное значение переменной окружения
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
