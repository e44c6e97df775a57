package app

import (
	"strings"
	"time"

	"github.com/stagehire/catalog-backend/internal/data/cache"
	"github.com/stagehire/catalog-backend/internal/data/db"
	"github.com/stagehire/catalog-backend/internal/observability"
	"github.com/stagehire/catalog-backend/internal/platform/envutil"
	"github.com/stagehire/catalog-backend/internal/platform/logger"
)

type Config struct {
	Port             string
	LogMode          string
	DB               db.Config
	Redis            cache.RedisConfig
	CORSAllowOrigins []string
	Otel             observability.OtelConfig
	MetricsEnabled   bool
	MetricsInterval  time.Duration
	ShutdownTimeout  time.Duration
}

// LoadConfig reads the process environment.
func LoadConfig() Config {
	return Config{
		Port:    envutil.String("PORT", "8080"),
		LogMode: envutil.String("LOG_MODE", "development"),
		DB: db.Config{
			Driver:           strings.ToLower(envutil.String("DB_DRIVER", db.DriverPostgres)),
			SQLitePath:       envutil.String("SQLITE_PATH", "catalog.db"),
			PostgresHost:     envutil.String("POSTGRES_HOST", "localhost"),
			PostgresPort:     envutil.String("POSTGRES_PORT", "5432"),
			PostgresUser:     envutil.String("POSTGRES_USER", "postgres"),
			PostgresPassword: envutil.String("POSTGRES_PASSWORD", ""),
			PostgresName:     envutil.String("POSTGRES_NAME", "catalog"),
			PostgresSSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
		},
		Redis: cache.RedisConfig{
			Addr:      envutil.String("REDIS_ADDR", ""),
			Password:  envutil.String("REDIS_PASSWORD", ""),
			DB:        envutil.Int("REDIS_DB", 0),
			KeyPrefix: envutil.String("DISPLAY_CACHE_PREFIX", ""),
			TTL:       envutil.Duration("DISPLAY_CACHE_TTL", 10*time.Minute),
		},
		CORSAllowOrigins: envutil.List("CORS_ALLOW_ORIGINS", nil),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "catalog-backend"),
			Environment: envutil.String("OTEL_ENVIRONMENT", "development"),
			Version:     envutil.String("OTEL_SERVICE_VERSION", ""),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     observability.ParseHeaders(envutil.String("OTEL_EXPORTER_OTLP_HEADERS", "")),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.Float("OTEL_SAMPLER_RATIO", 0.1),
		},
		MetricsEnabled:  envutil.Bool("METRICS_ENABLED", false),
		MetricsInterval: envutil.Duration("METRICS_SCRAPE_INTERVAL", 10*time.Second),
		ShutdownTimeout: envutil.Duration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

func (c Config) logSummary(log *logger.Logger) {
	log.Info("Config loaded",
		"port", c.Port,
		"db_driver", c.DB.Driver,
		"redis", c.Redis.Addr != "",
		"tracing", c.Otel.Enabled,
		"metrics", c.MetricsEnabled,
		"cors_origins", len(c.CORSAllowOrigins),
	)
}
