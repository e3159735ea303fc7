// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full service configuration.
type Config struct {
	Server  Server
	Auth    Auth
	Dataset Dataset
	Redis   RedisConfig
	Audit   Audit
	Log     Log
	Tracing Tracing
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"ENROLSIGHT_ADDR" envDefault:":8080"`
	RequestTimeout  time.Duration `env:"ENROLSIGHT_REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"ENROLSIGHT_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Auth configures bearer token verification. Tokens are issued by the
// identity provider; this service only verifies them.
type Auth struct {
	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-secret-key-change-in-production"`
	Issuer    string `env:"ENROLSIGHT_JWT_ISSUER" envDefault:"enrolsight-idp"`
	Audience  string `env:"ENROLSIGHT_JWT_AUDIENCE" envDefault:"enrolsight"`
}

// Dataset selects the record source. DatabaseURL wins over File when set.
// A zero ReloadInterval loads once at startup.
type Dataset struct {
	File           string        `env:"ENROLSIGHT_DATA_FILE" envDefault:"data/data.json"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	Table          string        `env:"ENROLSIGHT_DATA_TABLE" envDefault:"enrolment_records"`
	ReloadInterval time.Duration `env:"ENROLSIGHT_DATA_RELOAD" envDefault:"0s"`
}

// RedisConfig enables the shared dashboard cache. Empty URL keeps the cache
// in process.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	CacheTTL     time.Duration `env:"ENROLSIGHT_CACHE_TTL" envDefault:"5m"`
}

// Audit configures where audit events go. Postgres persists them for the
// activity log; Kafka mirrors them to a topic.
type Audit struct {
	DatabaseURL  string   `env:"AUDIT_DATABASE_URL"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"ENROLSIGHT_AUDIT_TOPIC" envDefault:"enrolsight.audit"`
	BufferSize   int      `env:"ENROLSIGHT_AUDIT_BUFFER" envDefault:"256"`
}

// Log selects slog level and handler format ("json" or "text").
type Log struct {
	Level  string `env:"ENROLSIGHT_LOG_LEVEL" envDefault:"info"`
	Format string `env:"ENROLSIGHT_LOG_FORMAT" envDefault:"json"`
}

// Tracing enables the OTLP exporter when Endpoint is set.
type Tracing struct {
	Endpoint    string `env:"ENROLSIGHT_OTEL_ENDPOINT"`
	ServiceName string `env:"ENROLSIGHT_SERVICE_NAME" envDefault:"enrolsight"`
}

// FromEnv builds Config from environment variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must not be empty")
	}
	if cfg.Dataset.ReloadInterval < 0 {
		return Config{}, fmt.Errorf("ENROLSIGHT_DATA_RELOAD must be >= 0")
	}
	if cfg.Audit.BufferSize < 0 {
		return Config{}, fmt.Errorf("ENROLSIGHT_AUDIT_BUFFER must be >= 0")
	}
	return cfg, nil
}
