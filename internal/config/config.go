package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Cache    CacheConfig
	Cloud    CloudConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Sync     SyncConfig
	Seed     SeedConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// CacheConfig configures the local cache store.
type CacheConfig struct {
	Dir       string
	InMemory  bool
	Namespace string
}

// CloudConfig selects and tunes the remote document backend.
type CloudConfig struct {
	// Backend is one of "redis", "postgres", "none".
	Backend          string
	ReadyTimeoutSecs int
	CacheTTLSeconds  int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	BootstrapSchema bool
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	// SharedSecret feeds the password salt. Auth operations abort when empty.
	SharedSecret    string
	JWTSecret       string
	SessionTTLHours int
}

// SyncConfig tunes the offline-queue worker.
type SyncConfig struct {
	IntervalSeconds int
}

// SeedConfig controls one-time default data.
type SeedConfig struct {
	AdminUsername string
	AdminPassword string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "requisition-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Cache: CacheConfig{
			Dir:       getEnv("CACHE_DIR", "data/cache"),
			InMemory:  getEnvAsBool("CACHE_IN_MEMORY", false),
			Namespace: getEnv("CACHE_NAMESPACE", "requisition"),
		},
		Cloud: CloudConfig{
			Backend:          getEnv("CLOUD_BACKEND", "redis"),
			ReadyTimeoutSecs: getEnvAsInt("CLOUD_READY_TIMEOUT_SECONDS", 5),
			CacheTTLSeconds:  getEnvAsInt("CLOUD_CACHE_TTL_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Postgres: PostgresConfig{
			DSN:             os.Getenv("POSTGRES_DSN"),
			MaxConns:        int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:        int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			BootstrapSchema: getEnvAsBool("POSTGRES_BOOTSTRAP_SCHEMA", true),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			SharedSecret:    getEnv("AUTH_SHARED_SECRET", "requisicoes-2024"),
			JWTSecret:       getEnv("AUTH_JWT_SECRET", "dev-secret"),
			SessionTTLHours: getEnvAsInt("AUTH_SESSION_TTL_HOURS", 8),
		},
		Sync: SyncConfig{
			IntervalSeconds: getEnvAsInt("SYNC_INTERVAL_SECONDS", 30),
		},
		Seed: SeedConfig{
			AdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// ReadyTimeout bounds the remote readiness wait.
func (c CloudConfig) ReadyTimeout() time.Duration {
	if c.ReadyTimeoutSecs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.ReadyTimeoutSecs) * time.Second
}

// CacheTTL is how long a cached document is served without consulting the remote.
func (c CloudConfig) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// SessionTTL returns the session lifetime.
func (a AuthConfig) SessionTTL() time.Duration {
	if a.SessionTTLHours <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(a.SessionTTLHours) * time.Hour
}

// Interval returns the queue drain interval.
func (s SyncConfig) Interval() time.Duration {
	if s.IntervalSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.IntervalSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
