package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds the PostgreSQL connection string and pool settings.
// URL must use one of the postgres:// or postgresql:// schemes.
type DatabaseConfig struct {
	URL                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	RetryBackoffSec    int
}

// AuthConfig holds the token signing secret and expiry window.
// ExpiresIn is the single source of truth for token lifetime; nothing else
// hardcodes a duration at the signing site.
type AuthConfig struct {
	Secret    string
	ExpiresIn time.Duration
}

// UploadConfig holds upload validation limits and the local storage root.
type UploadConfig struct {
	Dir     string
	MaxSize int64
}

// MinIOConfig holds object storage settings for the S3-compatible backend.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// StorageConfig selects the upload storage backend.
type StorageConfig struct {
	Driver string // "local" or "s3"
	MinIO  MinIOConfig
}

// RedisConfig holds the optional rate-limit store address.
type RedisConfig struct {
	Addr     string
	Password string
}

// RateLimitConfig holds per-window request ceilings. The login limit is
// deliberately tighter than the general API limit.
type RateLimitConfig struct {
	APILimit    int
	APIWindow   time.Duration
	LoginLimit  int
	LoginWindow time.Duration
}

// AppConfig is the centralized configuration struct for the application,
// populated from environment variables once at startup and never mutated.
type AppConfig struct {
	Env       string
	Port      string
	ClientURL string
	BodyLimit int
	Database  DatabaseConfig
	Auth      AuthConfig
	Upload    UploadConfig
	Storage   StorageConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// IsProduction reports whether the runtime mode is production.
func (c *AppConfig) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads configuration from environment variables and validates every
// required value. A .env file can be auto-loaded by importing
// _ "github.com/joho/godotenv/autoload"; real environment variables take
// precedence. Any missing or malformed required value is an error so that
// main can abort before binding the listener.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Env:       getEnv("APP_ENV", EnvDevelopment),
		Port:      getEnv("PORT", "5000"),
		ClientURL: getEnv("CLIENT_URL", ""),
		BodyLimit: getEnvInt("BODY_LIMIT", 10*1024*1024),
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			RetryBackoffSec:    getEnvInt("DB_RETRY_BACKOFF_SEC", 5),
		},
		Auth: AuthConfig{
			Secret:    getEnv("JWT_SECRET", ""),
			ExpiresIn: getEnvDuration("JWT_EXPIRES_IN", 12*time.Hour),
		},
		Upload: UploadConfig{
			Dir:     getEnv("UPLOAD_DIR", "uploads"),
			MaxSize: int64(getEnvInt("UPLOAD_MAX_SIZE", 5*1024*1024)),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", "local"),
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
				PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
			},
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		RateLimit: RateLimitConfig{
			APILimit:    getEnvInt("API_RATE_LIMIT", 100),
			APIWindow:   getEnvDuration("API_RATE_WINDOW", 15*time.Minute),
			LoginLimit:  getEnvInt("LOGIN_RATE_LIMIT", 5),
			LoginWindow: getEnvDuration("LOGIN_RATE_WINDOW", 15*time.Minute),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env)
	}

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if !strings.HasPrefix(c.Database.URL, "postgres://") && !strings.HasPrefix(c.Database.URL, "postgresql://") {
		return fmt.Errorf("DATABASE_URL must use the postgres:// or postgresql:// scheme")
	}

	if c.Auth.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.Auth.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}
	if c.Auth.ExpiresIn <= 0 {
		return fmt.Errorf("JWT_EXPIRES_IN must be a positive duration")
	}

	if c.ClientURL == "" {
		return fmt.Errorf("CLIENT_URL is required")
	}
	if u, err := url.Parse(c.ClientURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid CLIENT_URL %q", c.ClientURL)
	}

	switch c.Storage.Driver {
	case "local":
	case "s3":
		m := c.Storage.MinIO
		if m.Endpoint == "" || m.AccessKey == "" || m.SecretKey == "" || m.Bucket == "" {
			return fmt.Errorf("STORAGE_DRIVER=s3 requires MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY and MINIO_BUCKET")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be \"local\" or \"s3\", got %q", c.Storage.Driver)
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
