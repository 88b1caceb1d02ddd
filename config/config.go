package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultJWTSecret = "dev-secret"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	Environment string
	ServerPort  int
	LogLevel    string

	DatabaseDriver   string
	DatabaseURL      string
	MigrateOnStart   bool
	TrustProxy       bool
	JWTSecretKey     string
	TokenTTL         time.Duration
	BcryptCost       int
	CORSOrigins      []string
	RateLimitRequest int
	RateLimitWindow  time.Duration

	Storage StorageConfig
}

// StorageConfig describes the S3-compatible bucket used for player avatars.
// Uploads are disabled when Bucket is empty.
type StorageConfig struct {
	Endpoint        string
	R2AccountID     string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

func (s StorageConfig) Enabled() bool {
	return s.Bucket != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:    getEnv("APP_ENV", EnvDevelopment),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "postgres"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		JWTSecretKey:   os.Getenv("JWT_SECRET_KEY"),
		CORSOrigins:    splitList(os.Getenv("CORS_ORIGINS")),
		Storage: StorageConfig{
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			R2AccountID:     os.Getenv("R2_ACCOUNT_ID"),
			Region:          getEnv("S3_REGION", "auto"),
			Bucket:          os.Getenv("S3_BUCKET"),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			PublicBaseURL:   os.Getenv("S3_PUBLIC_BASE_URL"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is not set")
	}
	switch cfg.DatabaseDriver {
	case "postgres", "sqlite3":
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q (want postgres or sqlite3)", cfg.DatabaseDriver)
	}

	if cfg.JWTSecretKey == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET_KEY environment variable is not set")
		}
		cfg.JWTSecretKey = defaultJWTSecret
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = getEnv("SERVER_PORT", "8080")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	cfg.ServerPort = port

	if cfg.MigrateOnStart, err = getBool("DB_MIGRATE_ON_START", true); err != nil {
		return nil, err
	}
	if cfg.TrustProxy, err = getBool("TRUST_PROXY", false); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.BcryptCost, err = getInt("BCRYPT_COST", 10); err != nil {
		return nil, err
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", cfg.BcryptCost)
	}
	if cfg.RateLimitRequest, err = getInt("RATE_LIMIT_REQUESTS", 200); err != nil {
		return nil, err
	}
	if cfg.RateLimitRequest <= 0 || cfg.RateLimitWindow <= 0 {
		return nil, errors.New("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}

	if cfg.Storage.Enabled() {
		if cfg.Storage.AccessKeyID == "" || cfg.Storage.SecretAccessKey == "" || cfg.Storage.PublicBaseURL == "" {
			return nil, errors.New("S3_ACCESS_KEY_ID, S3_SECRET_ACCESS_KEY and S3_PUBLIC_BASE_URL are required when S3_BUCKET is set")
		}
		if cfg.Storage.Endpoint == "" && cfg.Storage.R2AccountID != "" {
			cfg.Storage.Endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.Storage.R2AccountID)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
