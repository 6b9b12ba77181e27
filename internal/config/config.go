package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultPageSize   = 10
	DefaultCacheTTL   = 20 * time.Second
	DefaultCacheSize  = 256
	DefaultAddr       = ":8080"
	DefaultMediaRoot  = "media"
	DefaultSessionTTL = 72 * time.Hour
)

type Config struct {
	PageSize   int
	CacheTTL   time.Duration
	CacheSize  int
	Addr       string
	JWTSecret  string
	SessionTTL time.Duration
	MediaRoot  string
	LogLevel   string
	LogFormat  string
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Info(".env file not found")
	}
}

// GetEnv завершает процесс, если переменная не задана
func GetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("environment variable %s is not set", key)
	}
	return value
}

func GetEnvDefault(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return def
}

// Load собирает конфигурацию из окружения. .env должен быть уже загружен через LoadEnv.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:      GetEnvDefault("HTTP_ADDR", DefaultAddr),
		JWTSecret: os.Getenv("JWT_SECRET"),
		MediaRoot: GetEnvDefault("MEDIA_ROOT", DefaultMediaRoot),
		LogLevel:  GetEnvDefault("LOG_LEVEL", "info"),
		LogFormat: GetEnvDefault("LOG_FORMAT", "text"),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET is not set")
	}

	var err error
	if cfg.PageSize, err = intEnv("PAGE_SIZE", DefaultPageSize); err != nil {
		return nil, err
	}
	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}
	if cfg.CacheSize, err = intEnv("CACHE_SIZE", DefaultCacheSize); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = durationEnv("CACHE_TTL", DefaultCacheTTL); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", DefaultSessionTTL); err != nil {
		return nil, err
	}

	return cfg, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

// SetupLogger настраивает глобальный logrus по уровню и формату из конфигурации
func SetupLogger(cfg *Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	log.SetLevel(level)

	switch cfg.LogFormat {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid LOG_FORMAT: %s", cfg.LogFormat)
	}
	return nil
}
