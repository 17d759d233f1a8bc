package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type StoreBackend string

const (
	BackendLocal  StoreBackend = "local"
	BackendRemote StoreBackend = "remote"
	BackendMemory StoreBackend = "memory"
)

type Config struct {
	ServerPort string
	Backend    StoreBackend
	SQLitePath string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	RateLimit        int
	LogLevel         string
	Timezone         *time.Location
	PersistQueueSize int
}

// Load reads an optional .env file and then the environment. The returned
// bool reports whether a .env file was found.
func Load() (*Config, bool, error) {
	foundEnv := godotenv.Load() == nil

	cfg := &Config{
		ServerPort: getEnv("PORT", "8080"),
		Backend:    StoreBackend(strings.ToLower(getEnv("STORE_BACKEND", string(BackendLocal)))),
		SQLitePath: getEnv("SQLITE_PATH", "data/habits.db"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "habits"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "habits"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "habit-tracker"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, foundEnv, err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", 100); err != nil {
		return nil, foundEnv, err
	}
	if cfg.PersistQueueSize, err = getInt("PERSIST_QUEUE_SIZE", 256); err != nil {
		return nil, foundEnv, err
	}
	if cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "72h")); err != nil {
		return nil, foundEnv, fmt.Errorf("config: TOKEN_TTL: %w", err)
	}
	if cfg.Timezone, err = time.LoadLocation(getEnv("TIMEZONE", "Local")); err != nil {
		return nil, foundEnv, fmt.Errorf("config: TIMEZONE: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, foundEnv, err
	}
	return cfg, foundEnv, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendLocal, BackendRemote, BackendMemory:
	default:
		return fmt.Errorf("config: STORE_BACKEND must be local, remote or memory, got %q", c.Backend)
	}
	if c.RateLimit < 1 {
		return fmt.Errorf("config: RATE_LIMIT must be positive")
	}
	if c.PersistQueueSize < 1 {
		return fmt.Errorf("config: PERSIST_QUEUE_SIZE must be positive")
	}
	return nil
}

// PostgresDSN is only meaningful for the remote backend.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// RedisEnabled reports whether REDIS_HOST was set.
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return n, nil
}
