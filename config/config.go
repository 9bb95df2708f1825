package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Redis  RedisConfig
	Payout PayoutConfig
	App    AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
	// Token-bucket limit for mutating campaign routes, per client IP.
	RateLimitRPS   float64
	RateLimitBurst int
}

type StoreConfig struct {
	// Driver selects the campaign store: "postgres" or "memory".
	Driver   string
	DSN      string
	MaxConns int
	MinConns int
	// ArchiveDSN points the event archive at a warehouse-side
	// Postgres. Empty disables archiving.
	ArchiveDSN string
}

type RedisConfig struct {
	// Addr empty disables event fanout and the deadline watcher.
	Addr     string
	Password string
	DB       int
}

type PayoutConfig struct {
	// URL of the settlement service that moves withdrawn value.
	// Empty falls back to the no-op transferer (local development).
	URL string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "*")),
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 5),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 10),
		},
		Store: StoreConfig{
			Driver:     getEnv("STORE_DRIVER", "postgres"),
			DSN:        getEnv("DB_DSN", ""),
			MaxConns:   getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:   getEnvAsInt("DB_MIN_CONNS", 2),
			ArchiveDSN: getEnv("ARCHIVE_DB_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Payout: PayoutConfig{
			URL: getEnv("PAYOUT_URL", ""),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Store.Driver {
	case "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("DB_DSN is required when STORE_DRIVER=postgres")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
