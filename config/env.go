package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverFile     = "file"
	StoreDriverPostgres = "postgres"
	StoreDriverSQLite   = "sqlite"
	StoreDriverRedis    = "redis"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Redis     RedisConfig
	DB        DBConfig
	POS       POSConfig
	RateLimit string
}

type ServerConfig struct {
	Host            string
	Port            string
	Mode            string
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
}

type StoreConfig struct {
	Driver      string
	DataDir     string
	RedisPrefix string
}

type DBConfig struct {
	DSN string
}

type POSConfig struct {
	PricingPolicy     string
	LowStockThreshold int
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "127.0.0.1"),
			Port:            getEnv("SERVER_PORT", "5000"),
			Mode:            getEnv("GIN_MODE", "release"),
			MaxUploadBytes:  int64(getEnvInt("MAX_UPLOAD_MB", 8)) << 20,
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(getEnv("STORE_DRIVER", StoreDriverFile)),
			DataDir:     getEnv("DATA_DIR", "data"),
			RedisPrefix: getEnv("REDIS_PREFIX", "pos:doc:"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		DB: DBConfig{
			DSN: getEnv("DB_DSN", ""),
		},
		POS: POSConfig{
			PricingPolicy:     strings.ToLower(getEnv("PRICING_POLICY", "client")),
			LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 5),
		},
		RateLimit: getEnv("RATE_LIMIT", "300-M"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Warning: invalid duration for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
