package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Cache    CacheConfig
	Cron     CronConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

type CacheConfig struct {
	Host string
	Port string
}

type CronConfig struct {
	// ExpirySchedule is the cron expression for the expiry sweep.
	ExpirySchedule string
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		Cache: CacheConfig{
			Host: getEnv("CACHE_HOST", "localhost"),
			Port: getEnv("CACHE_PORT", "6379"),
		},
		Cron: CronConfig{
			ExpirySchedule: getEnv("EXPIRY_CRON", "0 9 * * *"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
