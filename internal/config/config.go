package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port              string
	DatabasePath      string
	Env               string
	LowStockThreshold int
	ExportDir         string
	BrandingPath      string
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8745")
	cfg.DatabasePath = getEnv("DATABASE_PATH", "stockledger.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.LowStockThreshold = getEnvInt("LOW_STOCK_THRESHOLD", 5)
	cfg.ExportDir = getEnv("EXPORT_DIR", "exports")
	cfg.BrandingPath = getEnv("BRANDING_PATH", "config.json")
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			log.Printf("invalid integer for %s: %s", key, v)
			return def
		}
		return n
	}
	return def
}
