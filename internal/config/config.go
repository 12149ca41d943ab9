package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          string
	DBDriver      string
	DBDSN         string
	LogFile       string
	RedisAddr     string
	CacheTTL      time.Duration
	SeedCatalog   bool
	SeedUsers     bool
	RatePerMinute int
	CookieSecure  bool
}

func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DBDSN:         getEnv("DB_DSN", "storefront.db"), // sqlite file in project root
		LogFile:       getEnv("LOG_FILE", "./storefront.log"),
		RedisAddr:     os.Getenv("REDIS_ADDR"), // empty disables the product cache
		CacheTTL:      getEnvDuration("CACHE_TTL", 10*time.Minute),
		SeedCatalog:   getEnvBool("SEED_CATALOG", true),
		SeedUsers:     getEnvBool("SEED_USERS", true),
		RatePerMinute: getEnvInt("RATE_LIMIT_PER_MIN", 60),
		CookieSecure:  getEnvBool("COOKIE_SECURE", false),
	}
	log.Printf("[config] PORT=%s DB_DRIVER=%s DB_DSN=%s LOG_FILE=%s REDIS_ADDR=%s CACHE_TTL=%s",
		cfg.Port, cfg.DBDriver, cfg.DBDSN, cfg.LogFile, cfg.RedisAddr, cfg.CacheTTL)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
