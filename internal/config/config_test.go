package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_DSN", "LOG_FILE", "REDIS_ADDR", "CACHE_TTL",
		"SEED_CATALOG", "SEED_USERS", "RATE_LIMIT_PER_MIN", "COOKIE_SECURE"} {
		t.Setenv(k, "")
	}
	c := Load()
	if c.Port != "8080" || c.DBDriver != "sqlite" || c.DBDSN != "storefront.db" {
		t.Fatalf("server/db defaults: %+v", c)
	}
	if c.RedisAddr != "" || c.CacheTTL != 10*time.Minute {
		t.Fatalf("cache defaults: %+v", c)
	}
	if !c.SeedCatalog || !c.SeedUsers || c.CookieSecure {
		t.Fatalf("flag defaults: %+v", c)
	}
	if c.RatePerMinute != 60 {
		t.Fatalf("rate default: %d", c.RatePerMinute)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_DSN", "postgres://shop@localhost/shop?sslmode=disable")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("SEED_CATALOG", "false")
	t.Setenv("RATE_LIMIT_PER_MIN", "120")
	t.Setenv("COOKIE_SECURE", "true")
	c := Load()
	if c.Port != "9090" || c.DBDriver != "postgres" {
		t.Fatalf("server/db env: %+v", c)
	}
	if c.RedisAddr != "localhost:6379" || c.CacheTTL != 30*time.Second {
		t.Fatalf("cache env: %+v", c)
	}
	if c.SeedCatalog || !c.CookieSecure || c.RatePerMinute != 120 {
		t.Fatalf("flags env: %+v", c)
	}
}

func TestLoadIgnoresBadValues(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("RATE_LIMIT_PER_MIN", "-5")
	t.Setenv("SEED_USERS", "maybe")
	c := Load()
	if c.CacheTTL != 10*time.Minute || c.RatePerMinute != 60 || !c.SeedUsers {
		t.Fatalf("bad values should fall back to defaults: %+v", c)
	}
}
