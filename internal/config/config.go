package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything main needs to wire the portal.
type Config struct {
	Addr           string
	DBPath         string
	SessionTTL     time.Duration
	CookieSecure   bool
	TrustedProxies []string

	// Bootstrap admin account, created on startup only when no admin
	// member exists yet. Replaces the fixed id/password pair the old
	// portal shipped with.
	BootstrapAdminID       string
	BootstrapAdminPassword string
}

// Load reads .env (if present) and the environment.
func Load() Config {
	_ = godotenv.Load()

	c := Config{
		Addr:                   env("ADDR", ":8080"),
		DBPath:                 env("DB_PATH", "tfportal.db"),
		SessionTTL:             30 * 24 * time.Hour,
		CookieSecure:           boolEnv("COOKIE_SECURE", true),
		BootstrapAdminID:       strings.TrimSpace(os.Getenv("BOOTSTRAP_ADMIN_ID")),
		BootstrapAdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.SessionTTL = d
		}
	}

	for _, p := range strings.Split(env("TRUSTED_PROXIES", "127.0.0.1,::1"), ",") {
		if p = strings.TrimSpace(p); p != "" {
			c.TrustedProxies = append(c.TrustedProxies, p)
		}
	}

	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func boolEnv(k string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(k)))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}
