package utils

import (
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("GAMEHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("GAMEHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "gamehub"
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: envHours("GAMEHUB_JWT_TTL_HOURS", 24*time.Hour),
	}
}

type CheckerConfig struct {
	Interval time.Duration
	CacheTTL time.Duration
}

func LoadCheckerConfig() CheckerConfig {
	return CheckerConfig{
		Interval: envMinutes("GAMEHUB_CHECK_INTERVAL_MINUTES", 30*time.Minute),
		CacheTTL: envMinutes("GAMEHUB_CACHE_TTL_MINUTES", 60*time.Minute),
	}
}

func envHours(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Hour
}

func envMinutes(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return time.Duration(n) * time.Minute
}
