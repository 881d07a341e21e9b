package config

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env            string
	Port           int
	JWTSecret      string
	AllowedOrigins []string
	StoreBackend   string // "memory" or "postgres"
	DBURL          string
	OTLPEndpoint   string
	SeedUserEmail  string
	SeedUserPass   string
}

func Load() (Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}

	cfg := Config{
		Env:            getEnv("APP_ENV", "dev"),
		Port:           getEnvInt("PORT", 8080),
		JWTSecret:      secret,
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		StoreBackend:   getEnv("STORE_BACKEND", "memory"),
		DBURL:          buildDBURL(),
		OTLPEndpoint:   getEnv("OTLP_ENDPOINT", ""),
		SeedUserEmail:  getEnv("SEED_USER_EMAIL", ""),
		SeedUserPass:   getEnv("SEED_USER_PASSWORD", ""),
	}

	if cfg.StoreBackend != "memory" && cfg.StoreBackend != "postgres" {
		return Config{}, errors.New("STORE_BACKEND must be memory or postgres")
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "minibank")
	pass := getEnv("DB_PASSWORD", "minibank")
	name := getEnv("DB_NAME", "minibank")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)
		if err != nil {
			return fallback
		}
		return num
	}
	return fallback
}
