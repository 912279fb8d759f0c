// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"notes_backend/internal/platform/db"
	"notes_backend/internal/platform/redis"
)

// Config is the complete server configuration.
type Config struct {
	Port          string
	DB            db.Config
	RunMigrations bool
	Redis         redis.Config
	CacheTTL      time.Duration
	JWTSecret     string
	JWTTTL        time.Duration
	CORSOrigins   []string
	LogLevel      string
	LogFormat     string
	GinMode       string
}

// LoadDotEnv loads variables from path when the file exists. Variables already set win.
func LoadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		slog.Info(".env not found; using system environment variables", "path", path)
	}
}

// Load reads the configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DB:          db.LoadConfigFromEnv(),
		Redis:       redis.LoadConfigFromEnv(),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		GinMode:     os.Getenv("GIN_MODE"),
	}

	var err error
	if cfg.RunMigrations, err = strconv.ParseBool(getEnv("RUN_MIGRATIONS", "true")); err != nil {
		return Config{}, fmt.Errorf("invalid RUN_MIGRATIONS: %w", err)
	}
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("NOTES_CACHE_TTL", "5m")); err != nil {
		return Config{}, fmt.Errorf("invalid NOTES_CACHE_TTL: %w", err)
	}
	if cfg.JWTTTL, err = time.ParseDuration(getEnv("JWT_TTL", "1h")); err != nil {
		return Config{}, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.JWTTTL <= 0 {
		return Config{}, errors.New("JWT_TTL must be positive")
	}

	// An empty HMAC key lets anyone mint tokens, so there is no insecure default in any mode.
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return Config{}, errors.New("JWT_SECRET must be set")
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
