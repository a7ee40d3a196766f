package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	AppPort           string
	JWTSecret         string
	TokenExpires      time.Duration
	UpstreamBaseURL   string
	UpstreamAuthURL   string
	UpstreamSecret    string
	Currency          string
	TelegramBotToken  string
	TelegramAdminChat string
}

// Load reads environment variables and returns a populated Config.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		TokenExpires:      getEnvDuration("JWT_TTL_HOURS", 24) * time.Hour,
		UpstreamBaseURL:   getEnv("UPSTREAM_BASE_URL", "http://localhost:7000/v1"),
		UpstreamAuthURL:   getEnv("UPSTREAM_AUTH_URL", "http://localhost:7000/v1/auth/token"),
		UpstreamSecret:    getEnv("UPSTREAM_API_SECRET_KEY", ""),
		Currency:          getEnv("CURRENCY", "USD"),
		TelegramBotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAdminChat: getEnv("TELEGRAM_ADMIN_CHAT_ID", ""),
	}

	if cfg.AppPort == "" {
		log.Fatal("APP_PORT must be set")
	}

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback int) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return time.Duration(parsed)
		}
	}
	return time.Duration(fallback)
}
