package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURI        string
	SweepSchedule      string // cron expression for the alert sweep
	AlertThresholdDays int
	SweepWorkers       int
	WebhookTimeout     time.Duration
	LogLevel           string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env file is optional in production
	}

	return &Config{
		DatabaseURI:        os.Getenv("DATABASE_URI"),
		SweepSchedule:      getEnvOrDefault("SWEEP_SCHEDULE", "0 8 * * *"),
		AlertThresholdDays: getEnvIntOrDefault("ALERT_THRESHOLD_DAYS", 5),
		SweepWorkers:       getEnvIntOrDefault("SWEEP_WORKERS", 4),
		WebhookTimeout:     time.Duration(getEnvIntOrDefault("WEBHOOK_TIMEOUT_SECONDS", 10)) * time.Second,
		LogLevel:           getEnvOrDefault("LOG_LEVEL", "INFO"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
