package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

// Config holds application configuration
type Config struct {
	Port          string
	DBConn        string
	LogLevel      string
	JWTSecret     string
	HMACSecret    string
	EncryptionKey []byte
	RateFeedURL   string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	ReviewReminderDays  int
	RateRefreshSchedule string
	ReminderSchedule    string
	CityTierDefault     models.CityTier
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		DBConn:              getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=planner sslmode=disable"),
		LogLevel:            getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:           getEnv("JWT_SECRET", "secret"),
		HMACSecret:          getEnv("HMAC_SECRET", "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"),
		RateFeedURL:         getEnv("RATE_FEED_URL", "https://rates.trustner.in/benchmark.xml"),
		SMTPHost:            getEnv("SMTP_HOST", "localhost"),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		SenderEmail:         getEnv("SENDER_EMAIL", "planner@trustner.in"),
		RateRefreshSchedule: getEnv("RATE_REFRESH_SCHEDULE", "0 6 * * *"),
		ReminderSchedule:    getEnv("REMINDER_SCHEDULE", "0 9 * * *"),
		CityTierDefault:     models.CityTier(getEnv("CITY_TIER_DEFAULT", string(models.CityNonMetro))),
	}

	var err error
	if cfg.SMTPPort, err = getEnvInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.ReviewReminderDays, err = getEnvInt("REVIEW_REMINDER_DAYS", 180); err != nil {
		return nil, err
	}

	key := getEnv("ENCRYPTION_KEY", "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6")
	if key == "" {
		return nil, fmt.Errorf("ENCRYPTION_KEY is required")
	}
	cfg.EncryptionKey, err = hex.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be hex: %w", err)
	}
	if len(cfg.EncryptionKey) != 32 {
		return nil, fmt.Errorf("ENCRYPTION_KEY must decode to 32 bytes, got %d", len(cfg.EncryptionKey))
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.HMACSecret == "" {
		return nil, fmt.Errorf("HMAC_SECRET is required")
	}
	if cfg.ReviewReminderDays <= 0 {
		return nil, fmt.Errorf("REVIEW_REMINDER_DAYS must be positive")
	}
	if cfg.CityTierDefault != models.CityMetro && cfg.CityTierDefault != models.CityNonMetro {
		return nil, fmt.Errorf("CITY_TIER_DEFAULT must be %q or %q", models.CityMetro, models.CityNonMetro)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
