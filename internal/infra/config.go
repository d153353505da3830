package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	Owner            string
	FeeRecipient     string
	DonationFeeBps   int
	ChangeFee        uint64
	AcceptedToken    string
	AllowedOrigins   []string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. DATABASE_URL is optional: when unset the service
// runs on the in-memory store.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Owner:            os.Getenv("OWNER"),
		FeeRecipient:     os.Getenv("FEE_RECIPIENT"),
		DonationFeeBps:   getEnvInt("DONATION_FEE_BPS", 500),
		ChangeFee:        uint64(getEnvInt("CHANGE_FEE", 0)),
		AcceptedToken:    os.Getenv("ACCEPTED_TOKEN"),
		AllowedOrigins:   splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
	}

	if cfg.Owner == "" {
		return nil, fmt.Errorf("OWNER is required")
	}

	if cfg.FeeRecipient == "" {
		return nil, fmt.Errorf("FEE_RECIPIENT is required")
	}

	if cfg.DonationFeeBps < 0 || cfg.DonationFeeBps > 10_000 {
		return nil, fmt.Errorf("DONATION_FEE_BPS must be between 0 and 10000, got %d", cfg.DonationFeeBps)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
