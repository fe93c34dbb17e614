// Package config holds the server configuration, loaded from the
// environment and validated before use.
package config

import (
	"os"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

// Defaults applied when the environment is silent.
const (
	DefaultAddr               = ":8099"
	DefaultUpcomingLimit      = 8
	DefaultRefreshIntervalMin = 1
)

// Config holds the server configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// UpcomingLimit caps the upcoming list pushed to dashboard panels.
	UpcomingLimit int

	// RefreshIntervalMin is the agenda refresher interval in minutes.
	RefreshIntervalMin int
}

// Load reads configuration from the environment, after best-effort loading
// of an optional .env file, and validates it.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		// Missing file is fine; explicit env always wins.
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	cfg := Config{
		Addr:               envOr("CALENDAR_ADDR", DefaultAddr),
		UpcomingLimit:      envIntOr("CALENDAR_UPCOMING_LIMIT", DefaultUpcomingLimit),
		RefreshIntervalMin: envIntOr("CALENDAR_REFRESH_INTERVAL_MIN", DefaultRefreshIntervalMin),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.UpcomingLimit, validation.Required, validation.Min(1), validation.Max(50)),
		validation.Field(&c.RefreshIntervalMin, validation.Required, validation.Min(1), validation.Max(60)),
	)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
