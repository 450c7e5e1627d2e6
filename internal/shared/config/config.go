package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv      string
	LogLevel    zerolog.Level
	Countdown   CountdownConfig
	MetricsAddr string // Empty disables the metrics endpoint
}

// CountdownConfig controls the race countdown.
type CountdownConfig struct {
	Steps int
	Tick  time.Duration
}

// IsDev reports whether human-readable logging should be used.
func (c *Config) IsDev() bool {
	return c.AppEnv == "dev"
}

// Load loads configuration from environment variables.
// A .env file in the working directory is read first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// A missing .env is fine; OS env vars are used instead.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	bindings := map[string]string{
		"app.env":           "APP_ENV",
		"log.level":         "LOG_LEVEL",
		"countdown.seconds": "COUNTDOWN_SECONDS",
		"countdown.tick":    "COUNTDOWN_TICK",
		"metrics.addr":      "METRICS_ADDR",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("could not bind %s: %w", key, err)
		}
	}

	v.SetDefault("app.env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("countdown.seconds", 3)
	v.SetDefault("countdown.tick", "1s")
	v.SetDefault("metrics.addr", "")

	level, err := zerolog.ParseLevel(v.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	tick, err := time.ParseDuration(v.GetString("countdown.tick"))
	if err != nil {
		return nil, fmt.Errorf("invalid COUNTDOWN_TICK: %w", err)
	}

	cfg := Config{
		AppEnv:   v.GetString("app.env"),
		LogLevel: level,
		Countdown: CountdownConfig{
			Steps: v.GetInt("countdown.seconds"),
			Tick:  tick,
		},
		MetricsAddr: v.GetString("metrics.addr"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.AppEnv == "" {
		return errors.New("APP_ENV is set but is an empty string")
	}
	if c.Countdown.Steps < 0 {
		return fmt.Errorf("COUNTDOWN_SECONDS must not be negative, got %d", c.Countdown.Steps)
	}
	if c.Countdown.Tick <= 0 {
		return fmt.Errorf("COUNTDOWN_TICK must be positive, got %s", c.Countdown.Tick)
	}
	return nil
}
