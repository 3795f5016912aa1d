package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // timezone lookups must not depend on the host

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Sales     SalesConfig
	Reporting ReportingConfig
	Metrics   MetricsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// SalesConfig holds domain defaults.
type SalesConfig struct {
	DefaultCommissionPercent decimal.Decimal
	SeedSellers              bool
}

// ReportingConfig holds scheduler-related settings.
type ReportingConfig struct {
	CronSchedule string
	Timezone     string
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// a missing .env is fine, values may come from the environment
		_ = godotenv.Load()
	}

	commission, err := decimal.NewFromString(getenvWithDefault("DEFAULT_COMMISSION_PERCENT", "5"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_COMMISSION_PERCENT: %w", err)
	}
	shutdown, err := time.ParseDuration(getenvWithDefault("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	seed, err := strconv.ParseBool(getenvWithDefault("SEED_SELLERS", "true"))
	if err != nil {
		return nil, fmt.Errorf("SEED_SELLERS: %w", err)
	}
	metricsOn, err := strconv.ParseBool(getenvWithDefault("METRICS_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("METRICS_ENABLED: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getenvWithDefault("APP_PORT", "8081"),
			ShutdownTimeout: shutdown,
		},
		Sales: SalesConfig{
			DefaultCommissionPercent: commission,
			SeedSellers:              seed,
		},
		Reporting: ReportingConfig{
			CronSchedule: getenvWithDefault("REPORT_CRON_SCHEDULE", "0 20 * * *"),
			Timezone:     getenvWithDefault("TIMEZONE", "America/Sao_Paulo"),
		},
		Metrics: MetricsConfig{
			Enabled: metricsOn,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and parseable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}

	if c.Reporting.CronSchedule == "" {
		return errors.New("REPORT_CRON_SCHEDULE must be provided")
	}
	if _, err := cron.ParseStandard(c.Reporting.CronSchedule); err != nil {
		return fmt.Errorf("REPORT_CRON_SCHEDULE is invalid: %w", err)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("TIMEZONE is invalid: %w", err)
	}

	return nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Reporting.Timezone == "" {
		return nil, errors.New("TIMEZONE must be provided")
	}
	return time.LoadLocation(c.Reporting.Timezone)
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
