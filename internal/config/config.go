package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field maps 1:1 to an env var of the same name.
type Config struct {
	// Server
	Port               int    `mapstructure:"PORT"`
	Env                string `mapstructure:"APP_ENV"` // development | production
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`

	// Storage
	StoreDriver   string        `mapstructure:"STORE_DRIVER"` // memory | badger | sql | redis
	BadgerPath    string        `mapstructure:"BADGER_PATH"`
	DatabaseURL   string        `mapstructure:"DATABASE_URL"`
	RedisURL      string        `mapstructure:"REDIS_URL"`
	FlushInterval time.Duration `mapstructure:"FLUSH_INTERVAL"`

	// Jobs
	AlertSchedule string `mapstructure:"ALERT_SCHEDULE"` // robfig/cron spec with seconds

	// SMTP — alert e-mails are sent only when SMTP_HOST and ALERT_EMAIL_TO are set
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	AlertEmailTo string `mapstructure:"ALERT_EMAIL_TO"` // comma-separated

	// Business
	DealDeleteCascade bool   `mapstructure:"DEAL_DELETE_CASCADE"`
	ExportPath        string `mapstructure:"EXPORT_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Sensible defaults for local use
	v.SetDefault("PORT", 8000)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 600)
	v.SetDefault("STORE_DRIVER", "badger")
	v.SetDefault("BADGER_PATH", "./data/badger")
	v.SetDefault("DATABASE_URL", "sqlite:./data/brokerbook.db")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("FLUSH_INTERVAL", "5s")
	v.SetDefault("ALERT_SCHEDULE", "0 0 8 * * *")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USER", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("ALERT_EMAIL_TO", "")
	v.SetDefault("DEAL_DELETE_CASCADE", false)
	v.SetDefault("EXPORT_PATH", "./data/exports")

	// Optional .env file for local development — does not fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.FlushInterval <= 0 {
		return nil, fmt.Errorf("FLUSH_INTERVAL must be positive, got %s", cfg.FlushInterval)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// AlertRecipients splits ALERT_EMAIL_TO; nil when alert mail is not configured.
func (c *Config) AlertRecipients() []string {
	if c.SMTPHost == "" {
		return nil
	}
	var out []string
	for _, addr := range strings.Split(c.AlertEmailTo, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}
