package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Response modes select what an upload returns when the client sets the
// alternate-response flag.
const (
	ResponseModeRedirect = "redirect"
	ResponseModeHTML     = "html"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Address string
	Port    string
	Debug   bool

	// Storage configuration
	RootDir string

	// Upload gating
	UseKey bool
	Key    string

	// Presentation
	UserURL      string // base URL used to build download links
	Title        string
	UseCORS      bool
	ResponseMode string // "redirect" or "html"

	// Digest configuration
	ReportSchedule string // "", "daily" or "weekly"

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Address: getEnv("ADDRESS", "127.0.0.1"),
		Port:    getEnv("PORT", "8000"),
		Debug:   getBoolEnv("DEBUG", false),

		RootDir: getEnv("ROOT_DIR", "/var/files"),

		UseKey: getBoolEnv("USE_KEY", false),
		Key:    getEnv("KEY", ""),

		Title:        getEnv("TITLE", "QuickDrop"),
		UseCORS:      getBoolEnv("USE_CORS", false),
		ResponseMode: strings.ToLower(getEnv("RESPONSE_MODE", ResponseModeRedirect)),

		ReportSchedule: strings.ToLower(getEnv("REPORT_SCHEDULE", "")),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}

	// The public URL defaults to whatever the server binds to.
	cfg.UserURL = strings.TrimRight(getEnv("USER_URL", cfg.ListenURL()), "/")

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ListenAddr returns the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%s", c.Address, c.Port)
}

// ListenURL returns the bind address as an http URL.
func (c *Config) ListenURL() string {
	return "http://" + c.ListenAddr()
}

// DigestEnabled reports whether the periodic upload digest should run.
func (c *Config) DigestEnabled() bool {
	return c.ReportSchedule != ""
}

func (c *Config) validate() error {
	if c.UseKey && c.Key == "" {
		return fmt.Errorf("KEY must be set when USE_KEY is enabled")
	}

	if c.ResponseMode != ResponseModeRedirect && c.ResponseMode != ResponseModeHTML {
		return fmt.Errorf("RESPONSE_MODE must be '%s' or '%s'", ResponseModeRedirect, ResponseModeHTML)
	}

	switch c.ReportSchedule {
	case "", "daily", "weekly":
	default:
		return fmt.Errorf("REPORT_SCHEDULE must be 'daily' or 'weekly'")
	}

	if c.DigestEnabled() && c.TeamsWebhookURL == "" && c.NotificationEmail == "" {
		return fmt.Errorf("at least one notification method must be configured (TEAMS_WEBHOOK_URL or NOTIFICATION_EMAIL)")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
