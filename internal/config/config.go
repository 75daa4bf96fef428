// ABOUTME: Centralized configuration for the triage assistant
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the triage system
type Config struct {
	// Storage settings
	DBPath        string
	RetentionDays int

	// OpenAI settings
	OpenAIKey  string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration

	// Gmail settings
	GmailMaxResults int

	// Charm backup settings
	CharmHost   string
	CharmDBName string
	AutoSync    bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		DBPath:          os.Getenv("TRIAGE_DB_PATH"),
		RetentionDays:   getEnvInt("TRIAGE_RETENTION_DAYS", 90),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		ChatModel:       getEnv("TRIAGE_OPENAI_MODEL", "gpt-4o-mini"),
		Timeout:         getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:      getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		GmailMaxResults: getEnvInt("GMAIL_MAX_RESULTS", 10),
		CharmHost:       getEnv("CHARM_HOST", "charm.2389.dev"),
		CharmDBName:     getEnv("CHARM_DB", "inbox-triage"),
		AutoSync:        getEnvBool("CHARM_AUTO_SYNC", true),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.RetentionDays <= 0 {
		return fmt.Errorf("TRIAGE_RETENTION_DAYS must be positive, got %d", c.RetentionDays)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.GmailMaxResults <= 0 || c.GmailMaxResults > 500 {
		return fmt.Errorf("GMAIL_MAX_RESULTS must be 1-500, got %d", c.GmailMaxResults)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
