package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Port              string        `yaml:"port"`
	DBConn            string        `yaml:"dbConn"`
	Store             string        `yaml:"store"`
	LogLevel          string        `yaml:"logLevel"`
	UploadDir         string        `yaml:"uploadDir"`
	MaxUploadBytes    int64         `yaml:"maxUploadBytes"`
	CORSAllowOrigins  []string      `yaml:"corsAllowOrigins"`
	UploadRetention   time.Duration `yaml:"uploadRetention"`
	RetentionSchedule string        `yaml:"retentionSchedule"`
	SMTPHost          string        `yaml:"smtpHost"`
	SMTPPort          string        `yaml:"smtpPort"`
	SMTPUsername      string        `yaml:"smtpUsername"`
	SMTPPassword      string        `yaml:"smtpPassword"`
	SenderEmail       string        `yaml:"senderEmail"`
	NotifyEmail       string        `yaml:"notifyEmail"`
}

func defaults() *Config {
	return &Config{
		Port:              "5000",
		DBConn:            "host=localhost port=5436 user=test password=test dbname=credit_reports sslmode=disable",
		Store:             StorePostgres,
		LogLevel:          "INFO",
		UploadDir:         "uploads",
		MaxUploadBytes:    10 << 20,
		CORSAllowOrigins:  []string{"*"},
		RetentionSchedule: "@daily",
		SMTPPort:          "587",
	}
}

// NewConfig loads configuration from an optional .env file, an optional
// YAML file named by CONFIG_FILE and environment variables, in that order
// of increasing precedence.
func NewConfig() (*Config, error) {
	// Missing .env is fine outside local development.
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.DBConn = getEnv("DB_CONN", c.DBConn)
	c.Store = strings.ToLower(getEnv("STORE", c.Store))
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.UploadDir = getEnv("UPLOAD_DIR", c.UploadDir)
	c.RetentionSchedule = getEnv("RETENTION_SCHEDULE", c.RetentionSchedule)
	c.SMTPHost = getEnv("SMTP_HOST", c.SMTPHost)
	c.SMTPPort = getEnv("SMTP_PORT", c.SMTPPort)
	c.SMTPUsername = getEnv("SMTP_USERNAME", c.SMTPUsername)
	c.SMTPPassword = getEnv("SMTP_PASSWORD", c.SMTPPassword)
	c.SenderEmail = getEnv("SENDER_EMAIL", c.SenderEmail)
	c.NotifyEmail = getEnv("NOTIFY_EMAIL", c.NotifyEmail)

	if raw, ok := os.LookupEnv("CORS_ALLOW_ORIGINS"); ok {
		c.CORSAllowOrigins = splitAndTrim(raw)
	}
	if raw, ok := os.LookupEnv("MAX_UPLOAD_BYTES"); ok {
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = v
	}
	if raw, ok := os.LookupEnv("UPLOAD_RETENTION"); ok {
		v, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid UPLOAD_RETENTION: %w", err)
		}
		c.UploadRetention = v
	}
	return nil
}

func (c *Config) validate() error {
	if c.Store != StorePostgres && c.Store != StoreMemory {
		return fmt.Errorf("STORE must be %q or %q, got %q", StorePostgres, StoreMemory, c.Store)
	}
	if c.Store == StorePostgres && c.DBConn == "" {
		return fmt.Errorf("DB_CONN is required")
	}
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR is required")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.UploadRetention < 0 {
		return fmt.Errorf("UPLOAD_RETENTION must not be negative")
	}
	if c.NotifyEmail != "" && c.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST is required when NOTIFY_EMAIL is set")
	}
	return nil
}

// NotificationsEnabled reports whether upload notifications should be sent.
func (c *Config) NotificationsEnabled() bool {
	return c.SMTPHost != "" && c.NotifyEmail != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func splitAndTrim(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
