package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const DefaultAPIEndpoint = "https://your-api-id.execute-api.us-east-1.amazonaws.com/prod"

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr  string   `env:"SERVER_ADDR" envDefault:":8501"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Backend API configuration
	APICfg HTTPClientConfig `envPrefix:"API_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"UPLOAD_"`

	// Export configuration
	ExportCfg ExportConfig `envPrefix:"EXPORT_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string        `env:"BOT_TOKEN"`
	UpdateTimeout      int           `env:"UPDATE_TIMEOUT" envDefault:"60"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int           `env:"RATE_LIMIT_BURST" envDefault:"5"`
	StateTTL           time.Duration `env:"STATE_TTL" envDefault:"24h"`
	ShutdownTimeout    int           `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

// HTTPClientConfig configures the backend connector. Zero timeouts mean the
// client waits for the backend for as long as the transport allows.
type HTTPClientConfig struct {
	Url                   string        `env:"ENDPOINT" envDefault:"https://your-api-id.execute-api.us-east-1.amazonaws.com/prod"`
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"0s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"30s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"0s"`
	Token                 string        `env:"TOKEN"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize   int64 `env:"MAX_FILE_SIZE" envDefault:"52428800"`    // 50 MiB
	MaxFileCount  int   `env:"MAX_FILE_COUNT" envDefault:"64"`
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"268435456"` // 256 MiB, multipart form limit
	Workers       int   `env:"WORKERS" envDefault:"1"`
}

// ExportConfig holds search export settings
type ExportConfig struct {
	UnidocLicenseKey string `env:"UNIDOC_LICENSE_KEY"`
}

// LoadConfig reads .env.<environment> when present and then the process
// environment. The result is read-only for the life of the process.
func LoadConfig(environment string) (*Config, error) {
	envFile := getEnvFile(environment)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	_ = godotenv.Load(envFile)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = environment
	cfg.APICfg.Url = strings.TrimRight(cfg.APICfg.Url, "/")

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.APICfg.Url == "" {
		errors = append(errors, "API_ENDPOINT must not be empty")
	}

	if cfg.FileUploadCfg.Workers < 1 || cfg.FileUploadCfg.Workers > 16 {
		errors = append(errors, fmt.Sprintf("UPLOAD_WORKERS must be between 1 and 16, got %d", cfg.FileUploadCfg.Workers))
	}

	if cfg.FileUploadCfg.MaxFileCount < 1 {
		errors = append(errors, fmt.Sprintf("UPLOAD_MAX_FILE_COUNT must be positive, got %d", cfg.FileUploadCfg.MaxFileCount))
	}

	if cfg.FileUploadCfg.MaxFileSize < 1 || cfg.FileUploadCfg.MaxFileSize > cfg.FileUploadCfg.MaxUploadSize {
		errors = append(errors, fmt.Sprintf("UPLOAD_MAX_FILE_SIZE must be between 1 and UPLOAD_MAX_UPLOAD_SIZE(%d), got %d", cfg.FileUploadCfg.MaxUploadSize, cfg.FileUploadCfg.MaxFileSize))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// ValidateTelegram checks the settings only the bot needs.
func (c *Config) ValidateTelegram() error {
	t := c.TelegramCfg
	if t.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN must be set")
	}
	if t.RateLimitPerMinute < 1 || t.RateLimitPerMinute > 60 {
		return fmt.Errorf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", t.RateLimitPerMinute)
	}
	if t.RateLimitBurst < 1 || t.RateLimitBurst > 20 {
		return fmt.Errorf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", t.RateLimitBurst)
	}
	if t.ShutdownTimeout < 1 || t.ShutdownTimeout > 300 {
		return fmt.Errorf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", t.ShutdownTimeout)
	}
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development", "":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
