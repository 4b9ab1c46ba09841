package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Upload   UploadConfig
	Import   ImportConfig
	Audit    AuditConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// JWTConfig holds JWT configuration.
// Secret is optional; when set, a verified bearer token names the audit actor.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// UploadConfig holds spreadsheet upload settings
type UploadConfig struct {
	MaxFileSize int64
	ArchiveDir  string
}

// ImportConfig holds batch import settings
type ImportConfig struct {
	ValidationMode      string
	ResultTTL           time.Duration
	ResultSweepInterval time.Duration
}

// AuditConfig holds the append-only upload log settings
type AuditConfig struct {
	LogPath string
}

const (
	ValidationModeFailFast   = "fail_fast"
	ValidationModeCollectAll = "collect_all"
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
		slog.Info("no .env file found, using environment variables")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris_employee_import"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
		MinConns: dbMinConns,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("APP_FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Upload configuration
	maxFileSize, err := strconv.ParseInt(getEnv("UPLOAD_MAX_FILE_SIZE", "10485760"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_FILE_SIZE: %w", err)
	}

	config.Upload = UploadConfig{
		MaxFileSize: maxFileSize,
		ArchiveDir:  getEnv("UPLOAD_ARCHIVE_DIR", "./uploads"),
	}

	// Import configuration
	resultTTL, err := time.ParseDuration(getEnv("IMPORT_RESULT_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMPORT_RESULT_TTL: %w", err)
	}
	sweepInterval, err := time.ParseDuration(getEnv("IMPORT_RESULT_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMPORT_RESULT_SWEEP_INTERVAL: %w", err)
	}

	config.Import = ImportConfig{
		ValidationMode:      strings.ToLower(getEnv("IMPORT_VALIDATION_MODE", ValidationModeFailFast)),
		ResultTTL:           resultTTL,
		ResultSweepInterval: sweepInterval,
	}

	config.Audit = AuditConfig{
		LogPath: getEnv("AUDIT_LOG_PATH", "upload_log.txt"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) must be between 0 and DB_MAX_CONNS (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		return fmt.Errorf("APP_PORT (%d) must be 1-65535", c.App.Port)
	}
	switch strings.ToLower(c.App.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.App.LogLevel)
	}
	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("UPLOAD_MAX_FILE_SIZE must be positive")
	}
	if c.Upload.ArchiveDir == "" {
		return fmt.Errorf("UPLOAD_ARCHIVE_DIR is required")
	}
	if c.Import.ValidationMode != ValidationModeFailFast && c.Import.ValidationMode != ValidationModeCollectAll {
		return fmt.Errorf("IMPORT_VALIDATION_MODE (%q) must be one of: %s, %s",
			c.Import.ValidationMode, ValidationModeFailFast, ValidationModeCollectAll)
	}
	if c.Import.ResultTTL <= 0 {
		return fmt.Errorf("IMPORT_RESULT_TTL must be positive")
	}
	if c.Import.ResultSweepInterval <= 0 {
		return fmt.Errorf("IMPORT_RESULT_SWEEP_INTERVAL must be positive")
	}
	if c.Audit.LogPath == "" {
		return fmt.Errorf("AUDIT_LOG_PATH is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel converts LOG_LEVEL into a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
