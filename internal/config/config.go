package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Admin     AdminConfig     `yaml:"admin"`
	Storage   StorageConfig   `yaml:"storage"`
	Email     EmailConfig     `yaml:"email"`
	Log       LogConfig       `yaml:"log"`
	Listings  ListingsConfig  `yaml:"listings"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Environment string `yaml:"environment"` // "development" or "production"
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig contains session token settings
type JWTConfig struct {
	Secret             string `yaml:"secret"`
	SessionExpiryHours int    `yaml:"session_expiry_hours"`
	AdminExpiryHours   int    `yaml:"admin_expiry_hours"`
}

// AdminConfig holds the single administrator credential. Administrators are
// not rows in the users table.
type AdminConfig struct {
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"` // bcrypt
}

// StorageConfig contains image storage settings
type StorageConfig struct {
	UploadDir    string   `yaml:"upload_dir"`
	BaseURL      string   `yaml:"base_url"`
	MaxFileSize  int64    `yaml:"max_file_size_mb"`
	AllowedTypes []string `yaml:"allowed_types"`
}

// EmailConfig contains SendGrid settings. An empty API key logs mail instead.
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromAddress    string `yaml:"from_address"`
	FromName       string `yaml:"from_name"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// ListingsConfig contains search defaults
type ListingsConfig struct {
	PlaceholderImage string `yaml:"placeholder_image"`
	DefaultPageSize  int32  `yaml:"default_page_size"`
	MaxPageSize      int32  `yaml:"max_page_size"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	Enabled               bool   `yaml:"enabled"`
	SyncOccupancyStatus   string `yaml:"sync_occupancy_status"`
	SendInquiryDigest     string `yaml:"send_inquiry_digest"`
	InquiryDigestAgeHours int    `yaml:"inquiry_digest_age_hours"`
}

// Load reads configuration from a YAML file. A .env file next to the
// process, if present, is loaded into the environment first.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("APP_ENV"); val != "" {
		c.Server.Environment = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Admin
	if val := os.Getenv("ADMIN_EMAIL"); val != "" {
		c.Admin.Email = val
	}
	if val := os.Getenv("ADMIN_PASSWORD_HASH"); val != "" {
		c.Admin.PasswordHash = val
	}

	// Storage
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}
	if val := os.Getenv("STORAGE_BASE_URL"); val != "" {
		c.Storage.BaseURL = val
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}
	if val := os.Getenv("EMAIL_FROM"); val != "" {
		c.Email.FromAddress = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Scheduler
	if val := os.Getenv("SCHEDULER_ENABLED"); val != "" {
		c.Scheduler.Enabled = strings.EqualFold(val, "true") || val == "1"
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Environment == "" {
		c.Server.Environment = "development"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.JWT.SessionExpiryHours == 0 {
		c.JWT.SessionExpiryHours = 24 * 7
	}
	if c.JWT.AdminExpiryHours == 0 {
		c.JWT.AdminExpiryHours = 8
	}
	if c.Storage.MaxFileSize == 0 {
		c.Storage.MaxFileSize = 5
	}
	if len(c.Storage.AllowedTypes) == 0 {
		c.Storage.AllowedTypes = []string{"image/jpeg", "image/png", "image/webp"}
	}
	if c.Email.FromName == "" {
		c.Email.FromName = "RentNest"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Listings.PlaceholderImage == "" {
		c.Listings.PlaceholderImage = "/images/placeholder.jpg"
	}
	if c.Listings.DefaultPageSize == 0 {
		c.Listings.DefaultPageSize = 12
	}
	if c.Listings.MaxPageSize == 0 {
		c.Listings.MaxPageSize = 50
	}
	if c.Scheduler.SyncOccupancyStatus == "" {
		c.Scheduler.SyncOccupancyStatus = "0 */15 * * * *" // every 15 minutes
	}
	if c.Scheduler.SendInquiryDigest == "" {
		c.Scheduler.SendInquiryDigest = "0 0 9 * * *" // daily at 9 AM UTC
	}
	if c.Scheduler.InquiryDigestAgeHours == 0 {
		c.Scheduler.InquiryDigestAgeHours = 24
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	if c.Admin.Email != "" && c.Admin.PasswordHash == "" {
		return fmt.Errorf("admin password hash is required when admin email is set")
	}

	if c.Storage.UploadDir == "" {
		return fmt.Errorf("upload directory is required")
	}

	if c.Listings.DefaultPageSize > c.Listings.MaxPageSize {
		return fmt.Errorf("default page size %d exceeds max page size %d", c.Listings.DefaultPageSize, c.Listings.MaxPageSize)
	}

	return nil
}

// IsProduction reports whether internal error details must be hidden.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) SessionExpiry() time.Duration {
	return time.Duration(c.JWT.SessionExpiryHours) * time.Hour
}

func (c *Config) AdminExpiry() time.Duration {
	return time.Duration(c.JWT.AdminExpiryHours) * time.Hour
}
