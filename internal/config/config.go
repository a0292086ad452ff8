package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	Database  DatabaseConfig
	JWT       JWTConfig
	Mail      MailConfig
	Scheduler SchedulerConfig
	Admin     AdminConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds admin access token configuration
type JWTConfig struct {
	Secret          string
	AccessTokenMins int
}

// MailConfig holds SMTP configuration for borrower reminders
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AppName  string
}

// Enabled reports whether an SMTP host is configured
func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

// SchedulerConfig holds cron schedules for background jobs
type SchedulerConfig struct {
	ReminderCron  string
	ArchiveCron   string
	JobTimeout    time.Duration
	RetentionDays int
	Location      *time.Location
}

// AdminConfig holds the default admin account seeded on first start
type AdminConfig struct {
	Username string
	Password string
	Email    string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	scheduler, err := loadSchedulerConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "3000"),
		Database:  loadDatabaseConfig(appMode),
		JWT:       loadJWTConfig(appMode),
		Mail:      loadMailConfig(),
		Scheduler: scheduler,
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", ""),
			Email:    getEnv("ADMIN_EMAIL", "admin@campus.local"),
		},
	}

	AppConfig = config

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "campus_inventory"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := "DEV_"
	if mode == "prod" {
		prefix = "PROD_"
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "60"))

	return JWTConfig{
		Secret:          getEnv(prefix+"JWT_SECRET", "default_secret"),
		AccessTokenMins: accessMins,
	}
}

// loadMailConfig loads SMTP settings; an empty MAIL_HOST disables sending
func loadMailConfig() MailConfig {
	port, _ := strconv.Atoi(getEnv("MAIL_PORT", "587"))

	return MailConfig{
		Host:     getEnv("MAIL_HOST", ""),
		Port:     port,
		Username: getEnv("MAIL_USERNAME", ""),
		Password: getEnv("MAIL_PASSWORD", ""),
		From:     getEnv("MAIL_FROM", "inventory@campus.local"),
		AppName:  getEnv("APP_NAME", "Campus Inventory"),
	}
}

// loadSchedulerConfig loads cron schedules and the timezone used for due-date math
func loadSchedulerConfig() (SchedulerConfig, error) {
	timeoutSecs, _ := strconv.Atoi(getEnv("JOB_TIMEOUT_SECONDS", "300"))
	retention, _ := strconv.Atoi(getEnv("ARCHIVE_RETENTION_DAYS", "180"))

	tz := getEnv("APP_TIMEZONE", "Asia/Bangkok")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return SchedulerConfig{}, fmt.Errorf("invalid APP_TIMEZONE '%s': %w", tz, err)
	}

	return SchedulerConfig{
		ReminderCron:  getEnv("REMINDER_CRON", "0 * * * *"),
		ArchiveCron:   getEnv("ARCHIVE_CRON", "30 2 * * *"),
		JobTimeout:    time.Duration(timeoutSecs) * time.Second,
		RetentionDays: retention,
		Location:      loc,
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://inventory.campus.local"
	}
	return origins
}
