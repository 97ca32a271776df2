package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Security
	JWTSecret string

	// Application
	AppEnv        string
	HTTPAddr      string
	LogLevel      string
	UploadMaxSize int64

	// Ingestion
	IngestBatchSize        int
	IngestBatchTimeoutSecs int
	DepartureCutoffDays    int
	DeparturePowerFloor    string
	DepartureSweepSpec     string

	// Rate Limiting
	RateLimitPerUser int
	RateLimitPerIP   int

	// Notifications (optional)
	TelegramBotToken string
	TelegramChatID   int64
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "realmstats"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "realmstats_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET_KEY", ""),

		AppEnv:        getEnv("APP_ENV", "development"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		UploadMaxSize: getEnvInt64("UPLOAD_MAX_SIZE", 10485760),

		IngestBatchSize:        getEnvInt("INGEST_BATCH_SIZE", 20),
		IngestBatchTimeoutSecs: getEnvInt("INGEST_BATCH_TIMEOUT_SECONDS", 15),
		DepartureCutoffDays:    getEnvInt("DEPARTURE_CUTOFF_DAYS", 7),
		DeparturePowerFloor:    getEnv("DEPARTURE_POWER_FLOOR", "10000000"),
		DepartureSweepSpec:     getEnv("DEPARTURE_SWEEP_SPEC", "@hourly"),

		RateLimitPerUser: getEnvInt("RATE_LIMIT_PER_USER", 60),
		RateLimitPerIP:   getEnvInt("RATE_LIMIT_PER_IP", 120),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
	}

	// Parse notification chat ID
	chatIDStr := getEnv("TELEGRAM_CHAT_ID", "")
	if chatIDStr != "" {
		id, err := strconv.ParseInt(chatIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	if c.IngestBatchSize < 1 {
		return fmt.Errorf("INGEST_BATCH_SIZE must be positive")
	}
	if c.DepartureCutoffDays < 1 {
		return fmt.Errorf("DEPARTURE_CUTOFF_DAYS must be positive")
	}
	if _, err := decimal.NewFromString(c.DeparturePowerFloor); err != nil {
		return fmt.Errorf("invalid DEPARTURE_POWER_FLOOR: %w", err)
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if c.AppEnv != "production" {
		return nil
	}

	if c.DBSSLMode != "require" {
		return fmt.Errorf("DB_SSLMODE must be 'require' in production")
	}
	if c.JWTSecret == "your_jwt_secret_minimum_32_chars_here_change_this" {
		return fmt.Errorf("JWT_SECRET_KEY must be changed from default in production")
	}

	return nil
}

func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func (c *Config) GetDepartureCutoff() time.Duration {
	return time.Duration(c.DepartureCutoffDays) * 24 * time.Hour
}

func (c *Config) GetIngestBatchTimeout() time.Duration {
	return time.Duration(c.IngestBatchTimeoutSecs) * time.Second
}

// GetDeparturePowerFloor returns the parsed floor. Validate has already
// checked the string, so a zero value only appears on a bypassed Validate.
func (c *Config) GetDeparturePowerFloor() decimal.Decimal {
	floor, err := decimal.NewFromString(c.DeparturePowerFloor)
	if err != nil {
		return decimal.Zero
	}
	return floor
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}
