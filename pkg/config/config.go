package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Bot           BotConfig
	Messaging     MessagingConfig
	Reminders     RemindersConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	RateLimitPerSecond int
	RateLimitBurst     int
	ShutdownTimeout    time.Duration
	AllowedOrigins     []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// BotConfig controls who may talk to the assistant and how values are shown.
type BotConfig struct {
	AuthKeyword     string
	Credentials     []string // login:bcrypt-hash
	AuthorizedUsers []string
	RestrictByPhone bool
	Timezone        string
	Currency        string

	Location *time.Location
}

type MessagingConfig struct {
	GatewayURL     string
	GatewayToken   string
	WebhookSecret  string
	RequestTimeout time.Duration
}

type RemindersConfig struct {
	Schedule      string
	LookAheadDays int
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	LogLevel       string
	LogFormat      string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "0.0.0.0"),
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			RateLimitPerSecond: getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 2),
			RateLimitBurst:     getEnvAsInt("SERVER_RATE_LIMIT_BURST", 5),
			ShutdownTimeout:    getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins:     getEnvAsList("SERVER_ALLOWED_ORIGINS", nil),
		},
		Database: DatabaseConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			Database: getEnv("POSTGRES_DB", "finance-chat"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		},
		Bot: BotConfig{
			AuthKeyword:     strings.ToLower(getEnv("BOT_AUTH_KEYWORD", "creatinex")),
			Credentials:     getEnvAsList("BOT_CREDENTIALS", nil),
			AuthorizedUsers: getEnvAsList("BOT_AUTHORIZED_USERS", nil),
			RestrictByPhone: getEnvAsBool("BOT_RESTRICT_BY_PHONE", false),
			Timezone:        getEnv("BOT_TIMEZONE", "America/Sao_Paulo"),
			Currency:        getEnv("BOT_CURRENCY", "BRL"),
		},
		Messaging: MessagingConfig{
			GatewayURL:     getEnv("GATEWAY_URL", ""),
			GatewayToken:   getEnv("GATEWAY_TOKEN", ""),
			WebhookSecret:  getEnv("WEBHOOK_SECRET", ""),
			RequestTimeout: getEnvAsDuration("GATEWAY_TIMEOUT", 10*time.Second),
		},
		Reminders: RemindersConfig{
			Schedule:      getEnv("REMINDERS_SCHEDULE", "0 9 * * *"),
			LookAheadDays: getEnvAsInt("REMINDERS_LOOKAHEAD_DAYS", 7),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogFormat:      getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.Messaging.GatewayURL == "" {
		return nil, errors.New("GATEWAY_URL is required")
	}

	if cfg.Messaging.WebhookSecret == "" {
		return nil, errors.New("WEBHOOK_SECRET is required")
	}

	loc, err := time.LoadLocation(cfg.Bot.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid BOT_TIMEZONE %q: %w", cfg.Bot.Timezone, err)
	}
	cfg.Bot.Location = loc

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Addr returns the listen address for the HTTP server.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated value, dropping blanks.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
