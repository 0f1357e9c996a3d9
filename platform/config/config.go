// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// SchedulerConfig provides settings for the asynq scheduler and worker.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetDigestSendHour() int
	GetLeaderboardPublishHour() int
}

// CacheConfig provides settings for the Redis read cache.
type CacheConfig interface {
	GetRedisURL() string
	GetLeaderboardCacheTTL() time.Duration
}

// WhatsAppConfig provides settings for the WhatsApp gateway.
type WhatsAppConfig interface {
	GetWhatsAppURL() string
	GetWhatsAppKey() string
	GetWhatsAppDeviceID() string
	GetDigestRecipients() []string
	GetDigestDefaultRegion() string
}

// MailConfig provides settings for the SMTP notification sender.
type MailConfig interface {
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetMailFromName() string
	GetMailFromAddress() string
	GetLeaderboardMailRecipients() []string
	IsMailEnabled() bool
}

// CatalogConfig provides settings for the job-type catalog seed.
type CatalogConfig interface {
	GetJobTypeSeedPath() string
}

// OrderingConfig provides settings for the work-order ordering engine.
type OrderingConfig interface {
	GetFlagshipMarker() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                       string
	HTTPAddr                  string
	DatabaseURL               string
	JWTAccessSecret           string
	CORSAllowAll              bool
	CORSOrigins               []string
	CORSAllowCreds            bool
	RedisURL                  string
	RedisTLSInsecure          bool
	AsynqQueueName            string
	AsynqConcurrency          int
	DigestSendHour            int
	LeaderboardPublishHour    int
	LeaderboardCacheTTL       time.Duration
	WhatsAppURL               string
	WhatsAppKey               string
	WhatsAppDeviceID          string
	DigestRecipients          []string
	DigestDefaultRegion       string
	SMTPHost                  string
	SMTPPort                  int
	SMTPUsername              string
	SMTPPassword              string
	MailFromName              string
	MailFromAddress           string
	LeaderboardMailRecipients []string
	MailEnabled               bool
	JobTypeSeedPath           string
	FlagshipMarker            string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string      { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }
func (c *Config) GetDigestSendHour() int    { return c.DigestSendHour }
func (c *Config) GetLeaderboardPublishHour() int { return c.LeaderboardPublishHour }

// CacheConfig implementation
func (c *Config) GetLeaderboardCacheTTL() time.Duration { return c.LeaderboardCacheTTL }

// WhatsAppConfig implementation
func (c *Config) GetWhatsAppURL() string         { return c.WhatsAppURL }
func (c *Config) GetWhatsAppKey() string         { return c.WhatsAppKey }
func (c *Config) GetWhatsAppDeviceID() string    { return c.WhatsAppDeviceID }
func (c *Config) GetDigestRecipients() []string  { return c.DigestRecipients }
func (c *Config) GetDigestDefaultRegion() string { return c.DigestDefaultRegion }

// MailConfig implementation
func (c *Config) GetSMTPHost() string     { return c.SMTPHost }
func (c *Config) GetSMTPPort() int        { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string { return c.SMTPPassword }
func (c *Config) GetMailFromName() string { return c.MailFromName }
func (c *Config) GetMailFromAddress() string {
	return c.MailFromAddress
}
func (c *Config) GetLeaderboardMailRecipients() []string { return c.LeaderboardMailRecipients }
func (c *Config) IsMailEnabled() bool {
	return c.MailEnabled && c.SMTPHost != "" && c.MailFromAddress != ""
}

// CatalogConfig implementation
func (c *Config) GetJobTypeSeedPath() string { return c.JobTypeSeedPath }

// OrderingConfig implementation
func (c *Config) GetFlagshipMarker() string { return c.FlagshipMarker }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                       getEnv("APP_ENV", "development"),
		HTTPAddr:                  getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:               getEnv("DATABASE_URL", ""),
		JWTAccessSecret:           getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:              corsAllowAll,
		CORSOrigins:               corsOrigins,
		CORSAllowCreds:            strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RedisURL:                  getEnv("REDIS_URL", ""),
		RedisTLSInsecure:          strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:            getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:          mustIntDefault(getEnv("ASYNQ_CONCURRENCY", "10"), 10),
		DigestSendHour:            mustIntDefault(getEnv("DIGEST_SEND_HOUR", "8"), 8),
		LeaderboardPublishHour:    mustIntDefault(getEnv("LEADERBOARD_PUBLISH_HOUR", "6"), 6),
		LeaderboardCacheTTL:       mustDuration(getEnv("LEADERBOARD_CACHE_TTL", "10m")),
		WhatsAppURL:               getEnv("WHATSAPP_URL", ""),
		WhatsAppKey:               getEnv("WHATSAPP_KEY", ""),
		WhatsAppDeviceID:          getEnv("WHATSAPP_DEVICE_ID", ""),
		DigestRecipients:          splitCSV(getEnv("DIGEST_RECIPIENTS", "")),
		DigestDefaultRegion:       getEnv("DIGEST_DEFAULT_REGION", "TR"),
		SMTPHost:                  getEnv("SMTP_HOST", ""),
		SMTPPort:                  mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:              getEnv("SMTP_USERNAME", ""),
		SMTPPassword:              getEnv("SMTP_PASSWORD", ""),
		MailFromName:              getEnv("MAIL_FROM_NAME", "Marina Operations"),
		MailFromAddress:           getEnv("MAIL_FROM_ADDRESS", ""),
		LeaderboardMailRecipients: splitCSV(getEnv("LEADERBOARD_MAIL_RECIPIENTS", "")),
		MailEnabled:               strings.EqualFold(getEnv("MAIL_ENABLED", "true"), "true"),
		JobTypeSeedPath:           getEnv("JOB_TYPE_SEED_PATH", "config/job_types.yaml"),
		FlagshipMarker:            getEnv("FLAGSHIP_MARKER", "yatmarin"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" && cfg.Env == "production" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required in production")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func mustDuration(value string) time.Duration {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 10 * time.Minute
	}
	return parsed
}

func mustInt(value string) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 587
	}
	return parsed
}

func mustIntDefault(value string, fallback int) int {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}
