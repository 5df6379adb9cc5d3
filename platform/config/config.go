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

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AuthServiceConfig provides settings needed by the owner auth service.
type AuthServiceConfig interface {
	JWTConfig
	GetAccessTokenTTL() time.Duration
	GetAdminEmail() string
	GetAdminPasswordHash() string
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// NotificationConfig provides settings for the notification module.
type NotificationConfig interface {
	GetAppBaseURL() string
	GetAdminNotifyEmail() string
	GetBusinessName() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// MinIOConfig provides settings for MinIO S3-compatible storage.
type MinIOConfig interface {
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketSiteConfig() string
	GetMinioBucketGallery() string
	IsMinIOEnabled() bool
}

// CalendarConfig provides settings for the Google Calendar booking store.
type CalendarConfig interface {
	GetGoogleCredentialsFile() string
	GetGoogleCalendarID() string
	GetBusinessTimezone() string
	GetBusinessOpenHour() int
	GetBusinessCloseHour() int
	GetBookingLookbackDays() int
}

// BillingConfig provides settings for the Stripe invoice issuer.
type BillingConfig interface {
	GetStripeSecretKey() string
	GetBillingCurrency() string
	IsBillingEnabled() bool
}

// SchedulerConfig provides settings for the asynq reminder scheduler.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// RateLimitConfig provides limits for the public request-creation endpoints.
type RateLimitConfig interface {
	GetBookingRateLimit() int
	GetBookingRateWindow() time.Duration
	GetContactRateLimit() int
	GetContactRateWindow() time.Duration
	GetEstimateRateLimit() int
	GetEstimateRateWindow() time.Duration
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env               string
	HTTPAddr          string
	CORSAllowAll      bool
	CORSOrigins       []string
	CORSAllowCreds    bool
	AppBaseURL        string
	JWTAccessSecret   string
	AccessTokenTTL    time.Duration
	AdminEmail        string
	AdminPasswordHash string

	EmailEnabled     bool
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string
	AdminNotifyEmail string
	BusinessName     string

	MinIOEndpoint         string
	MinIOAccessKey        string
	MinIOSecretKey        string
	MinIOUseSSL           bool
	MinIOMaxFileSize      int64
	MinioBucketSiteConfig string
	MinioBucketGallery    string

	GoogleCredentialsFile string
	GoogleCalendarID      string
	BusinessTimezone      string
	BusinessOpenHour      int
	BusinessCloseHour     int
	BookingLookbackDays   int

	StripeSecretKey string
	BillingCurrency string

	RedisURL         string
	RedisTLSInsecure bool
	AsynqQueueName   string
	AsynqConcurrency int

	BookingRateLimit   int
	BookingRateWindow  time.Duration
	ContactRateLimit   int
	ContactRateWindow  time.Duration
	EstimateRateLimit  int
	EstimateRateWindow time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// AuthServiceConfig implementation
func (c *Config) GetAccessTokenTTL() time.Duration { return c.AccessTokenTTL }
func (c *Config) GetAdminEmail() string            { return c.AdminEmail }
func (c *Config) GetAdminPasswordHash() string     { return c.AdminPasswordHash }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// NotificationConfig implementation
func (c *Config) GetAppBaseURL() string       { return c.AppBaseURL }
func (c *Config) GetAdminNotifyEmail() string { return c.AdminNotifyEmail }
func (c *Config) GetBusinessName() string     { return c.BusinessName }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// MinIOConfig implementation
func (c *Config) GetMinIOEndpoint() string          { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string         { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string         { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool              { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64        { return c.MinIOMaxFileSize }
func (c *Config) GetMinioBucketSiteConfig() string  { return c.MinioBucketSiteConfig }
func (c *Config) GetMinioBucketGallery() string     { return c.MinioBucketGallery }
func (c *Config) IsMinIOEnabled() bool              { return c.MinIOEndpoint != "" }

// CalendarConfig implementation
func (c *Config) GetGoogleCredentialsFile() string { return c.GoogleCredentialsFile }
func (c *Config) GetGoogleCalendarID() string      { return c.GoogleCalendarID }
func (c *Config) GetBusinessTimezone() string      { return c.BusinessTimezone }
func (c *Config) GetBusinessOpenHour() int         { return c.BusinessOpenHour }
func (c *Config) GetBusinessCloseHour() int        { return c.BusinessCloseHour }
func (c *Config) GetBookingLookbackDays() int      { return c.BookingLookbackDays }

// BillingConfig implementation
func (c *Config) GetStripeSecretKey() string { return c.StripeSecretKey }
func (c *Config) GetBillingCurrency() string { return c.BillingCurrency }
func (c *Config) IsBillingEnabled() bool     { return c.StripeSecretKey != "" }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string      { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// RateLimitConfig implementation
func (c *Config) GetBookingRateLimit() int             { return c.BookingRateLimit }
func (c *Config) GetBookingRateWindow() time.Duration  { return c.BookingRateWindow }
func (c *Config) GetContactRateLimit() int             { return c.ContactRateLimit }
func (c *Config) GetContactRateWindow() time.Duration  { return c.ContactRateWindow }
func (c *Config) GetEstimateRateLimit() int            { return c.EstimateRateLimit }
func (c *Config) GetEstimateRateWindow() time.Duration { return c.EstimateRateWindow }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4321"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:      corsAllowAll,
		CORSOrigins:       corsOrigins,
		CORSAllowCreds:    strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AppBaseURL:        getEnv("APP_BASE_URL", "http://localhost:4321"),
		JWTAccessSecret:   getEnv("JWT_ACCESS_SECRET", ""),
		AccessTokenTTL:    mustDuration(getEnv("JWT_ACCESS_TTL", "12h")),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		EmailEnabled:     emailEnabled && smtpHost != "",
		SMTPHost:         smtpHost,
		SMTPPort:         mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Servant Catering"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
		AdminNotifyEmail: getEnv("ADMIN_NOTIFY_EMAIL", ""),
		BusinessName:     getEnv("BUSINESS_NAME", "Servant Catering"),

		MinIOEndpoint:         getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:        getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:        getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:           strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:      mustInt64(getEnv("MINIO_MAX_FILE_SIZE", "10485760")),
		MinioBucketSiteConfig: getEnv("MINIO_BUCKET_SITE_CONFIG", "site-config"),
		MinioBucketGallery:    getEnv("MINIO_BUCKET_GALLERY", "gallery-images"),

		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		GoogleCalendarID:      getEnv("GOOGLE_CALENDAR_ID", ""),
		BusinessTimezone:      getEnv("BUSINESS_TIMEZONE", "America/New_York"),
		BusinessOpenHour:      mustInt(getEnv("BUSINESS_OPEN_HOUR", "9")),
		BusinessCloseHour:     mustInt(getEnv("BUSINESS_CLOSE_HOUR", "19")),
		BookingLookbackDays:   mustInt(getEnv("BOOKING_LOOKBACK_DAYS", "30")),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		BillingCurrency: strings.ToLower(getEnv("BILLING_CURRENCY", "usd")),

		RedisURL:         getEnv("REDIS_URL", ""),
		RedisTLSInsecure: strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:   getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency: mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),

		BookingRateLimit:  mustInt(getEnv("BOOKING_RATE_LIMIT", "5")),
		BookingRateWindow: mustDuration(getEnv("BOOKING_RATE_WINDOW", "1h")),
		ContactRateLimit:  mustInt(getEnv("CONTACT_RATE_LIMIT", "5")),
		ContactRateWindow: mustDuration(getEnv("CONTACT_RATE_WINDOW", "1h")),

		// Estimates are interactive previews, so the window is much looser
		// than the request-creation endpoints.
		EstimateRateLimit:  mustInt(getEnv("ESTIMATE_RATE_LIMIT", "60")),
		EstimateRateWindow: mustDuration(getEnv("ESTIMATE_RATE_WINDOW", "1h")),
	}

	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL and ADMIN_PASSWORD_HASH are required")
	}
	if cfg.GoogleCredentialsFile == "" || cfg.GoogleCalendarID == "" {
		return nil, fmt.Errorf("GOOGLE_CREDENTIALS_FILE and GOOGLE_CALENDAR_ID are required")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.EmailEnabled && cfg.AdminNotifyEmail == "" {
		return nil, fmt.Errorf("ADMIN_NOTIFY_EMAIL is required when email is enabled")
	}
	if cfg.BusinessOpenHour < 0 || cfg.BusinessCloseHour > 24 || cfg.BusinessOpenHour >= cfg.BusinessCloseHour {
		return nil, fmt.Errorf("invalid business hours: open=%d close=%d", cfg.BusinessOpenHour, cfg.BusinessCloseHour)
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
