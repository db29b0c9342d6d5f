package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	API_PREFIX           = "/api"
	OAUTH_STATE_LIFETIME = 10 * time.Minute
)

type Config struct {
	APIEnv          string
	Addr            string
	AppHost         string
	MaintenanceMode bool

	AdminToken         string
	AdminTokenSecretID string

	StoreDriver string
	StorePath   string

	BookingTimezone *time.Location
	BookingDuration time.Duration
	CalendarTimeout time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	GoogleRefreshToken string
	GoogleCalendarID   string
	OAuthStateKey      string

	TokenStoreDriver  string
	CalendarTokenFile string
	RedisHost         string

	MailDriver   string
	MailFrom     string
	OwnerEmail   string
	ResendAPIKey string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailQueue   string

	AWSRegion    string
	AWSRoleARN   string
	S3BucketName string

	DailyReportAt string
}

// FromEnv reads the process environment. Call godotenv before this when a .env file is in use.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIEnv:             envOrDefault("API_ENV", "production"),
		Addr:               envOrDefault("API_ADDR", ":"+envOrDefault("PORT", "8080")),
		AppHost:            os.Getenv("APP_HOST"),
		AdminToken:         os.Getenv("ADMIN_TOKEN"),
		AdminTokenSecretID: os.Getenv("ADMIN_TOKEN_SECRET_ID"),
		StoreDriver:        strings.ToLower(envOrDefault("STORE_DRIVER", "file")),
		StorePath:          envOrDefault("STORE_PATH", "data/bookings.json"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),
		GoogleRefreshToken: os.Getenv("GOOGLE_REFRESH_TOKEN"),
		GoogleCalendarID:   envOrDefault("GOOGLE_CALENDAR_ID", "primary"),
		OAuthStateKey:      os.Getenv("OAUTH_STATE_KEY"),
		CalendarTokenFile:  envOrDefault("CALENDAR_TOKEN_FILE", "token.json"),
		RedisHost:          os.Getenv("REDIS_HOST"),
		MailDriver:         strings.ToLower(envOrDefault("MAIL_DRIVER", "log")),
		MailFrom:           envOrDefault("MAIL_FROM", "Portfolio Contact <onboarding@resend.dev>"),
		OwnerEmail:         os.Getenv("OWNER_EMAIL"),
		ResendAPIKey:       os.Getenv("EMAIL_API_KEY"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPUsername:       os.Getenv("SMTP_USERNAME"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		EmailQueue:         os.Getenv("EMAIL_QUEUE"),
		AWSRegion:          envOrDefault("AWS_REGION", "us-east-1"),
		AWSRoleARN:         os.Getenv("AWS_IAM_ROLE_ARN"),
		S3BucketName:       os.Getenv("S3_BUCKET_NAME"),
		DailyReportAt:      os.Getenv("DAILY_REPORT_AT"),
	}

	cfg.TokenStoreDriver = "file"
	if cfg.RedisHost != "" {
		cfg.TokenStoreDriver = "redis"
	}
	if v := os.Getenv("TOKEN_STORE_DRIVER"); v != "" {
		cfg.TokenStoreDriver = strings.ToLower(v)
	}

	var err error
	if cfg.MaintenanceMode, err = envBool("MAINTENANCE_MODE", false); err != nil {
		return nil, err
	}
	if cfg.SMTPPort, err = envInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	if cfg.BookingDuration, err = envDuration("BOOKING_DURATION", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.CalendarTimeout, err = envDuration("CALENDAR_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	cfg.BookingTimezone = time.Local
	if tz := os.Getenv("BOOKING_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("BOOKING_TIMEZONE: %w", err)
		}
		cfg.BookingTimezone = loc
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "file", "none", "postgres", "sqlite":
	default:
		return fmt.Errorf("STORE_DRIVER must be one of file, none, postgres, sqlite; got %q", c.StoreDriver)
	}
	if (c.StoreDriver == "file" || c.StoreDriver == "sqlite") && c.StorePath == "" {
		return errors.New("STORE_PATH is required for the file and sqlite store drivers")
	}
	switch c.TokenStoreDriver {
	case "file", "redis":
	default:
		return fmt.Errorf("TOKEN_STORE_DRIVER must be file or redis; got %q", c.TokenStoreDriver)
	}
	if c.TokenStoreDriver == "redis" && c.RedisHost == "" {
		return errors.New("REDIS_HOST is required for the redis token store")
	}
	switch c.MailDriver {
	case "none", "log", "smtp", "ses", "sqs", "resend":
	default:
		return fmt.Errorf("MAIL_DRIVER must be one of none, log, smtp, ses, sqs, resend; got %q", c.MailDriver)
	}
	if c.MailDriver == "resend" && c.ResendAPIKey == "" {
		return errors.New("EMAIL_API_KEY is required for the resend mail driver")
	}
	if c.MailDriver == "smtp" && c.SMTPHost == "" {
		return errors.New("SMTP_HOST is required for the smtp mail driver")
	}
	if c.MailDriver == "sqs" && c.EmailQueue == "" {
		return errors.New("EMAIL_QUEUE is required for the sqs mail driver")
	}
	if c.BookingDuration <= 0 {
		return errors.New("BOOKING_DURATION must be positive")
	}
	if c.CalendarTimeout <= 0 {
		return errors.New("CALENDAR_TIMEOUT must be positive")
	}
	if c.DailyReportAt != "" {
		if _, _, err := c.DailyReportClock(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) IsLocal() bool {
	return c.APIEnv == "local"
}

// CalendarConfigured reports whether the OAuth client material needed to talk to Google is present.
func (c *Config) CalendarConfigured() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// MissingOAuthVars lists the OAuth variables the consent flow needs but are unset.
func (c *Config) MissingOAuthVars() []string {
	var missing []string
	if c.GoogleClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	if c.GoogleClientSecret == "" {
		missing = append(missing, "GOOGLE_CLIENT_SECRET")
	}
	if c.GoogleRedirectURI == "" {
		missing = append(missing, "GOOGLE_REDIRECT_URI")
	}
	return missing
}

func (c *Config) DailyReportClock() (hour uint, minute uint, err error) {
	t, err := time.Parse("15:04", c.DailyReportAt)
	if err != nil {
		return 0, 0, fmt.Errorf("DAILY_REPORT_AT must be HH:MM: %w", err)
	}
	return uint(t.Hour()), uint(t.Minute()), nil
}

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := envOrDefault("DATABASE_PORT", "5432")
	DATABASE_SSLMODE := envOrDefault("DATABASE_SSLMODE", "disable")
	DATABASE_TIMEZONE := envOrDefault("DATABASE_TIMEZONE", "UTC")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return i, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
