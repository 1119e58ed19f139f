package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultSessionSecret is only accepted in development.
const DefaultSessionSecret = "default_session_secret"

// DefaultSlots are the bookable time labels when BOOKING_SLOTS is unset.
const DefaultSlots = "09:00,10:00,11:00,14:00,15:00,16:00,17:00"

var slotPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Config holds all configuration for our application
type Config struct {
	Port           string
	Origin         string
	Environment    string
	SessionSecret  string
	SessionTTL     time.Duration
	// TrustedProxies may set X-Forwarded-For. Empty means the client IP is
	// always the socket peer.
	TrustedProxies []string
	Database       DatabaseConfig
	Booking        BookingConfig
	Admin          AdminConfig
	Mailer         MailerConfig
	RedisURL       string
	RateLimit      RateLimitConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
	Debug    bool
}

// BookingConfig describes the bookable slots.
type BookingConfig struct {
	Slots    []string
	Location *time.Location
}

// AdminConfig holds the bootstrap admin account and the address that
// receives new booking alerts.
type AdminConfig struct {
	Email       string
	Password    string
	NotifyEmail string
}

// MailerConfig holds SMTP settings. An empty Host disables real delivery.
type MailerConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// RateLimitConfig bounds public write endpoints per client IP.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// IsProduction reports whether the app runs outside development.
func (c *Config) IsProduction() bool {
	return c.Environment != "development"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load database configuration
	dbConfig := DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "3306"),
		Username: getEnv("DB_USERNAME", "root"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "portfolio"),
		Debug:    getEnv("DB_DEBUG", "false") == "true",
	}

	// Build DSN (Data Source Name) for MySQL connection
	dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)

	slots, err := ParseSlots(getEnv("BOOKING_SLOTS", DefaultSlots))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_SLOTS: %w", err)
	}

	location, err := time.LoadLocation(getEnv("SITE_TIMEZONE", "Europe/Paris"))
	if err != nil {
		return nil, fmt.Errorf("invalid SITE_TIMEZONE: %w", err)
	}

	sessionTTLHours, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_HOURS: %w", err)
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "0.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}

	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}

	adminEmail := getEnv("ADMIN_EMAIL", "")

	environment := getEnv("APP_ENV", "development")
	sessionSecret := getEnv("SESSION_SECRET", DefaultSessionSecret)
	if environment != "development" && (sessionSecret == "" || sessionSecret == DefaultSessionSecret) {
		return nil, fmt.Errorf("SESSION_SECRET must be set when APP_ENV is %q", environment)
	}

	return &Config{
		Port:           getEnv("PORT", "3001"),
		Origin:         getEnv("ORIGIN", "http://localhost:3000"),
		Environment:    environment,
		SessionSecret:  sessionSecret,
		TrustedProxies: parseList(getEnv("TRUSTED_PROXIES", "")),
		SessionTTL:     time.Duration(sessionTTLHours) * time.Hour,
		Database:       dbConfig,
		Booking: BookingConfig{
			Slots:    slots,
			Location: location,
		},
		Admin: AdminConfig{
			Email:       adminEmail,
			Password:    getEnv("ADMIN_PASSWORD", ""),
			NotifyEmail: getEnv("NOTIFY_EMAIL", adminEmail),
		},
		Mailer: MailerConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     smtpPort,
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@localhost"),
		},
		RedisURL: getEnv("REDIS_URL", ""),
		RateLimit: RateLimitConfig{
			RPS:   rps,
			Burst: burst,
		},
	}, nil
}

// ParseSlots splits a comma separated list of HH:MM labels.
func ParseSlots(raw string) ([]string, error) {
	var slots []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		slot := strings.TrimSpace(part)
		if slot == "" {
			continue
		}
		if !slotPattern.MatchString(slot) {
			return nil, fmt.Errorf("slot %q is not HH:MM", slot)
		}
		if seen[slot] {
			continue
		}
		seen[slot] = true
		slots = append(slots, slot)
	}
	if len(slots) == 0 {
		return nil, fmt.Errorf("no slots configured")
	}
	return slots, nil
}

// parseList splits a comma separated list, dropping blanks.
func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
