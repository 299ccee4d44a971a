package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	JWT         JWTConfig
	SMTP        SMTPConfig
	Gateway     GatewayConfig
	Approval    ApprovalConfig
	OfficeHours OfficeHoursConfig
}

type AppConfig struct {
	Port        int
	Env         string
	BaseURL     string
	FrontendURL string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds access-token settings for the internal API routes.
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// GatewayConfig points at the external biometric attendance service.
type GatewayConfig struct {
	BaseURL string
	Timeout time.Duration
}

// ApprovalConfig holds the email-approval workflow settings: the signing
// secret for action tokens, their lifetime, and the HR inbox that receives
// every submission.
type ApprovalConfig struct {
	TokenSecret   string
	TokenTTLHours int
	HREmail       string
}

// OfficeHoursConfig assigns employees to office-hour tiers. The id lists are
// loaded once at startup and never mutated; everyone not listed falls into
// the default 09:00-17:30 window.
type OfficeHoursConfig struct {
	ExtendedTierIDs []string
	WeekendTierIDs  []string
}

func Load() (*Config, error) {
	// .env is optional; deployments may rely on process env only.
	_ = godotenv.Load()

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		BaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "vista_hr_portal"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@vista-hr.local"),
		FromName: getEnv("SMTP_FROM_NAME", "Vista HR Portal"),
	}

	gatewayTimeout, err := time.ParseDuration(getEnv("ATTENDANCE_GATEWAY_TIMEOUT", "8s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_GATEWAY_TIMEOUT: %w", err)
	}

	config.Gateway = GatewayConfig{
		BaseURL: getEnv("ATTENDANCE_GATEWAY_URL", ""),
		Timeout: gatewayTimeout,
	}

	tokenTTL, err := strconv.Atoi(getEnv("APPROVAL_TOKEN_TTL_HOURS", "72"))
	if err != nil {
		return nil, fmt.Errorf("invalid APPROVAL_TOKEN_TTL_HOURS: %w", err)
	}

	config.Approval = ApprovalConfig{
		TokenSecret:   getEnv("APPROVAL_TOKEN_SECRET", ""),
		TokenTTLHours: tokenTTL,
		HREmail:       getEnv("HR_NOTIFICATION_EMAIL", ""),
	}

	config.OfficeHours = OfficeHoursConfig{
		ExtendedTierIDs: getEnvSlice("OFFICE_HOURS_EXTENDED_TIER_IDS"),
		WeekendTierIDs:  getEnvSlice("OFFICE_HOURS_WEEKEND_TIER_IDS"),
	}

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
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Approval.TokenSecret == "" {
		return fmt.Errorf("APPROVAL_TOKEN_SECRET is required")
	}
	if c.Approval.HREmail == "" {
		return fmt.Errorf("HR_NOTIFICATION_EMAIL is required")
	}
	if c.Gateway.BaseURL == "" {
		return fmt.Errorf("ATTENDANCE_GATEWAY_URL is required")
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string) []string {
	value := getEnv(env, "")
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
