package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration for the api, worker and consumer binaries.
type Config struct {
	AppEnv  string
	AppPort string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr   string
	KafkaBroker string

	JWTSecret         string
	SessionTTL        time.Duration
	AdminUsername     string
	AdminPasswordHash string
	AdminID           string
	AdminName         string

	PayrollPayableStatuses []string
	PayrollOvertimeCap     float64

	AuditListLimit int
	ConnectRetries int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}
	return fmt.Sprintf(":%s", c.AppPort)
}

// PostgresDSN builds the key/value connection string for the record store.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load reads configuration values from environment variables and an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "spincraft")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("KAFKA_BROKER", "localhost:9092")
	v.SetDefault("SESSION_TTL", "12h")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_ID", "admin-1")
	v.SetDefault("ADMIN_NAME", "System Administrator")
	v.SetDefault("PAYROLL_PAYABLE_STATUSES", "present,overtime")
	v.SetDefault("PAYROLL_OVERTIME_DAILY_CAP", 12)
	v.SetDefault("AUDIT_LIST_LIMIT", 100)
	v.SetDefault("CONNECT_RETRIES", 10)

	ttl, err := time.ParseDuration(v.GetString("SESSION_TTL"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid session ttl: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("session ttl must be positive")
	}

	cfg := Config{
		AppEnv:                 v.GetString("APP_ENV"),
		AppPort:                v.GetString("PORT"),
		DBHost:                 v.GetString("DB_HOST"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBPort:                 v.GetString("DB_PORT"),
		DBSSLMode:              v.GetString("DB_SSLMODE"),
		RedisAddr:              v.GetString("REDIS_ADDR"),
		KafkaBroker:            v.GetString("KAFKA_BROKER"),
		JWTSecret:              v.GetString("JWT_SECRET"),
		SessionTTL:             ttl,
		AdminUsername:          v.GetString("ADMIN_USERNAME"),
		AdminPasswordHash:      v.GetString("ADMIN_PASSWORD_HASH"),
		AdminID:                v.GetString("ADMIN_ID"),
		AdminName:              v.GetString("ADMIN_NAME"),
		PayrollPayableStatuses: splitList(v.GetString("PAYROLL_PAYABLE_STATUSES")),
		PayrollOvertimeCap:     v.GetFloat64("PAYROLL_OVERTIME_DAILY_CAP"),
		AuditListLimit:         v.GetInt("AUDIT_LIST_LIMIT"),
		ConnectRetries:         v.GetInt("CONNECT_RETRIES"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be provided")
	}
	if cfg.AdminPasswordHash == "" {
		return Config{}, fmt.Errorf("ADMIN_PASSWORD_HASH must be provided")
	}
	if cfg.AuditListLimit <= 0 {
		cfg.AuditListLimit = 100
	}
	if cfg.ConnectRetries <= 0 {
		cfg.ConnectRetries = 10
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
