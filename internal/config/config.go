package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// insecureDevSecret signs tokens in development when JWT_SECRET is empty.
const insecureDevSecret = "change-me"

type Config struct {
	AppEnv          string
	Port            string
	AllowedOrigins  string
	ShutdownTimeout time.Duration

	DBHost    string
	DBPort    string
	DBUser    string
	DBPass    string
	DBName    string
	DBSSLMode string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	RedisURL          string
	SignInMaxAttempts int
	SignInLockWindow  time.Duration

	MeiliSearchHost string
	MeiliMasterKey  string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	CardExpirySchedule string
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "5000"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		DBHost:    getEnv("DB_HOST", "localhost"),
		DBPort:    getEnv("DB_PORT", "5432"),
		DBUser:    getEnv("DB_USER", "postgres"),
		DBPass:    os.Getenv("DB_PASS"),
		DBName:    getEnv("DB_NAME", "school_management"),
		DBSSLMode: getEnv("DB_SSLMODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: getEnv("JWT_ISSUER", "school-management"),

		RedisURL: os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		CardExpirySchedule: getEnv("CARD_EXPIRY_SCHEDULE", "@daily"),
	}

	if _, set := os.LookupEnv("APP_ENV"); !set {
		log.Println("⚠️ APP_ENV not set, defaulting to development mode")
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("JWT_SECRET is required outside development")
		}
		cfg.JWTSecret = insecureDevSecret
		log.Println("⚠️ JWT_SECRET not set, using an insecure development secret; do not expose this server")
	}

	var err error
	if cfg.JWTTTL, err = parseDuration(getEnv("JWT_TTL", "24h")); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	if cfg.SignInLockWindow, err = parseDuration(getEnv("SIGNIN_LOCK_WINDOW", "15m")); err != nil {
		return nil, fmt.Errorf("invalid SIGNIN_LOCK_WINDOW: %w", err)
	}
	if cfg.ShutdownTimeout, err = parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
	}
	if cfg.SignInMaxAttempts, err = strconv.Atoi(getEnv("SIGNIN_MAX_ATTEMPTS", "5")); err != nil {
		return nil, fmt.Errorf("invalid SIGNIN_MAX_ATTEMPTS: %w", err)
	}
	if cfg.SMTPPort, err = strconv.Atoi(getEnv("SMTP_PORT", "587")); err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPass, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
