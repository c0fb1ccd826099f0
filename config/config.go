// Package config loads runtime configuration from the environment (and a .env file when present).
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type Config struct {
	Env      string
	Port     string
	GinMode  string
	LogLevel string

	DBDriver   string
	DBDSN      string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SeedData   bool

	JWTSecret string
	TokenTTL  time.Duration

	AdminEmail    string
	AdminPassword string

	RedisAddr     string
	RedisPassword string
	RedisChannel  string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	ReminderInterval time.Duration
	Timezone         string

	RateLimitRPS   float64
	RateLimitBurst int
	AllowedOrigins []string
}

// Load reads .env (if any) and the process environment. Missing values fall back to
// development defaults; only the JWT secret is required outside development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debugf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:      os.Getenv("DB_DSN"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "restaurant"),
		SeedData:   getBool("SEED_DATA", false),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  time.Duration(getInt("TOKEN_TTL_HOURS", 24)) * time.Hour,

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisChannel:  getEnv("REDIS_CHANNEL", "restaurant:events"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnv("SMTP_FROM", "reservations@localhost"),

		ReminderInterval: getDuration("REMINDER_INTERVAL", 15*time.Minute),
		Timezone:         getEnv("RESTAURANT_TIMEZONE", "Local"),

		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 50),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			utils.ErrorLogger.Fatal("JWT_SECRET must be set in production")
		}
		utils.InfoLogger.Warn("JWT_SECRET not set, using development secret")
		cfg.JWTSecret = "dev-secret-change-me"
	}

	return cfg
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.GinMode == "release"
}

// Location resolves the restaurant's timezone, used to decide what "today" is.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		utils.ErrorLogger.Warnf("unknown RESTAURANT_TIMEZONE %q, using local time", c.Timezone)
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		utils.ErrorLogger.Warnf("invalid int for %s: %q, using %d", key, raw, fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		utils.ErrorLogger.Warnf("invalid number for %s: %q, using %v", key, raw, fallback)
		return fallback
	}
	return f
}

func getBool(key string, fallback bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return b
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		utils.ErrorLogger.Warnf("invalid duration for %s: %q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
