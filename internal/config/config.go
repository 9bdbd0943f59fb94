package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Registration RegistrationConfig
	Admin        AdminConfig
	HTTP         HTTPConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration.
// DSN takes precedence over the individual connection parts when set.
type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// IsSQLite reports whether the connection string selects the sqlite driver.
func (c DatabaseConfig) IsSQLite() bool {
	u := c.URL()
	return strings.HasPrefix(u, "sqlite:") || strings.HasPrefix(u, "file:")
}

// SQLitePath strips the scheme from a sqlite connection string.
func (c DatabaseConfig) SQLitePath() string {
	u := c.URL()
	if strings.HasPrefix(u, "sqlite:") {
		return strings.TrimPrefix(strings.TrimPrefix(u, "sqlite:"), "//")
	}
	return u
}

// RedisConfig holds Redis configuration. An empty URL disables redis.
type RedisConfig struct {
	URL      string
	PASSWORD string
}

// RegistrationConfig holds settings of the submission workflow
type RegistrationConfig struct {
	Timezone        string
	SubmitRateLimit int
	SubmitRateWin   time.Duration
}

// AdminConfig holds admin surface credentials
type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string
	JWTSecret    string
	TokenExpiry  time.Duration
}

// PlaceholderJWTSecret is the well-known sample secret; it never signs tokens.
const PlaceholderJWTSecret = "change-this-in-production"

// TokensEnabled reports whether a usable signing secret is configured
func (c AdminConfig) TokensEnabled() bool {
	secret := strings.TrimSpace(c.JWTSecret)
	return secret != "" && secret != PlaceholderJWTSecret
}

// HTTPConfig holds HTTP surface settings
type HTTPConfig struct {
	AllowedOrigins []string
	WebDir         string
	MaxBodyBytes   int64
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "registration"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			PASSWORD: getEnv("REDIS_PASSWORD", ""),
		},
		Registration: RegistrationConfig{
			Timezone:        getEnv("TIMEZONE", "Asia/Shanghai"),
			SubmitRateLimit: getEnvAsInt("SUBMIT_RATE_LIMIT", 10),
			SubmitRateWin:   getEnvAsDuration("SUBMIT_RATE_WINDOW", time.Minute),
		},
		Admin: AdminConfig{
			Username:     getEnv("ADMIN_USERNAME", "admin"),
			Password:     getEnv("ADMIN_PASSWORD", ""),
			PasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("ADMIN_JWT_SECRET", ""),
			TokenExpiry:  getEnvAsDuration("ADMIN_TOKEN_EXPIRY", 12*time.Hour),
		},
		HTTP: HTTPConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5000", "http://localhost:8080"}),
			WebDir:         getEnv("WEB_DIR", ""),
			MaxBodyBytes:   int64(getEnvAsInt("MAX_BODY_BYTES", 1<<20)),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
