// Package config handles configuration loading for the booking service.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Slot exclusivity policies. Global means no two non-cancelled appointments
// anywhere may share a (date, time); PerService scopes the slot to a service.
const (
	SlotPolicyGlobal     = "global"
	SlotPolicyPerService = "per_service"
)

// Config holds all configuration for the booking service.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisHost     string
	RedisPort     string
	RedisPassword string

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	SlotPolicy string

	AdminEmail    string
	AdminPassword string

	AllowedOrigins []string
	AuthRateRPS    float64
	AuthRateBurst  int

	Port        string
	Environment string
}

// Load reads configuration from the environment. A .env file is honored when
// present. Missing required variables abort startup.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	cfg := &Config{
		DBHost:           getEnvRequired("DB_HOST"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnvRequired("DB_USER"),
		DBPassword:       getEnvRequired("DB_PASSWORD"),
		DBName:           getEnvRequired("DB_NAME"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		RedisHost:        getEnvRequired("REDIS_HOST"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		JWTSecret:        getEnvRequired("JWT_SECRET"),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "1h"), time.Hour),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h"), 168*time.Hour),
		SlotPolicy:       getEnv("SLOT_POLICY", SlotPolicyGlobal),
		AdminEmail:       getEnv("ADMIN_EMAIL", ""),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5500,http://127.0.0.1:5500")),
		AuthRateRPS:      parseFloat(getEnv("AUTH_RATE_RPS", "5"), 5),
		AuthRateBurst:    parseInt(getEnv("AUTH_RATE_BURST", "10"), 10),
		Port:             getEnv("PORT", "3001"),
		Environment:      getEnv("ENVIRONMENT", "development"),
	}

	if cfg.SlotPolicy != SlotPolicyGlobal && cfg.SlotPolicy != SlotPolicyPerService {
		log.Fatalf("invalid SLOT_POLICY %q: must be %q or %q", cfg.SlotPolicy, SlotPolicyGlobal, SlotPolicyPerService)
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvRequired(key string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		log.Fatalf("required environment variable %s is not set", key)
	}
	return value
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func parseInt(value string, defaultValue int) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func parseFloat(value string, defaultValue float64) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
