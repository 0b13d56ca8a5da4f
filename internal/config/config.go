package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	RedisURL    string
	ServerPort  string
	Environment string

	// Token codec
	JWTSecret     string
	JWTIssuer     string
	JWTExpiry     time.Duration
	RefreshDelay  time.Duration
	RefreshExpiry time.Duration

	// Credential hashing
	HashSecret string

	// Public id obfuscation
	HashidSalt      string
	HashidAlphabet  string
	HashidMinLength int

	DefaultPageLimit int
	AuditLogPath     string

	CORSAllowedOrigins []string

	// Rate limiting
	RateLimitMaxRequests int
	RateLimitWindow      time.Duration
}

// Load reads configuration from the environment. A .env file is honored when
// present (containers set variables directly). Secrets have no defaults: a
// missing secret is a fatal configuration error, never silently substituted.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		DatabaseURL: mustGetEnv("DATABASE_URL"),
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		ServerPort:  getEnv("SERVER_PORT", ":8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		JWTSecret:     mustGetEnv("JWT_SECRET"),
		JWTIssuer:     getEnv("JWT_ISSUER", "inkwell"),
		JWTExpiry:     getEnvAsDuration("JWT_EXPIRY", "15m"),
		RefreshDelay:  getEnvAsDuration("REFRESH_DELAY", "5m"),
		RefreshExpiry: getEnvAsDuration("REFRESH_EXPIRY", "30m"),

		HashSecret: mustGetEnv("HASH_SECRET"),

		HashidSalt:      mustGetEnv("HASHID_SALT"),
		HashidAlphabet:  getEnv("HASHID_ALPHABET", ""),
		HashidMinLength: getEnvAsInt("HASHID_MIN_LENGTH", 8),

		DefaultPageLimit: getEnvAsInt("DEFAULT_PAGE_LIMIT", 20),
		AuditLogPath:     getEnv("AUDIT_LOG_PATH", "data/audit.log"),

		CORSAllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		RateLimitMaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitWindow:      getEnvAsDuration("RATE_LIMIT_WINDOW", "1m"),
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return val
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := os.Getenv(key)
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnvAsDuration(key string, defaultVal string) time.Duration {
	valStr := os.Getenv(key)
	if valStr == "" {
		valStr = defaultVal
	}
	duration, err := time.ParseDuration(valStr)
	if err != nil {
		log.Printf("Invalid %s value, using default: %s", key, defaultVal)
		duration, _ = time.ParseDuration(defaultVal)
	}
	return duration
}
