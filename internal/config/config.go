package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Env       string
	LogLevel  string
	LogFormat string

	// Backend host candidates, in resolution priority order. ManualAPIURL
	// is an explicit operator override; the LAN default and localhost
	// fallback mirror how clinic installs reach a backend on the office
	// network versus a developer machine.
	ManualAPIURL  string
	LANDefaultURL string
	LocalhostURL  string
	AutoDetect    bool

	RequestTimeout time.Duration
	ProbeTimeout   time.Duration
	MaxHostRetries int

	// Preference store
	PrefsBackend  string // "redis" or "memory"
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Mock backend (cmd/mockapi)
	MockAPIPort string
}

// Load reads configuration from the environment, honoring a .env file
// when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		ManualAPIURL:  getEnv("CLINICDESK_API_URL", ""),
		LANDefaultURL: getEnv("CLINICDESK_LAN_URL", "http://192.168.1.50:5000"),
		LocalhostURL:  getEnv("CLINICDESK_LOCAL_URL", "http://localhost:5000"),
		AutoDetect:    getEnvAsBool("CLINICDESK_AUTO_DETECT", true),

		RequestTimeout: getEnvAsDuration("CLINICDESK_REQUEST_TIMEOUT", 10*time.Second),
		ProbeTimeout:   getEnvAsDuration("CLINICDESK_PROBE_TIMEOUT", 3*time.Second),
		MaxHostRetries: getEnvAsInt("CLINICDESK_MAX_HOST_RETRIES", 2),

		PrefsBackend:  strings.ToLower(strings.TrimSpace(getEnv("PREFS_BACKEND", "memory"))),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		MockAPIPort: getEnv("MOCKAPI_PORT", "5000"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
