package internal

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// ErrMissingAPIKey is returned when no Gemini API key is configured
var ErrMissingAPIKey = errors.New("API_KEY not configured")

// Config holds the server settings read from the environment
type Config struct {
	Port           string
	APIKey         string
	Model          string
	RequestTimeout time.Duration
	AllowedOrigins []string
	ExposeErrors   bool
	ExportTTL      time.Duration
	LogLevel       string
}

// LoadConfig reads .env (if present) and the process environment
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("[CONFIG] No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "4000"),
		APIKey:         os.Getenv("API_KEY"),
		Model:          getEnv("GENAI_MODEL", "gemini-1.5-flash"),
		RequestTimeout: getEnvAsDuration("GENAI_TIMEOUT", 60*time.Second),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		ExposeErrors:   getEnvAsBool("EXPOSE_ERRORS", true),
		ExportTTL:      getEnvAsDuration("EXPORT_TTL", time.Minute),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be a number, got %q", c.Port)
	}
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.Model == "" {
		return fmt.Errorf("GENAI_MODEL is required")
	}
	return nil
}

// Addr returns the listen address for the configured port
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warnf("[CONFIG] Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsDuration accepts Go durations ("90s") or bare seconds ("90")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Warnf("[CONFIG] Invalid duration for %s, using default: %v", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
