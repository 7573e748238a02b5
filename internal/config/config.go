package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the HTTP service configuration.
type Config struct {
	Host           string
	Port           int
	AllowedOrigins []string
	MaxBodyBytes   int64
	ReadTimeout    time.Duration
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads the configuration from environment variables, after loading any of the given .env files that exist.
// Variables already set in the environment take precedence over .env files.
func Load(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file '%s': %w", file, err)
		}
	}
	cfg := &Config{
		Host:           getEnv("AVS_HOST", "0.0.0.0"),
		Port:           getEnvInt("AVS_PORT", 8000),
		AllowedOrigins: splitList(getEnv("AVS_ALLOWED_ORIGINS", "http://localhost:3000")),
		MaxBodyBytes:   int64(getEnvInt("AVS_MAX_BODY_BYTES", 64*1024)),
		ReadTimeout:    getEnvDuration("AVS_READ_TIMEOUT", 10*time.Second),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxBodyBytes < 1 {
		return fmt.Errorf("max body bytes must be at least 1, got %d", c.MaxBodyBytes)
	}
	if c.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %s", c.ReadTimeout)
	}
	return nil
}

// String returns a representation of the config suitable for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("Listen: %s, Allowed origins: %v, Max body: %d bytes, Read timeout: %s",
		c.Addr(), c.AllowedOrigins, c.MaxBodyBytes, c.ReadTimeout)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); len(part) > 0 {
			out = append(out, part)
		}
	}
	return out
}
