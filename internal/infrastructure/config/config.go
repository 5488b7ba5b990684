package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	DBPath          string        `validate:"required"`
	ServerAddress   string        `validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	LogLevel string `validate:"oneof=debug info warn error"`
	AppEnv   string

	// KeywordsFile optionally replaces the built-in auto-categorization table.
	KeywordsFile string `validate:"omitempty,file"`

	CORSOrigins []string `validate:"min=1,dive,required"`
}

// Development reports whether human-readable logs were requested.
func (c *Config) Development() bool {
	return c.AppEnv == "development"
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	timeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DBPath:          getenvDefault("DB_PATH", "flashcards.db"),
		ServerAddress:   getenvDefault("SERVER_ADDRESS", "127.0.0.1:8080"),
		ShutdownTimeout: timeout,
		LogLevel:        strings.ToLower(getenvDefault("LOG_LEVEL", "info")),
		AppEnv:          os.Getenv("APP_ENV"),
		KeywordsFile:    os.Getenv("KEYWORDS_FILE"),
		CORSOrigins:     splitList(getenvDefault("CORS_ORIGINS", "*")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func getDuration(k string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not a valid duration: %w", k, v, err)
	}
	return d, nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
