package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName      string
	HTTPPort         string
	PostgresDSN      string
	CredentialSecret string

	EventPasswordCacheTTL time.Duration
	MaxAccountsPerRequest int
	MaxPhotoBytes         int

	AutoMigrate   bool
	EnableSwagger bool
}

// Load reads the environment after applying an optional .env file. Variables
// already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "evote"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	secret := os.Getenv("CREDENTIAL_SECRET")
	if strings.TrimSpace(secret) == "" {
		return Config{}, errors.New("CREDENTIAL_SECRET is required")
	}

	cacheTTL, err := envDuration("EVENT_PASSWORD_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	maxAccounts, err := envInt("MAX_ACCOUNTS_PER_REQUEST", 1000)
	if err != nil {
		return Config{}, err
	}
	maxPhoto, err := envInt("MAX_PHOTO_BYTES", 16<<20)
	if err != nil {
		return Config{}, err
	}

	return Config{
		ServiceName:      service,
		HTTPPort:         port,
		PostgresDSN:      os.Getenv("POSTGRES_DSN"),
		CredentialSecret: secret,

		EventPasswordCacheTTL: cacheTTL,
		MaxAccountsPerRequest: maxAccounts,
		MaxPhotoBytes:         maxPhoto,

		AutoMigrate:   envBool("AUTO_MIGRATE", true),
		EnableSwagger: envBool("ENABLE_SWAGGER", true),
	}, nil
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envInt(name string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return value, nil
}

func envDuration(name string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration", name)
	}
	return value, nil
}
