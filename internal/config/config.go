package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/mcerda31/fanpulse/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port            string
	DBPath          string
	AudioDir        string
	PublicAudioBase string
	CatalogURL      string
	TokenURL        string
	ClientID        string
	ClientSecret    string
	Market          string
	LogLevel        string
	LogFormat       string
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", constants.DefaultPort),
		DBPath:          getEnv("DB_PATH", constants.DefaultDBPath),
		AudioDir:        getEnv("AUDIO_DIR", constants.DefaultAudioDir),
		PublicAudioBase: getEnv("PUBLIC_AUDIO_BASE", constants.DefaultPublicAudioBase),
		CatalogURL:      getEnv("CATALOG_URL", constants.DefaultCatalogURL),
		TokenURL:        getEnv("CATALOG_TOKEN_URL", constants.DefaultTokenURL),
		ClientID:        os.Getenv("CATALOG_CLIENT_ID"),
		ClientSecret:    os.Getenv("CATALOG_CLIENT_SECRET"),
		Market:          getEnv("CATALOG_MARKET", constants.DefaultMarket),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	if c.DBPath == "" {
		errors = append(errors, "DB_PATH cannot be empty")
	}

	if c.AudioDir == "" {
		errors = append(errors, "AUDIO_DIR cannot be empty")
	}

	if c.PublicAudioBase == "" || !strings.HasPrefix(c.PublicAudioBase, "/") {
		errors = append(errors, fmt.Sprintf("PUBLIC_AUDIO_BASE must be an absolute URL path, got: %s", c.PublicAudioBase))
	}

	if c.CatalogURL == "" {
		errors = append(errors, "CATALOG_URL cannot be empty")
	} else if _, err := url.Parse(c.CatalogURL); err != nil {
		errors = append(errors, fmt.Sprintf("CATALOG_URL is not a valid URL: %s", c.CatalogURL))
	}

	if c.TokenURL == "" {
		errors = append(errors, "CATALOG_TOKEN_URL cannot be empty")
	} else if _, err := url.Parse(c.TokenURL); err != nil {
		errors = append(errors, fmt.Sprintf("CATALOG_TOKEN_URL is not a valid URL: %s", c.TokenURL))
	}

	if c.ClientID == "" {
		errors = append(errors, "CATALOG_CLIENT_ID cannot be empty")
	}

	if c.ClientSecret == "" {
		errors = append(errors, "CATALOG_CLIENT_SECRET cannot be empty")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
