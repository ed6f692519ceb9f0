// Copyright (c) Nimbus AI. All rights reserved.

// Package config loads application configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration. One of OpenAIAPIKey or
// AzureEndpoint must be set; with an Azure endpoint the key is optional
// (Azure AD credentials are used when absent).
type Config struct {
	// Inference API
	OpenAIAPIKey  string `validate:"required_without=AzureEndpoint"`
	OpenAIBaseURL string `validate:"omitempty,url"`
	AzureEndpoint string `validate:"omitempty,url"`
	AzureKey      string
	ModelID       string `validate:"required"`

	// Server
	Port string `validate:"required,numeric"`

	// Storage DSN: ":memory:", "file:<dir>", or a postgres:// URL.
	StorageDSN string

	// Debug enables verbose logging and request tracing middleware.
	Debug bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded configuration from .env file")
	}

	cfg := &Config{
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		AzureEndpoint: os.Getenv("AZURE_OPENAI_ENDPOINT"),
		AzureKey:      os.Getenv("AZURE_OPENAI_KEY"),
		ModelID:       getenv("MODEL_ID", "gpt-4o-mini"),
		Port:          getenv("PORT", "4111"),
		StorageDSN:    getenv("STORAGE_DSN", ":memory:"),
		Debug:         os.Getenv("DEBUG") != "",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.OpenAIAPIKey == "" && c.AzureEndpoint == "" {
		return fmt.Errorf("no inference credentials: set OPENAI_API_KEY or AZURE_OPENAI_ENDPOINT")
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// UseAzure reports whether the client should target an Azure OpenAI endpoint.
func (c *Config) UseAzure() bool {
	return c.AzureEndpoint != ""
}

// LogLevel returns the slog level matching the configuration.
func (c *Config) LogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
