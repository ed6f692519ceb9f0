// Copyright (c) Nimbus AI. All rights reserved.

package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.ModelID)
	assert.Equal(t, "4111", cfg.Port)
	assert.Equal(t, ":memory:", cfg.StorageDSN)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.UseAzure())
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("MODEL_ID", "gpt-4o")
	t.Setenv("PORT", "8080")
	t.Setenv("STORAGE_DSN", "file:./sessions")
	t.Setenv("DEBUG", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o", cfg.ModelID)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file:./sessions", cfg.StorageDSN)
	assert.True(t, cfg.Debug)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLoad_RequiresCredentials(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no inference credentials")
}

func TestLoad_AzureWithoutKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("AZURE_OPENAI_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.UseAzure())
	assert.Empty(t, cfg.AzureKey)
}

func TestValidate_RejectsBadPort(t *testing.T) {
	cfg := &Config{
		OpenAIAPIKey: "sk-test",
		ModelID:      "gpt-4o-mini",
		Port:         "not-a-port",
	}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsBadURL(t *testing.T) {
	cfg := &Config{
		OpenAIAPIKey:  "sk-test",
		ModelID:       "gpt-4o-mini",
		Port:          "4111",
		OpenAIBaseURL: "not a url",
	}
	assert.Error(t, cfg.Validate())
}
