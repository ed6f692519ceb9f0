// Copyright (c) Nimbus AI. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
	"github.com/nimbus-ai/weather-agent/internal/config"
	"github.com/nimbus-ai/weather-agent/memory"
	"github.com/nimbus-ai/weather-agent/openai"
	"github.com/nimbus-ai/weather-agent/weather"
	"github.com/nimbus-ai/weather-agent/workflow"
)

// app holds the wired application components shared by the serve and chat
// commands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	agent    *ak.Agent
	workflow *workflow.Workflow
}

// newApp loads configuration and wires the chat client, storage, agent, and
// workflow together.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))
	slog.SetDefault(logger)

	chat, err := newChatClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	opener, err := memory.Open(cfg.StorageDSN)
	if err != nil {
		return nil, fmt.Errorf("open storage %q: %w", cfg.StorageDSN, err)
	}

	weatherClient := weather.NewClient()

	return &app{
		cfg:      cfg,
		logger:   logger,
		agent:    weather.NewAgent(chat, weatherClient, opener),
		workflow: weather.NewActivityWorkflow(chat, weatherClient, workflow.WithLogger(logger)),
	}, nil
}

// newChatClient creates the inference client, choosing between Azure OpenAI
// and direct OpenAI based on configuration.
func newChatClient(cfg *config.Config, logger *slog.Logger) (*openai.Client, error) {
	opts := []openai.Option{openai.WithModel(cfg.ModelID)}
	if cfg.Debug {
		opts = append(opts, openai.WithChatMiddleware(requestLogging(logger)))
	}

	if cfg.UseAzure() {
		opts = append(opts, openai.WithBaseURL(cfg.AzureEndpoint))

		if cfg.AzureKey != "" {
			logger.Info("using Azure OpenAI with API key", "endpoint", cfg.AzureEndpoint)
			opts = append(opts, openai.WithAzureAPIKey(cfg.AzureKey))
			return openai.New("", opts...), nil
		}

		logger.Info("using Azure OpenAI with Azure AD authentication", "endpoint", cfg.AzureEndpoint)
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("create azure credential: %w", err)
		}
		opts = append(opts, openai.WithAzureCredential(cred))
		return openai.New("", opts...), nil
	}

	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
	}
	return openai.New(cfg.OpenAIAPIKey, opts...), nil
}

// requestLogging logs every inference request and its token usage at debug
// level.
func requestLogging(logger *slog.Logger) ak.ChatMiddleware {
	return func(next ak.ChatHandler) ak.ChatHandler {
		return func(ctx context.Context, msgs []ak.Message, opts *ak.ChatOptions) (*ak.ChatResponse, error) {
			logger.DebugContext(ctx, "inference request", "messages", len(msgs))
			resp, err := next(ctx, msgs, opts)
			if err != nil {
				logger.DebugContext(ctx, "inference failed", "error", err)
				return nil, err
			}
			logger.DebugContext(ctx, "inference response",
				"input_tokens", resp.Usage.InputTokens,
				"output_tokens", resp.Usage.OutputTokens,
			)
			return resp, nil
		}
	}
}
