// Copyright (c) Nimbus AI. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "weather-agent",
	Short: "Weather agent server and CLI",
	Long: `weather-agent wires a weather-aware AI agent to an OpenAI-compatible
inference API and a forecast API.

Run "weather-agent serve" to expose the agent and the activity workflow over
HTTP, or "weather-agent chat" for an interactive terminal session.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
