// Copyright (c) Nimbus AI. All rights reserved.

package weather

import (
	ak "github.com/nimbus-ai/weather-agent/agentkit"
)

// AgentInstructions is the system prompt of the weather agent.
const AgentInstructions = `You are a helpful weather assistant that provides accurate weather information.

Your primary function is to help users get weather details for specific locations. When responding:
- Always ask for a location if none is provided
- If the location name isn't in English, please translate it
- Include relevant details like humidity, wind conditions, and precipitation
- Keep responses concise but informative

Use the weatherTool to fetch current weather data.`

// NewAgent creates the example weather agent: it answers weather questions
// using the weather tool, with conversation history persisted through opener.
func NewAgent(chat ak.ChatClient, client *Client, opener ak.StoreOpener) *ak.Agent {
	return ak.NewAgent(chat,
		ak.WithName("Weather Agent"),
		ak.WithDescription("Provides weather information for any location"),
		ak.WithInstructions(AgentInstructions),
		ak.WithTools(NewTool(client)),
		ak.WithStoreOpener(opener),
	)
}
