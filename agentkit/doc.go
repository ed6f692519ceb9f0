// Copyright (c) Nimbus AI. All rights reserved.

// Package agentkit provides the core runtime for the weather-agent starter:
// a composable [Agent] with tool calling, middleware pipelines, session
// management, and streaming support.
//
// # Quick Start
//
// Create a ChatClient (e.g., from the openai package) and build an Agent:
//
//	client := openai.New(os.Getenv("OPENAI_API_KEY"), openai.WithModel("gpt-4o-mini"))
//
//	agent := agentkit.NewAgent(client,
//	    agentkit.WithName("Weather Agent"),
//	    agentkit.WithInstructions("You are a helpful weather assistant."),
//	    agentkit.WithTools(weatherTool),
//	)
//
//	resp, err := agent.Run(ctx, []agentkit.Message{
//	    agentkit.NewUserMessage("What's the weather in Berlin?"),
//	})
//
// # Architecture
//
//   - [Agent]: composes a client with tools, middleware, and sessions.
//   - [ChatClient]: interface for LLM backends (implemented by the openai package).
//   - [Tool]: callable functions exposed to the model via function calling.
//   - [Content]: sealed interface over the message part kinds this runtime exchanges.
//   - [Session]: multi-turn conversation state backed by a [MessageStore].
//   - [ResponseStream]: generic pull-based iterator for streaming responses.
//   - Middleware: three levels (Agent, Chat, Function) for cross-cutting concerns.
//
// # Tools
//
// Use [NewTypedTool] for type-safe tools with automatic JSON Schema generation:
//
//	type WeatherArgs struct {
//	    Location string `json:"location" jsonschema:"description=City name,required"`
//	}
//
//	tool := agentkit.NewTypedTool("weatherTool", "Get current weather for a location",
//	    func(ctx context.Context, args WeatherArgs) (any, error) {
//	        return fetchWeather(ctx, args.Location)
//	    },
//	)
//
// # Sessions
//
// Sessions persist conversation history through a [MessageStore]; the
// memory package provides in-memory, file, and Postgres backends:
//
//	session, _ := agent.NewSession()
//	resp1, _ := agent.Run(ctx, msgs1, agentkit.WithSession(session))
//	resp2, _ := agent.Run(ctx, msgs2, agentkit.WithSession(session))
package agentkit
