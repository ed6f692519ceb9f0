// Copyright (c) Nimbus AI. All rights reserved.

// Package openai provides an [agentkit.ChatClient] backed by an
// OpenAI-compatible chat completions API, including Azure OpenAI
// deployments.
//
// Create a client with [New] and pass it to agentkit.NewAgent:
//
//	client := openai.New(apiKey, openai.WithModel("gpt-4o-mini"))
//	agent  := agentkit.NewAgent(client)
package openai

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
)

// Client implements [agentkit.ChatClient] using the chat completions API.
// Use [New] to create one.
type Client struct {
	tp      transport
	model   string
	handler ak.ChatHandler
}

// Verify interface compliance at compile time.
var _ ak.ChatClient = (*Client)(nil)

// New creates a [Client] with the given API key and options.
//
//	client := openai.New(os.Getenv("OPENAI_API_KEY"),
//	    openai.WithModel("gpt-4o-mini"),
//	)
func New(apiKey string, opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}
	c := &Client{
		tp:    newHTTPTransport(apiKey, cfg),
		model: cfg.model,
	}
	c.handler = c.coreResponse
	// Apply middleware in order (first = outermost).
	for i := len(cfg.chatMiddleware) - 1; i >= 0; i-- {
		c.handler = cfg.chatMiddleware[i](c.handler)
	}
	return c
}

// newWithTransport creates a Client with a custom transport (for testing).
func newWithTransport(tp transport, model string) *Client {
	c := &Client{tp: tp, model: model}
	c.handler = c.coreResponse
	return c
}

// Response sends a non-streaming chat completion request and returns the
// complete response.
func (c *Client) Response(ctx context.Context, messages []ak.Message, opts *ak.ChatOptions) (*ak.ChatResponse, error) {
	return c.handler(ctx, messages, opts)
}

// coreResponse is the base implementation called by the middleware chain.
func (c *Client) coreResponse(ctx context.Context, messages []ak.Message, opts *ak.ChatOptions) (*ak.ChatResponse, error) {
	req := buildRequest(messages, opts, c.model)
	req.Stream = false

	resp, err := c.tp.do(ctx, "POST", "/chat/completions", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", ak.ErrService, err)
	}

	var raw chatCompletionResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ak.ErrService, err)
	}

	result := parseChatResponse(&raw)
	result.Raw = &raw
	return result, nil
}

// StreamResponse sends a streaming chat completion request and returns a
// stream that yields incremental updates parsed from server-sent events.
func (c *Client) StreamResponse(ctx context.Context, messages []ak.Message, opts *ak.ChatOptions) (*ak.ResponseStream[ak.ChatResponseUpdate], error) {
	req := buildRequest(messages, opts, c.model)
	req.Stream = true
	req.StreamOptions = &streamOptions{IncludeUsage: true}

	resp, err := c.tp.do(ctx, "POST", "/chat/completions", req)
	if err != nil {
		return nil, err
	}

	stream := ak.NewResponseStream(ctx, func(ctx context.Context, ch chan<- ak.ChatResponseUpdate) error {
		defer resp.Body.Close()
		return readEventStream(ctx, resp.Body, ch)
	})

	return stream, nil
}

// readEventStream reads server-sent events from r and forwards parsed updates
// to ch. It returns when the stream is exhausted ([DONE] terminator), the
// context is cancelled, or a read error occurs.
func readEventStream(ctx context.Context, r io.Reader, ch chan<- ak.ChatResponseUpdate) error {
	scanner := bufio.NewScanner(r)
	// Allow large SSE lines (some responses can be substantial).
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		data := strings.TrimSpace(strings.TrimPrefix(line, "data: "))

		// Stream terminator.
		if data == "[DONE]" {
			return nil
		}

		var chunk chatCompletionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			// Skip malformed chunks rather than aborting.
			continue
		}

		update := parseChunk(&chunk)
		update.Raw = &chunk

		select {
		case ch <- *update:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: read SSE stream: %v", ak.ErrService, err)
	}

	return nil
}
