// Copyright (c) Nimbus AI. All rights reserved.

package openai

import (
	"encoding/json"
	"strings"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
)

// chatRequest is the chat completions API request body.
type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    *float64          `json:"temperature,omitempty"`
	TopP           *float64          `json:"top_p,omitempty"`
	MaxTokens      *int              `json:"max_completion_tokens,omitempty"`
	Stop           []string          `json:"stop,omitempty"`
	Seed           *int              `json:"seed,omitempty"`
	Tools          []toolSpec        `json:"tools,omitempty"`
	ToolChoice     any               `json:"tool_choice,omitempty"`
	User           string            `json:"user,omitempty"`
	Stream         bool              `json:"stream,omitempty"`
	StreamOptions  *streamOptions    `json:"stream_options,omitempty"`
	ResponseFormat any               `json:"response_format,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

type chatMessage struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	Name       string     `json:"name,omitempty"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

type toolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function functionCall `json:"function"`
}

type functionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type toolSpec struct {
	Type     string       `json:"type"`
	Function functionSpec `json:"function"`
}

type functionSpec struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// buildRequest converts agentkit types into a chat completions request.
func buildRequest(messages []ak.Message, opts *ak.ChatOptions, defaultModel string) *chatRequest {
	req := &chatRequest{
		Model: defaultModel,
	}
	if opts != nil {
		if opts.ModelID != "" {
			req.Model = opts.ModelID
		}
		req.Temperature = opts.Temperature
		req.TopP = opts.TopP
		req.MaxTokens = opts.MaxTokens
		req.Stop = opts.Stop
		req.Seed = opts.Seed
		req.User = opts.User
		req.Metadata = opts.Metadata
		req.ResponseFormat = opts.ResponseFormat

		for _, t := range opts.Tools {
			req.Tools = append(req.Tools, toolSpec{
				Type: "function",
				Function: functionSpec{
					Name:        t.Name(),
					Description: t.Description(),
					Parameters:  t.Parameters(),
				},
			})
		}

		req.ToolChoice = toolChoiceValue(opts.ToolChoice)
	}

	req.Messages = toChatMessages(messages)
	return req
}

// toChatMessages translates agentkit messages into API chat messages.
func toChatMessages(messages []ak.Message) []chatMessage {
	result := make([]chatMessage, 0, len(messages))

	for _, msg := range messages {
		cm := chatMessage{
			Role: string(msg.Role),
			Name: msg.AuthorName,
		}

		switch msg.Role {
		case ak.RoleTool:
			// Tool messages carry a single function result.
			for _, c := range msg.Contents {
				if fr, ok := c.(*ak.FunctionResultContent); ok {
					cm.ToolCallID = fr.CallID
					cm.Content = resultString(fr.Result)
				}
			}

		case ak.RoleAssistant:
			// Assistant messages may mix text with tool calls.
			var text strings.Builder
			for _, c := range msg.Contents {
				switch v := c.(type) {
				case *ak.TextContent:
					text.WriteString(v.Text)
				case *ak.FunctionCallContent:
					cm.ToolCalls = append(cm.ToolCalls, toolCall{
						ID:   v.CallID,
						Type: "function",
						Function: functionCall{
							Name:      v.Name,
							Arguments: v.Arguments,
						},
					})
				}
			}
			cm.Content = text.String()

		default:
			// User and system messages are plain text.
			cm.Content = msg.Text()
		}

		result = append(result, cm)
	}

	return result
}

// toolChoiceValue maps an agentkit ToolChoice to the API representation.
// A "function:<name>" choice forces a specific tool.
func toolChoiceValue(tc ak.ToolChoice) any {
	switch tc {
	case "":
		return nil
	case ak.ToolChoiceAuto, ak.ToolChoiceRequired, ak.ToolChoiceNone:
		return string(tc)
	default:
		if name, ok := strings.CutPrefix(string(tc), "function:"); ok {
			return map[string]any{
				"type":     "function",
				"function": map[string]string{"name": name},
			}
		}
		return string(tc)
	}
}

// resultString renders a tool result for the wire. Strings pass through,
// everything else is JSON-encoded.
func resultString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
