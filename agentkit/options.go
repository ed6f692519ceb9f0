// Copyright (c) Nimbus AI. All rights reserved.

package agentkit

// ToolChoice controls how the model selects tools.
type ToolChoice string

const (
	ToolChoiceAuto     ToolChoice = "auto"
	ToolChoiceRequired ToolChoice = "required"
	ToolChoiceNone     ToolChoice = "none"
)

// ChatOptions configures a single chat completion request.
// Pointer fields use nil to represent "unset" (use provider default).
type ChatOptions struct {
	ModelID        string
	Temperature    *float64
	TopP           *float64
	MaxTokens      *int
	Stop           []string
	Seed           *int
	Tools          []Tool
	ToolChoice     ToolChoice
	ResponseFormat any // JSON Schema object for structured output
	User           string
	Instructions   string
	Metadata       map[string]string
}

// MergeChatOptions produces a new ChatOptions by overlaying override values
// onto base. Nil or zero-value fields in override do not overwrite base.
// Tools are merged by name (override replaces same-named tools), metadata
// keys from override win, and instructions are concatenated.
func MergeChatOptions(base, override *ChatOptions) *ChatOptions {
	if base == nil {
		if override == nil {
			return &ChatOptions{}
		}
		cp := *override
		return &cp
	}
	if override == nil {
		cp := *base
		return &cp
	}

	merged := *base

	if override.ModelID != "" {
		merged.ModelID = override.ModelID
	}
	if override.Temperature != nil {
		merged.Temperature = override.Temperature
	}
	if override.TopP != nil {
		merged.TopP = override.TopP
	}
	if override.MaxTokens != nil {
		merged.MaxTokens = override.MaxTokens
	}
	if len(override.Stop) > 0 {
		merged.Stop = override.Stop
	}
	if override.Seed != nil {
		merged.Seed = override.Seed
	}
	if override.ToolChoice != "" {
		merged.ToolChoice = override.ToolChoice
	}
	if override.ResponseFormat != nil {
		merged.ResponseFormat = override.ResponseFormat
	}
	if override.User != "" {
		merged.User = override.User
	}

	if override.Instructions != "" {
		if merged.Instructions != "" {
			merged.Instructions += "\n" + override.Instructions
		} else {
			merged.Instructions = override.Instructions
		}
	}

	if len(override.Tools) > 0 {
		merged.Tools = mergeTools(merged.Tools, override.Tools)
	}

	if len(override.Metadata) > 0 {
		if merged.Metadata == nil {
			merged.Metadata = make(map[string]string, len(override.Metadata))
		}
		for k, v := range override.Metadata {
			merged.Metadata[k] = v
		}
	}

	return &merged
}

// mergeTools merges by name, preserving base order; override replaces
// same-named tools and appends new ones.
func mergeTools(baseTools, overrideTools []Tool) []Tool {
	byName := make(map[string]Tool, len(overrideTools))
	for _, t := range overrideTools {
		byName[t.Name()] = t
	}

	merged := make([]Tool, 0, len(baseTools)+len(overrideTools))
	seen := make(map[string]bool, len(baseTools))
	for _, t := range baseTools {
		if o, ok := byName[t.Name()]; ok {
			merged = append(merged, o)
		} else {
			merged = append(merged, t)
		}
		seen[t.Name()] = true
	}
	for _, t := range overrideTools {
		if !seen[t.Name()] {
			merged = append(merged, t)
		}
	}
	return merged
}
