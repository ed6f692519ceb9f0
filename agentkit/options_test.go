// Copyright (c) Nimbus AI. All rights reserved.

package agentkit_test

import (
	"context"
	"testing"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
)

func newNamedTool(name string) ak.Tool {
	return ak.NewTypedTool(name, "test tool",
		func(ctx context.Context, args struct{}) (any, error) { return nil, nil },
	)
}

func TestMergeChatOptions_NilHandling(t *testing.T) {
	merged := ak.MergeChatOptions(nil, nil)
	if merged == nil {
		t.Fatal("merged should not be nil")
	}

	base := &ak.ChatOptions{ModelID: "gpt-4o-mini"}
	merged = ak.MergeChatOptions(base, nil)
	if merged.ModelID != "gpt-4o-mini" {
		t.Errorf("ModelID = %q", merged.ModelID)
	}
	if merged == base {
		t.Error("merge should copy, not alias")
	}
}

func TestMergeChatOptions_OverrideWins(t *testing.T) {
	temp := 0.2
	base := &ak.ChatOptions{
		ModelID:      "gpt-4o-mini",
		Temperature:  &temp,
		Instructions: "base",
	}
	hot := 0.9
	override := &ak.ChatOptions{
		ModelID:      "gpt-4o",
		Temperature:  &hot,
		Instructions: "override",
	}

	merged := ak.MergeChatOptions(base, override)
	if merged.ModelID != "gpt-4o" {
		t.Errorf("ModelID = %q", merged.ModelID)
	}
	if *merged.Temperature != 0.9 {
		t.Errorf("Temperature = %v", *merged.Temperature)
	}
	if merged.Instructions != "base\noverride" {
		t.Errorf("Instructions = %q", merged.Instructions)
	}
}

func TestMergeChatOptions_ToolsByName(t *testing.T) {
	base := &ak.ChatOptions{Tools: []ak.Tool{newNamedTool("a"), newNamedTool("b")}}
	replacement := newNamedTool("b")
	override := &ak.ChatOptions{Tools: []ak.Tool{replacement, newNamedTool("c")}}

	merged := ak.MergeChatOptions(base, override)
	if len(merged.Tools) != 3 {
		t.Fatalf("tools = %d, want 3", len(merged.Tools))
	}
	if merged.Tools[0].Name() != "a" || merged.Tools[1].Name() != "b" || merged.Tools[2].Name() != "c" {
		t.Errorf("tool order = %s, %s, %s", merged.Tools[0].Name(), merged.Tools[1].Name(), merged.Tools[2].Name())
	}
	if merged.Tools[1] != replacement {
		t.Error("same-named tool should be replaced by override")
	}
}

func TestMergeChatOptions_Metadata(t *testing.T) {
	base := &ak.ChatOptions{Metadata: map[string]string{"a": "1", "b": "2"}}
	override := &ak.ChatOptions{Metadata: map[string]string{"b": "3", "c": "4"}}

	merged := ak.MergeChatOptions(base, override)
	if merged.Metadata["a"] != "1" || merged.Metadata["b"] != "3" || merged.Metadata["c"] != "4" {
		t.Errorf("metadata = %v", merged.Metadata)
	}
}
