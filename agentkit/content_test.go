// Copyright (c) Nimbus AI. All rights reserved.

package agentkit_test

import (
	"encoding/json"
	"testing"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
)

func TestContents_JSONRoundTrip(t *testing.T) {
	original := ak.Contents{
		&ak.TextContent{Text: "sunny in Lisbon"},
		&ak.FunctionCallContent{CallID: "call-1", Name: "weatherTool", Arguments: `{"location":"Lisbon"}`},
		&ak.FunctionResultContent{CallID: "call-1", Result: "22C"},
		&ak.ErrorContent{Message: "upstream timeout", ErrorCode: "504"},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded ak.Contents
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(decoded) != len(original) {
		t.Fatalf("decoded %d items, want %d", len(decoded), len(original))
	}

	tc, ok := decoded[0].(*ak.TextContent)
	if !ok || tc.Text != "sunny in Lisbon" {
		t.Errorf("decoded[0] = %#v", decoded[0])
	}

	fc, ok := decoded[1].(*ak.FunctionCallContent)
	if !ok || fc.Name != "weatherTool" || fc.CallID != "call-1" {
		t.Errorf("decoded[1] = %#v", decoded[1])
	}

	fr, ok := decoded[2].(*ak.FunctionResultContent)
	if !ok || fr.Result != "22C" {
		t.Errorf("decoded[2] = %#v", decoded[2])
	}

	ec, ok := decoded[3].(*ak.ErrorContent)
	if !ok || ec.ErrorCode != "504" {
		t.Errorf("decoded[3] = %#v", decoded[3])
	}
}

func TestUnmarshalContentJSON_UnknownType(t *testing.T) {
	_, err := ak.UnmarshalContentJSON([]byte(`{"$type":"hologram"}`))
	if err == nil {
		t.Fatal("expected error for unknown $type")
	}
}

func TestMessage_Text(t *testing.T) {
	msg := ak.Message{
		Role: ak.RoleAssistant,
		Contents: ak.Contents{
			&ak.TextContent{Text: "part one "},
			&ak.FunctionCallContent{CallID: "c", Name: "n"},
			&ak.TextContent{Text: "part two"},
		},
	}
	if msg.Text() != "part one part two" {
		t.Errorf("Text = %q", msg.Text())
	}
}

func TestPrependInstructions(t *testing.T) {
	msgs := []ak.Message{ak.NewUserMessage("hi")}

	out := ak.PrependInstructions(msgs, "be brief")
	if len(out) != 2 || out[0].Role != ak.RoleSystem {
		t.Fatalf("out = %+v", out)
	}

	// Existing system message wins.
	withSys := []ak.Message{ak.NewSystemMessage("original"), ak.NewUserMessage("hi")}
	out = ak.PrependInstructions(withSys, "ignored")
	if len(out) != 2 || out[0].Text() != "original" {
		t.Errorf("system message should not be replaced: %+v", out)
	}

	// Empty instructions are a no-op.
	out = ak.PrependInstructions(msgs, "")
	if len(out) != 1 {
		t.Errorf("empty instructions should not prepend: %+v", out)
	}
}
