// Copyright (c) Nimbus AI. All rights reserved.

package workflow

import (
	"context"
	"encoding/json"
	"fmt"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
)

// Step is a single unit of work within a [Workflow]. Input and output are
// JSON payloads; the schemas describe them for API listings.
type Step interface {
	// ID returns the step identifier, unique within its workflow.
	ID() string

	// Description returns a human-readable summary of the step.
	Description() string

	// InputSchema returns the JSON Schema of the step's input.
	InputSchema() json.RawMessage

	// OutputSchema returns the JSON Schema of the step's output.
	OutputSchema() json.RawMessage

	// Run executes the step.
	Run(ctx context.Context, input json.RawMessage) (json.RawMessage, error)
}

// funcStep adapts a function to the [Step] interface.
type funcStep struct {
	id          string
	description string
	inSchema    json.RawMessage
	outSchema   json.RawMessage
	fn          func(ctx context.Context, input json.RawMessage) (json.RawMessage, error)
}

func (s *funcStep) ID() string                   { return s.id }
func (s *funcStep) Description() string          { return s.description }
func (s *funcStep) InputSchema() json.RawMessage { return s.inSchema }
func (s *funcStep) OutputSchema() json.RawMessage {
	return s.outSchema
}

func (s *funcStep) Run(ctx context.Context, input json.RawMessage) (json.RawMessage, error) {
	return s.fn(ctx, input)
}

// NewStep creates a [Step] from a raw JSON function and explicit schemas.
// Prefer [NewTypedStep] when the payload shapes are known at compile time.
func NewStep(id, description string, inSchema, outSchema json.RawMessage, fn func(ctx context.Context, input json.RawMessage) (json.RawMessage, error)) Step {
	return &funcStep{
		id:          id,
		description: description,
		inSchema:    inSchema,
		outSchema:   outSchema,
		fn:          fn,
	}
}

// NewTypedStep creates a [Step] from a typed function. Input unmarshalling,
// output marshalling, and schema generation are handled automatically from
// the In and Out types, using the same struct tags as agentkit tools.
func NewTypedStep[In, Out any](id, description string, fn func(ctx context.Context, input In) (Out, error)) Step {
	return &funcStep{
		id:          id,
		description: description,
		inSchema:    ak.GenerateSchema[In](),
		outSchema:   ak.GenerateSchema[Out](),
		fn: func(ctx context.Context, raw json.RawMessage) (json.RawMessage, error) {
			var input In
			if len(raw) > 0 {
				if err := json.Unmarshal(raw, &input); err != nil {
					return nil, fmt.Errorf("step %q: parse input: %w", id, err)
				}
			}

			output, err := fn(ctx, input)
			if err != nil {
				return nil, err
			}

			encoded, err := json.Marshal(output)
			if err != nil {
				return nil, fmt.Errorf("step %q: encode output: %w", id, err)
			}
			return encoded, nil
		},
	}
}
