// Copyright (c) Nimbus AI. All rights reserved.

package workflow

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_RunPipesStepOutputs(t *testing.T) {
	double := NewTypedStep("double", "Doubles the value",
		func(ctx context.Context, in struct {
			Value int `json:"value"`
		}) (map[string]int, error) {
			return map[string]int{"value": in.Value * 2}, nil
		},
	)

	addTen := NewTypedStep("add-ten", "Adds ten",
		func(ctx context.Context, in struct {
			Value int `json:"value"`
		}) (map[string]int, error) {
			return map[string]int{"value": in.Value + 10}, nil
		},
	)

	wf := New("math", []Step{double, addTen}, WithDescription("test pipeline"))
	assert.Equal(t, "math", wf.Name())
	assert.Equal(t, "test pipeline", wf.Description())

	result, err := wf.Run(context.Background(), json.RawMessage(`{"value":3}`))
	require.NoError(t, err)

	require.Len(t, result.Steps, 2)
	assert.Equal(t, "double", result.Steps[0].StepID)
	assert.JSONEq(t, `{"value":6}`, string(result.Steps[0].Output))
	assert.Equal(t, "add-ten", result.Steps[1].StepID)
	assert.JSONEq(t, `{"value":16}`, string(result.Steps[1].Output))

	assert.JSONEq(t, `{"value":16}`, string(result.Output))
	assert.False(t, result.Failed)
}

func TestWorkflow_StopsOnStepFailure(t *testing.T) {
	boom := errors.New("upstream unavailable")

	first := NewTypedStep("fetch", "Fails",
		func(ctx context.Context, in struct{}) (map[string]string, error) {
			return nil, boom
		},
	)

	secondRan := false
	second := NewTypedStep("plan", "Should not run",
		func(ctx context.Context, in struct{}) (map[string]string, error) {
			secondRan = true
			return map[string]string{"ok": "yes"}, nil
		},
	)

	wf := New("failing", []Step{first, second})
	result, err := wf.Run(context.Background(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `step "fetch"`)

	assert.False(t, secondRan, "later steps must not run after a failure")
	assert.True(t, result.Failed)
	require.Len(t, result.Steps, 1)
	assert.Equal(t, "fetch", result.Steps[0].StepID)
	assert.Equal(t, boom.Error(), result.Steps[0].Error)
}

func TestWorkflow_ContextCancellation(t *testing.T) {
	step := NewTypedStep("noop", "Does nothing",
		func(ctx context.Context, in struct{}) (struct{}, error) {
			return struct{}{}, nil
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wf := New("cancelled", []Step{step})
	_, err := wf.Run(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewTypedStep_InvalidInput(t *testing.T) {
	step := NewTypedStep("strict", "Wants a number",
		func(ctx context.Context, in struct {
			N int `json:"n"`
		}) (struct{}, error) {
			return struct{}{}, nil
		},
	)

	_, err := step.Run(context.Background(), json.RawMessage(`{"n":"oops"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse input")
}

func TestNewTypedStep_Schemas(t *testing.T) {
	step := NewTypedStep("describe", "Describes a city",
		func(ctx context.Context, in struct {
			City string `json:"city" jsonschema:"description=City name,required"`
		}) (struct {
			Summary string `json:"summary"`
		}, error) {
			return struct {
				Summary string `json:"summary"`
			}{}, nil
		},
	)

	var in map[string]any
	require.NoError(t, json.Unmarshal(step.InputSchema(), &in))
	props := in["properties"].(map[string]any)
	assert.Contains(t, props, "city")

	var out map[string]any
	require.NoError(t, json.Unmarshal(step.OutputSchema(), &out))
	outProps := out["properties"].(map[string]any)
	assert.Contains(t, outProps, "summary")
}
