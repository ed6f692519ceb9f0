// Copyright (c) Nimbus AI. All rights reserved.

// Package workflow runs multi-step pipelines where each step's output feeds
// the next step's input. Steps exchange JSON payloads; use [NewTypedStep] to
// work with typed inputs and outputs instead of raw JSON.
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// Workflow is an ordered sequence of steps. Build one with [New] and execute
// it with [Run]. Workflows are immutable after construction and safe for
// concurrent runs.
type Workflow struct {
	name        string
	description string
	steps       []Step
	logger      *slog.Logger
}

// Option configures a [Workflow].
type Option func(*Workflow)

// WithDescription sets a human-readable description, surfaced by the HTTP
// API's workflow listing.
func WithDescription(desc string) Option {
	return func(w *Workflow) { w.description = desc }
}

// WithLogger sets the logger used for per-step progress records.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workflow) { w.logger = logger }
}

// New creates a workflow with the given name and steps, executed in order.
func New(name string, steps []Step, opts ...Option) *Workflow {
	w := &Workflow{
		name:   name,
		steps:  steps,
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Name returns the workflow name.
func (w *Workflow) Name() string { return w.name }

// Description returns the workflow description.
func (w *Workflow) Description() string { return w.description }

// Steps returns the workflow's steps in execution order.
func (w *Workflow) Steps() []Step { return w.steps }

// StepResult records the outcome of a single step execution.
type StepResult struct {
	StepID   string          `json:"stepId"`
	Output   json.RawMessage `json:"output,omitempty"`
	Error    string          `json:"error,omitempty"`
	Duration time.Duration   `json:"duration"`
}

// Result is the outcome of a complete workflow run. Steps holds one entry per
// executed step; steps after a failure are not executed and have no entry.
type Result struct {
	Workflow string          `json:"workflow"`
	Steps    []StepResult    `json:"steps"`
	Output   json.RawMessage `json:"output,omitempty"`
	Failed   bool            `json:"failed"`
}

// Run executes the steps in order, feeding each step's output to the next
// step. The first step receives input. On step failure the run stops, the
// failing step's result carries the error, and Run returns both the partial
// result and the error.
func (w *Workflow) Run(ctx context.Context, input json.RawMessage) (*Result, error) {
	result := &Result{Workflow: w.name}
	current := input

	for _, step := range w.steps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		w.logger.InfoContext(ctx, "workflow step starting",
			"workflow", w.name,
			"step", step.ID(),
		)

		start := time.Now()
		output, err := step.Run(ctx, current)
		elapsed := time.Since(start)

		sr := StepResult{
			StepID:   step.ID(),
			Output:   output,
			Duration: elapsed,
		}

		if err != nil {
			sr.Error = err.Error()
			result.Steps = append(result.Steps, sr)
			result.Failed = true

			w.logger.ErrorContext(ctx, "workflow step failed",
				"workflow", w.name,
				"step", step.ID(),
				"duration", elapsed,
				"error", err,
			)
			return result, fmt.Errorf("step %q: %w", step.ID(), err)
		}

		w.logger.InfoContext(ctx, "workflow step completed",
			"workflow", w.name,
			"step", step.ID(),
			"duration", elapsed,
		)

		result.Steps = append(result.Steps, sr)
		current = output
	}

	result.Output = current
	return result, nil
}
