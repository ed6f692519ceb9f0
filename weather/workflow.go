// Copyright (c) Nimbus AI. All rights reserved.

package weather

import (
	"context"
	"fmt"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
	"github.com/nimbus-ai/weather-agent/workflow"
)

// plannerInstructions is the system prompt of the activity planning step.
const plannerInstructions = `You are a local activities and travel expert who excels at weather-based planning.

Given the weather conditions, suggest appropriate activities:
- Suggest 2-3 outdoor activities suited to the conditions
- Suggest 1-2 indoor backup activities
- Consider the temperature, wind, and precipitation in your suggestions
- Keep the response short and well structured`

// workflowInput is the input of the activity workflow's first step.
type workflowInput struct {
	City string `json:"city" jsonschema:"description=City to plan activities for,required"`
}

// planOutput is the output of the activity workflow's final step.
type planOutput struct {
	Activities string `json:"activities"`
}

// NewActivityWorkflow builds the weather-to-activities workflow: fetch the
// forecast for a city, then ask the model to recommend activities for those
// conditions.
func NewActivityWorkflow(chat ak.ChatClient, client *Client, opts ...workflow.Option) *workflow.Workflow {
	fetchStep := workflow.NewTypedStep("fetch-weather", "Fetches current weather for a city",
		func(ctx context.Context, in workflowInput) (*Report, error) {
			if in.City == "" {
				return nil, fmt.Errorf("city is required")
			}
			return fetchReport(ctx, client, in.City)
		},
	)

	planStep := workflow.NewTypedStep("plan-activities", "Recommends activities for the weather",
		func(ctx context.Context, report *Report) (*planOutput, error) {
			prompt := fmt.Sprintf(
				"Current weather in %s: %s, %.1fC (feels like %.1fC), humidity %.0f%%, wind %.1f km/h gusting %.1f km/h. What should I do today?",
				report.Location, report.Conditions,
				report.Temperature, report.FeelsLike,
				report.Humidity, report.WindSpeed, report.WindGust,
			)

			resp, err := chat.Response(ctx,
				[]ak.Message{
					ak.NewSystemMessage(plannerInstructions),
					ak.NewUserMessage(prompt),
				},
				nil,
			)
			if err != nil {
				return nil, fmt.Errorf("plan activities: %w", err)
			}

			return &planOutput{Activities: resp.Text()}, nil
		},
	)

	allOpts := append([]workflow.Option{
		workflow.WithDescription("Fetches the forecast for a city and recommends activities"),
	}, opts...)

	return workflow.New("weather-activities", []workflow.Step{fetchStep, planStep}, allOpts...)
}
