// Copyright (c) Nimbus AI. All rights reserved.

package weather

import (
	"context"
	"errors"
	"fmt"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
)

// toolArgs is the input schema of the weather tool.
type toolArgs struct {
	Location string `json:"location" jsonschema:"description=City or place name to get weather for,required"`
}

// Report is the weather tool's output: current conditions for a resolved
// location. Wind speeds are km/h, temperatures Celsius, humidity percent.
type Report struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	WindGust    float64 `json:"windGust"`
	Conditions  string  `json:"conditions"`
	Location    string  `json:"location"`
}

// NewTool creates the weatherTool: it geocodes the requested location and
// fetches current conditions for it.
func NewTool(client *Client) *ak.FunctionTool {
	return ak.NewTypedTool("weatherTool", "Get current weather for a location",
		func(ctx context.Context, args toolArgs) (any, error) {
			return fetchReport(ctx, client, args.Location)
		},
	)
}

// fetchReport resolves a location name and returns its current conditions.
// Shared by the tool and the workflow's fetch step.
func fetchReport(ctx context.Context, client *Client, location string) (*Report, error) {
	loc, err := client.Geocode(ctx, location)
	if err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			return nil, fmt.Errorf("Location '%s' not found", location)
		}
		return nil, err
	}

	cond, err := client.Forecast(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, err
	}

	name := loc.Name
	if loc.Country != "" {
		name = fmt.Sprintf("%s, %s", loc.Name, loc.Country)
	}

	return &Report{
		Temperature: cond.Temperature,
		FeelsLike:   cond.FeelsLike,
		Humidity:    cond.Humidity,
		WindSpeed:   cond.WindSpeed,
		WindGust:    cond.WindGust,
		Conditions:  DescribeWeatherCode(cond.WeatherCode),
		Location:    name,
	}, nil
}
