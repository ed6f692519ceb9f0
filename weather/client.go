// Copyright (c) Nimbus AI. All rights reserved.

// Package weather integrates an Open-Meteo style forecast API with the agent
// framework: a rate-limited HTTP client, an agent tool, the example agent,
// and the activity planning workflow.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1"
	defaultForecastURL = "https://api.open-meteo.com/v1"

	// The forecast API allows generous free usage; stay well under it.
	defaultRPS   = 5
	defaultBurst = 10
)

// ErrLocationNotFound is returned by [Client.Geocode] when no location
// matches the query.
var ErrLocationNotFound = fmt.Errorf("location not found")

// Location is a geocoding result.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Conditions is the current weather at a location. Wind speeds are km/h,
// temperatures Celsius, humidity percent.
type Conditions struct {
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feelsLike"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
	WindGust    float64 `json:"windGust"`
	WeatherCode int     `json:"weatherCode"`
}

// Client fetches geocoding and forecast data. Requests are rate limited
// across both endpoints; the zero value is not usable, use [NewClient].
type Client struct {
	geocodeURL  string
	forecastURL string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// ClientOption configures a [Client].
type ClientOption func(*Client)

// WithGeocodeURL overrides the geocoding API base URL.
func WithGeocodeURL(u string) ClientOption {
	return func(c *Client) { c.geocodeURL = u }
}

// WithForecastURL overrides the forecast API base URL.
func WithForecastURL(u string) ClientOption {
	return func(c *Client) { c.forecastURL = u }
}

// WithWeatherHTTPClient provides a custom http.Client.
func WithWeatherHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithRateLimit sets the request rate limit shared by both endpoints.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// NewClient creates a weather API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		geocodeURL:  defaultGeocodeURL,
		forecastURL: defaultForecastURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		limiter:     rate.NewLimiter(rate.Limit(defaultRPS), defaultBurst),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Geocode resolves a location name to coordinates. Returns
// [ErrLocationNotFound] when nothing matches.
func (c *Client) Geocode(ctx context.Context, name string) (*Location, error) {
	u := fmt.Sprintf("%s/search?name=%s&count=1", c.geocodeURL, url.QueryEscape(name))

	var result struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := c.fetchJSON(ctx, u, &result); err != nil {
		return nil, fmt.Errorf("geocode %q: %w", name, err)
	}

	if len(result.Results) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrLocationNotFound, name)
	}

	r := result.Results[0]
	return &Location{
		Name:      r.Name,
		Country:   r.Country,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}, nil
}

// Forecast fetches current conditions for the given coordinates.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*Conditions, error) {
	u := fmt.Sprintf(
		"%s/forecast?latitude=%f&longitude=%f&current=temperature_2m,apparent_temperature,relative_humidity_2m,wind_speed_10m,wind_gusts_10m,weather_code",
		c.forecastURL, lat, lon,
	)

	var result struct {
		Current struct {
			Temperature float64 `json:"temperature_2m"`
			FeelsLike   float64 `json:"apparent_temperature"`
			Humidity    float64 `json:"relative_humidity_2m"`
			WindSpeed   float64 `json:"wind_speed_10m"`
			WindGust    float64 `json:"wind_gusts_10m"`
			WeatherCode int     `json:"weather_code"`
		} `json:"current"`
	}
	if err := c.fetchJSON(ctx, u, &result); err != nil {
		return nil, fmt.Errorf("forecast (%f, %f): %w", lat, lon, err)
	}

	return &Conditions{
		Temperature: result.Current.Temperature,
		FeelsLike:   result.Current.FeelsLike,
		Humidity:    result.Current.Humidity,
		WindSpeed:   result.Current.WindSpeed,
		WindGust:    result.Current.WindGust,
		WeatherCode: result.Current.WeatherCode,
	}, nil
}

func (c *Client) fetchJSON(ctx context.Context, u string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
