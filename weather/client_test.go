// Copyright (c) Nimbus AI. All rights reserved.

package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWeatherAPI serves canned geocoding and forecast responses and counts
// requests per endpoint.
type fakeWeatherAPI struct {
	geocode  *httptest.Server
	forecast *httptest.Server

	geocodeCalls  int
	forecastCalls int

	geocodeEmpty bool
}

func newFakeWeatherAPI(t *testing.T) *fakeWeatherAPI {
	t.Helper()
	f := &fakeWeatherAPI{}

	f.geocode = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.geocodeCalls++
		assert.Equal(t, "/search", r.URL.Path)

		if f.geocodeEmpty {
			fmt.Fprint(w, `{"results":[]}`)
			return
		}
		fmt.Fprint(w, `{"results":[{"name":"Lisbon","country":"Portugal","latitude":38.72,"longitude":-9.14}]}`)
	}))
	t.Cleanup(f.geocode.Close)

	f.forecast = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.forecastCalls++
		assert.Equal(t, "/forecast", r.URL.Path)
		fmt.Fprint(w, `{"current":{
			"temperature_2m":22.5,
			"apparent_temperature":21.8,
			"relative_humidity_2m":60,
			"wind_speed_10m":14.2,
			"wind_gusts_10m":28.1,
			"weather_code":2
		}}`)
	}))
	t.Cleanup(f.forecast.Close)

	return f
}

func (f *fakeWeatherAPI) client() *Client {
	return NewClient(
		WithGeocodeURL(f.geocode.URL),
		WithForecastURL(f.forecast.URL),
	)
}

func TestClient_Geocode(t *testing.T) {
	api := newFakeWeatherAPI(t)
	client := api.client()

	loc, err := client.Geocode(context.Background(), "Lisbon")
	require.NoError(t, err)

	assert.Equal(t, "Lisbon", loc.Name)
	assert.Equal(t, "Portugal", loc.Country)
	assert.InDelta(t, 38.72, loc.Latitude, 0.001)
	assert.InDelta(t, -9.14, loc.Longitude, 0.001)
}

func TestClient_GeocodeNotFound(t *testing.T) {
	api := newFakeWeatherAPI(t)
	api.geocodeEmpty = true
	client := api.client()

	_, err := client.Geocode(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestClient_Forecast(t *testing.T) {
	api := newFakeWeatherAPI(t)
	client := api.client()

	cond, err := client.Forecast(context.Background(), 38.72, -9.14)
	require.NoError(t, err)

	assert.InDelta(t, 22.5, cond.Temperature, 0.001)
	assert.InDelta(t, 21.8, cond.FeelsLike, 0.001)
	assert.InDelta(t, 60.0, cond.Humidity, 0.001)
	assert.InDelta(t, 14.2, cond.WindSpeed, 0.001)
	assert.InDelta(t, 28.1, cond.WindGust, 0.001)
	assert.Equal(t, 2, cond.WeatherCode)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(WithGeocodeURL(srv.URL))
	_, err := client.Geocode(context.Background(), "Lisbon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestDescribeWeatherCode(t *testing.T) {
	assert.Equal(t, "Clear sky", DescribeWeatherCode(0))
	assert.Equal(t, "Partly cloudy", DescribeWeatherCode(2))
	assert.Equal(t, "Thunderstorm", DescribeWeatherCode(95))
	assert.Equal(t, "Unknown", DescribeWeatherCode(42))
}
