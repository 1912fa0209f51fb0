package widgets

import (
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkdash/inkdash/cache"
	"github.com/inkdash/inkdash/config"
	"github.com/inkdash/inkdash/display"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastBody = `{
	"current": {"temperature_2m": 72.5, "weather_code": 2},
	"daily": {
		"time": ["2026-08-28", "2026-08-29"],
		"temperature_2m_max": [75.0, 80.1],
		"temperature_2m_min": [60.2, 61.0],
		"weather_code": [2, 61]
	}
}`

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.New(t.TempDir())
	require.NoError(t, err)
	return c
}

func TestWeatherUpdateParsesForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "72.5000", r.URL.Query().Get("latitude"))
		w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	w := NewWeather(config.WeatherConfig{
		Latitude:     72.5,
		Longitude:    -12.25,
		Units:        "fahrenheit",
		ForecastDays: 2,
	}, newTestCache(t))
	w.forecastURL = srv.URL

	require.NoError(t, w.Update())
	require.NotNil(t, w.data)
	assert.Equal(t, 72.5, w.data.Temperature)
	assert.Equal(t, 2, w.data.Code)
	require.Len(t, w.data.Days, 2)
	assert.Equal(t, 80.1, w.data.Days[1].High)
}

func TestWeatherGeocodesZIPWhenConfigured(t *testing.T) {
	geocodeHit := false
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		geocodeHit = true
		assert.Equal(t, "10001", r.URL.Query().Get("name"))
		w.Write([]byte(`{"results": [{"latitude": 40.75, "longitude": -73.99, "name": "New York"}]}`))
	}))
	defer geo.Close()

	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "40.7500", r.URL.Query().Get("latitude"))
		w.Write([]byte(forecastBody))
	}))
	defer forecast.Close()

	w := NewWeather(config.WeatherConfig{ZipCode: "10001"}, newTestCache(t))
	w.forecastURL = forecast.URL
	w.geocodeURL = geo.URL

	require.NoError(t, w.Update())
	assert.True(t, geocodeHit)
}

func TestWeatherServesCachedDataOnSecondUpdate(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	w := NewWeather(config.WeatherConfig{Latitude: 1, Longitude: 2}, newTestCache(t))
	w.forecastURL = srv.URL

	require.NoError(t, w.Update())
	require.NoError(t, w.Update())
	assert.Equal(t, 1, hits)
}

func TestWeatherRenderWithoutData(t *testing.T) {
	w := NewWeather(config.WeatherConfig{}, newTestCache(t))
	r := display.NewRenderer(250, 122)
	w.Render(r, image.Rect(0, 0, 250, 122))

	black := 0
	for _, p := range r.Image().Pix {
		if p == 0 {
			black++
		}
	}
	assert.Greater(t, black, 0)
}

func TestConditionLabels(t *testing.T) {
	assert.Equal(t, "Clear", conditionLabel(0))
	assert.Equal(t, "Thunderstorm", conditionLabel(95))
	assert.Equal(t, "Code 42", conditionLabel(42))
}
