package weather

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
)

func testClient(baseURL string) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(baseURL, 600, logger)
}

func TestCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "52.5200", r.URL.Query().Get("latitude"))
		assert.Equal(t, "13.4050", r.URL.Query().Get("longitude"))
		assert.Contains(t, r.URL.Query().Get("current"), "temperature_2m")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"current": {
				"time": "2026-01-15T09:00",
				"temperature_2m": 2.4,
				"apparent_temperature": -1.3,
				"precipitation": 0.0,
				"rain": 0.0,
				"snowfall": 0.7,
				"weather_code": 73,
				"wind_speed_10m": 18.5
			}
		}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	conditions, err := c.Current(context.Background(), 52.52, 13.405)
	require.NoError(t, err)

	assert.InDelta(t, 2.4, conditions.TemperatureC, 0.001)
	assert.Equal(t, 73, conditions.WeatherCode)
	assert.Equal(t, "Moderate snowfall", conditions.Summary())
	assert.Equal(t, []string{"cold", "snow"}, conditions.Compatibility())
}

func TestCurrent_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.Current(context.Background(), 0, 0)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))
}

func TestCurrent_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.Current(context.Background(), 0, 0)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))
}

func TestCompatibility(t *testing.T) {
	tests := []struct {
		name       string
		conditions Conditions
		expected   []string
	}{
		{
			name:       "hot and clear",
			conditions: Conditions{TemperatureC: 31, WeatherCode: 0},
			expected:   []string{"hot"},
		},
		{
			name:       "warm",
			conditions: Conditions{TemperatureC: 22},
			expected:   []string{"warm"},
		},
		{
			name:       "mild and rainy by code",
			conditions: Conditions{TemperatureC: 15, WeatherCode: 61},
			expected:   []string{"mild", "rain"},
		},
		{
			name:       "cool and windy",
			conditions: Conditions{TemperatureC: 8, WindSpeedKmh: 30},
			expected:   []string{"cool", "windy"},
		},
		{
			name:       "snow wins over rain",
			conditions: Conditions{TemperatureC: -2, Rain: 0.4, Snowfall: 1.1},
			expected:   []string{"cold", "snow"},
		},
		{
			name:       "freezing drizzle counts as rain",
			conditions: Conditions{TemperatureC: 1, WeatherCode: 56},
			expected:   []string{"cold", "rain"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.conditions.Compatibility())
		})
	}
}
