// Package weather provides a rate-limited Open-Meteo client used to
// label current conditions for outfit suggestions and weather filters.
package weather

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
)

const defaultTimeout = 15 * time.Second

// currentFields is the Open-Meteo "current" parameter value.
const currentFields = "temperature_2m,apparent_temperature,precipitation,rain,snowfall,weather_code,wind_speed_10m"

// Client provides access to the Open-Meteo forecast API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	logger      *slog.Logger
}

// NewClient creates a new Open-Meteo client. baseURL is injectable so
// tests can point at a local server. requestsPerMinute guards the free
// tier; Open-Meteo asks non-commercial users to stay under 600/min.
func NewClient(baseURL string, requestsPerMinute int, logger *slog.Logger) *Client {
	interval := time.Minute / time.Duration(requestsPerMinute)
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(interval), 2),
		baseURL:     baseURL,
		logger:      logger,
	}
}

// Current fetches current conditions for a coordinate.
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (*Conditions, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', 4, 64))
	params.Set("current", currentFields)
	params.Set("wind_speed_unit", "kmh")

	forecastURL := c.baseURL + "/v1/forecast?" + params.Encode()

	c.logger.Debug("fetching weather",
		"latitude", latitude,
		"longitude", longitude,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, forecastURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Upstream("weather service unreachable").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Upstream(fmt.Sprintf("weather service returned status %d", resp.StatusCode))
	}

	var forecast forecastResponse
	if err := json.UnmarshalRead(resp.Body, &forecast); err != nil {
		return nil, errors.Upstream("failed to parse weather response").WithCause(err)
	}

	conditions := &Conditions{
		TemperatureC: forecast.Current.Temperature,
		ApparentC:    forecast.Current.ApparentTemperature,
		Rain:         forecast.Current.Rain,
		Snowfall:     forecast.Current.Snowfall,
		WeatherCode:  forecast.Current.WeatherCode,
		WindSpeedKmh: forecast.Current.WindSpeed,
	}

	c.logger.Debug("weather fetched",
		"temperature", conditions.TemperatureC,
		"labels", conditions.Compatibility(),
	)

	return conditions, nil
}

// Raw API response types (internal)

type forecastResponse struct {
	Current currentBlock `json:"current"`
}

type currentBlock struct {
	Time                string  `json:"time"`
	Temperature         float64 `json:"temperature_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	Precipitation       float64 `json:"precipitation"`
	Rain                float64 `json:"rain"`
	Snowfall            float64 `json:"snowfall"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed           float64 `json:"wind_speed_10m"`
}
