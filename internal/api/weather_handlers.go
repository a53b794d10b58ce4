package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/weather"
)

func (s *Server) registerWeatherRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getWeather",
		Method:      http.MethodGet,
		Path:        "/api/v1/weather",
		Summary:     "Current weather",
		Description: "Returns current conditions with the wardrobe compatibility labels they map to",
		Tags:        []string{"Weather"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetWeather)
}

// === DTOs ===

// WeatherInput contains the coordinates to look up.
type WeatherInput struct {
	Authorization string  `header:"Authorization"`
	Latitude      float64 `query:"latitude" required:"true" doc:"Latitude in decimal degrees"`
	Longitude     float64 `query:"longitude" required:"true" doc:"Longitude in decimal degrees"`
}

// WeatherResponse contains conditions plus derived wardrobe labels.
type WeatherResponse struct {
	Conditions    weather.Conditions `json:"conditions" doc:"Current conditions"`
	Summary       string             `json:"summary" doc:"Human-readable conditions summary"`
	Compatibility []string           `json:"compatibility" doc:"Weather labels items can declare compatibility with"`
}

// WeatherOutput wraps the weather response for Huma.
type WeatherOutput struct {
	Body WeatherResponse
}

// === Handlers ===

func (s *Server) handleGetWeather(ctx context.Context, input *WeatherInput) (*WeatherOutput, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}

	conditions, err := s.services.Weather.CurrentConditions(ctx, input.Latitude, input.Longitude)
	if err != nil {
		return nil, err
	}

	return &WeatherOutput{
		Body: WeatherResponse{
			Conditions:    *conditions,
			Summary:       conditions.Summary(),
			Compatibility: conditions.Compatibility(),
		},
	}, nil
}
