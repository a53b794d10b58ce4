package service

import (
	"context"

	domainerrors "github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/weather"
)

// WeatherService exposes current conditions to clients, mostly so the app
// can show which closet items suit today's weather.
type WeatherService struct {
	client *weather.Client
}

// NewWeatherService creates a new weather service.
func NewWeatherService(client *weather.Client) *WeatherService {
	return &WeatherService{client: client}
}

// CurrentConditions fetches and labels current weather at a coordinate.
func (s *WeatherService) CurrentConditions(ctx context.Context, latitude, longitude float64) (*weather.Conditions, error) {
	if latitude < -90 || latitude > 90 || longitude < -180 || longitude > 180 {
		return nil, domainerrors.Validation("coordinates out of range")
	}
	return s.client.Current(ctx, latitude, longitude)
}
