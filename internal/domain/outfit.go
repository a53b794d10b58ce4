package domain

import "time"

// WeatherSnapshot captures the conditions an outfit suggestion was made for.
// Stored alongside the suggestion so history entries stay explainable after
// the weather has moved on.
type WeatherSnapshot struct {
	TemperatureC float64  `json:"temperatureC"`
	Summary      string   `json:"summary,omitempty"`
	Labels       []string `json:"labels,omitempty"`
}

// OutfitSuggestion is a stylist-generated outfit assembled from a user's
// closet. ItemIDs reference ClothingItems that existed when the suggestion
// was made; readers must tolerate IDs that have since been deleted.
type OutfitSuggestion struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Name      string           `json:"name"`
	Occasion  string           `json:"occasion,omitempty"`
	ItemIDs   []string         `json:"itemIds"`
	Rationale string           `json:"rationale,omitempty"`
	Weather   *WeatherSnapshot `json:"weather,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}
