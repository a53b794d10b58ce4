package service

import (
	"context"
	"fmt"
	"time"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
	domainerrors "github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/id"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/logger"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/ratelimit"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/sse"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/store"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/stylist"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/weather"
)

// OutfitService generates outfit suggestions from a user's closet and
// keeps a per-user suggestion history.
type OutfitService struct {
	closet     *ClosetService
	weather    *weather.Client
	stylist    *stylist.Client
	store      *store.Store
	sseManager *sse.Manager
	limiter    *ratelimit.KeyedRateLimiter
	log        *logger.Logger
}

// NewOutfitService creates a new outfit service. limiter caps suggestion
// requests per user; weather and sseManager may be nil.
func NewOutfitService(
	closetService *ClosetService,
	weatherClient *weather.Client,
	stylistClient *stylist.Client,
	store *store.Store,
	sseManager *sse.Manager,
	limiter *ratelimit.KeyedRateLimiter,
	log *logger.Logger,
) *OutfitService {
	return &OutfitService{
		closet:     closetService,
		weather:    weatherClient,
		stylist:    stylistClient,
		store:      store,
		sseManager: sseManager,
		limiter:    limiter,
		log:        log,
	}
}

// SuggestionRequest describes what to dress for. Coordinates are optional;
// when present, current weather at that location shapes the suggestion.
type SuggestionRequest struct {
	Occasion  string   `json:"occasion"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// SuggestOutfit asks the stylist for one outfit assembled from the user's
// non-archived items and persists the result.
func (s *OutfitService) SuggestOutfit(ctx context.Context, userID string, req SuggestionRequest) (*domain.OutfitSuggestion, error) {
	if !s.stylist.Enabled() {
		return nil, domainerrors.Upstream("outfit suggestions are not configured on this server")
	}
	if s.limiter != nil && !s.limiter.Allow(userID) {
		return nil, domainerrors.RateLimited("outfit suggestion limit reached, try again later")
	}

	items, err := s.closet.Items(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domainerrors.Validation("closet has no items to style")
	}

	snapshot := s.fetchWeather(ctx, req)

	catalog := make([]*domain.ClothingItem, len(items))
	knownIDs := make(map[string]bool, len(items))
	for i := range items {
		catalog[i] = &items[i]
		knownIDs[items[i].ID] = true
	}

	var labels []string
	if snapshot != nil {
		labels = snapshot.Labels
	}
	prompt := stylist.BuildOutfitPrompt(catalog, req.Occasion, labels)

	reply, err := s.stylist.Complete(ctx, stylist.SystemPrompt(), prompt)
	if err != nil {
		return nil, err
	}

	parsed, err := stylist.ParseSuggestion(reply, knownIDs)
	if err != nil {
		return nil, err
	}

	suggestionID, err := id.Generate("outfit")
	if err != nil {
		return nil, fmt.Errorf("generate suggestion ID: %w", err)
	}

	suggestion := &domain.OutfitSuggestion{
		ID:        suggestionID,
		UserID:    userID,
		Name:      parsed.Name,
		Occasion:  parsed.Occasion,
		ItemIDs:   parsed.ItemIDs,
		Rationale: parsed.Rationale,
		Weather:   snapshot,
		CreatedAt: time.Now(),
	}

	if err := s.store.Outfits.Create(ctx, suggestionID, suggestion); err != nil {
		return nil, fmt.Errorf("save suggestion: %w", err)
	}

	if s.sseManager != nil {
		s.sseManager.Emit(sse.NewOutfitSuggestedEvent(userID, suggestion))
	}

	s.log.Info("outfit suggested",
		"user_id", userID,
		"suggestion_id", suggestionID,
		"items", len(parsed.ItemIDs),
	)

	return suggestion, nil
}

// fetchWeather resolves current conditions for the request, if it carries
// coordinates. Weather is advisory; a fetch failure degrades to a
// weather-free suggestion instead of failing the request.
func (s *OutfitService) fetchWeather(ctx context.Context, req SuggestionRequest) *domain.WeatherSnapshot {
	if s.weather == nil || req.Latitude == nil || req.Longitude == nil {
		return nil
	}

	conditions, err := s.weather.Current(ctx, *req.Latitude, *req.Longitude)
	if err != nil {
		s.log.WithError(err).Warn("weather unavailable for suggestion")
		return nil
	}

	return &domain.WeatherSnapshot{
		TemperatureC: conditions.TemperatureC,
		Summary:      conditions.Summary(),
		Labels:       conditions.Compatibility(),
	}
}

// History returns the user's past suggestions, newest first.
func (s *OutfitService) History(ctx context.Context, userID string) ([]*domain.OutfitSuggestion, error) {
	suggestions, err := s.store.OutfitsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	return suggestions, nil
}
