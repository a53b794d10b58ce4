package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/service"
)

func (s *Server) registerOutfitRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "suggestOutfit",
		Method:      http.MethodPost,
		Path:        "/api/v1/outfits/suggest",
		Summary:     "Suggest outfit",
		Description: "Asks the stylist for an outfit assembled from the user's closet, weather-aware when coordinates are given",
		Tags:        []string{"Outfits"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSuggestOutfit)

	huma.Register(s.api, huma.Operation{
		OperationID: "listOutfits",
		Method:      http.MethodGet,
		Path:        "/api/v1/outfits",
		Summary:     "Outfit history",
		Description: "Returns past outfit suggestions, newest first",
		Tags:        []string{"Outfits"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListOutfits)
}

// === DTOs ===

// SuggestOutfitInput wraps the suggestion request for Huma.
type SuggestOutfitInput struct {
	Authorization string `header:"Authorization"`
	Body          service.SuggestionRequest
}

// OutfitOutput wraps one suggestion for Huma.
type OutfitOutput struct {
	Body domain.OutfitSuggestion
}

// OutfitsResponse contains past outfit suggestions.
type OutfitsResponse struct {
	Outfits []*domain.OutfitSuggestion `json:"outfits" doc:"Suggestions, newest first"`
	Total   int                        `json:"total" doc:"Number of suggestions returned"`
}

// OutfitsOutput wraps the history response for Huma.
type OutfitsOutput struct {
	Body OutfitsResponse
}

// === Handlers ===

func (s *Server) handleSuggestOutfit(ctx context.Context, input *SuggestOutfitInput) (*OutfitOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	suggestion, err := s.services.Outfit.SuggestOutfit(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	return &OutfitOutput{Body: *suggestion}, nil
}

func (s *Server) handleListOutfits(ctx context.Context, input *AuthenticatedInput) (*OutfitsOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	outfits, err := s.services.Outfit.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &OutfitsOutput{Body: OutfitsResponse{Outfits: outfits, Total: len(outfits)}}, nil
}
