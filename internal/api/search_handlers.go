package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/search"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Full-text search",
		Description: "Ranked full-text search over the user's closet with filters and facets",
		Tags:        []string{"Search"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearch)

	huma.Register(s.api, huma.Operation{
		OperationID: "rebuildSearchIndex",
		Method:      http.MethodPost,
		Path:        "/api/v1/search/rebuild",
		Summary:     "Rebuild search index",
		Description: "Drops and re-indexes every closet. Root only.",
		Tags:        []string{"Search"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRebuildSearchIndex)
}

// === DTOs ===

// SearchInput contains full-text search parameters.
type SearchInput struct {
	Authorization   string   `header:"Authorization"`
	Query           string   `query:"q" doc:"Search query"`
	Categories      []string `query:"category" doc:"Filter by category, repeatable"`
	Tags            []string `query:"tag" doc:"Filter by tag, repeatable"`
	Colors          []string `query:"color" doc:"Filter by color family, repeatable"`
	Seasons         []string `query:"season" doc:"Filter by season, repeatable"`
	MinPrice        float64  `query:"minPrice" doc:"Minimum purchase price"`
	MaxPrice        float64  `query:"maxPrice" doc:"Maximum purchase price, 0 for unbounded"`
	IncludeArchived bool     `query:"includeArchived" doc:"Include archived items"`
	Limit           int      `query:"limit" doc:"Maximum hits to return"`
	Offset          int      `query:"offset" doc:"Hits to skip"`
	SortBy          string   `query:"sortBy" enum:"relevance,name,recent,price,wear_count" doc:"Sort field"`
	SortOrder       string   `query:"sortOrder" enum:"asc,desc" doc:"Sort direction"`
	Facets          bool     `query:"facets" doc:"Include facet counts"`
	Highlight       bool     `query:"highlight" doc:"Include match highlights"`
}

// SearchOutput wraps search results for Huma.
type SearchOutput struct {
	Body search.SearchResult
}

// === Handlers ===

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.Categories = input.Categories
	params.Tags = input.Tags
	params.ColorFamilies = input.Colors
	params.Seasons = input.Seasons
	params.MinPrice = input.MinPrice
	params.MaxPrice = input.MaxPrice
	params.IncludeArchived = input.IncludeArchived
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	params.Offset = input.Offset
	if input.SortBy != "" {
		params.SortBy = input.SortBy
	}
	if input.SortOrder != "" {
		params.SortOrder = input.SortOrder
	}
	params.IncludeFacets = input.Facets
	params.Highlight = input.Highlight

	result, err := s.services.Search.Search(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	return &SearchOutput{Body: *result}, nil
}

func (s *Server) handleRebuildSearchIndex(ctx context.Context, input *AuthenticatedInput) (*MessageOutput, error) {
	if _, err := s.authenticateAndRequireRoot(ctx, input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Search.Rebuild(ctx); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Search index rebuilt"}}, nil
}
