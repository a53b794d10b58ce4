package service

import (
	"context"
	"fmt"

	domainerrors "github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/logger"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/search"
)

// SearchService fronts the full-text index. It enforces user scoping on
// every query and rebuilds the index from closet snapshots on demand.
type SearchService struct {
	index  *search.SearchIndex
	closet *ClosetService
	log    *logger.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, closetService *ClosetService, log *logger.Logger) *SearchService {
	return &SearchService{
		index:  index,
		closet: closetService,
		log:    log,
	}
}

// Search runs a query against one user's closet. The user scope comes
// from the authenticated request, never from client-supplied params.
func (s *SearchService) Search(ctx context.Context, userID string, params search.SearchParams) (*search.SearchResult, error) {
	if userID == "" {
		return nil, domainerrors.Unauthorized("search requires an authenticated user")
	}
	params.UserID = userID

	if params.Limit <= 0 {
		params.Limit = 20
	}
	if params.Limit > 100 {
		params.Limit = 100
	}

	// Make sure the user's closet has been loaded and indexed at least once.
	if _, err := s.closet.Items(ctx, userID, false); err != nil {
		return nil, err
	}

	return s.index.Search(ctx, params)
}

// Rebuild drops the index and reindexes every user's closet. Used after
// upgrades that change the index mapping.
func (s *SearchService) Rebuild(ctx context.Context) error {
	if err := s.index.Rebuild(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}
	if err := s.closet.ReindexAll(ctx); err != nil {
		return fmt.Errorf("reindex closets: %w", err)
	}

	count, err := s.index.DocumentCount()
	if err == nil {
		s.log.Info("search index rebuilt", "documents", count)
	}
	return nil
}

// DocumentCount returns the number of indexed items across all users.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}
