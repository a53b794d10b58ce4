package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
)

// OutfitsForUser returns a user's outfit suggestion history, newest first.
func (s *Store) OutfitsForUser(ctx context.Context, userID string) ([]*domain.OutfitSuggestion, error) {
	var outfits []*domain.OutfitSuggestion
	for outfit, err := range s.Outfits.List(ctx) {
		if err != nil {
			return nil, fmt.Errorf("failed to list outfits: %w", err)
		}
		if outfit.UserID == userID {
			outfits = append(outfits, outfit)
		}
	}

	sort.Slice(outfits, func(i, j int) bool {
		return outfits[i].CreatedAt.After(outfits[j].CreatedAt)
	})
	return outfits, nil
}
