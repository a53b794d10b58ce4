package closet

import (
	"context"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
)

// Persister loads and saves the full closet snapshot for one user.
//
// The closet keeps its authoritative state in memory; the persister is only
// the durability layer behind it. Save always receives the complete item
// collection, never a delta.
type Persister interface {
	// Load returns the persisted snapshot. Implementations return an error
	// matching errors.ErrNotFound when no snapshot has ever been saved.
	Load(ctx context.Context) ([]domain.ClothingItem, error)

	// Save replaces the persisted snapshot with the given items.
	Save(ctx context.Context, items []domain.ClothingItem) error
}
