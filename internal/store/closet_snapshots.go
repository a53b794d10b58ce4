package store

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
)

// wardrobeItemsPrefix namespaces the per-user wardrobe snapshot slots.
// The full key is wardrobeItems:<userID>; the value is the complete item
// collection as one JSON array.
const wardrobeItemsPrefix = "wardrobeItems:"

// ClosetSnapshots persists full wardrobe snapshots for one user. It
// implements closet.Persister: the closet always hands over (and gets back)
// the entire collection, never deltas.
type ClosetSnapshots struct {
	store  *Store
	userID string
}

// ClosetSnapshots returns the snapshot slot for the given user.
func (s *Store) ClosetSnapshots(userID string) *ClosetSnapshots {
	return &ClosetSnapshots{store: s, userID: userID}
}

// Load reads the user's wardrobe snapshot. Returns an error matching
// errors.ErrNotFound when the slot has never been written.
func (cs *ClosetSnapshots) Load(ctx context.Context) ([]domain.ClothingItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := buildKey(wardrobeItemsPrefix, cs.userID)
	defer releaseKey(key)

	var items []domain.ClothingItem
	if err := cs.store.get(key, &items); err != nil {
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return nil, errors.NotFound("wardrobe snapshot not found")
		}
		return nil, fmt.Errorf("failed to load wardrobe snapshot: %w", err)
	}

	return items, nil
}

// Save replaces the user's wardrobe snapshot wholesale.
func (cs *ClosetSnapshots) Save(ctx context.Context, items []domain.ClothingItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := buildKey(wardrobeItemsPrefix, cs.userID)
	defer releaseKey(key)

	if err := cs.store.set(key, items); err != nil {
		return fmt.Errorf("failed to save wardrobe snapshot: %w", err)
	}
	return nil
}

// Delete removes the user's wardrobe snapshot. Idempotent.
func (cs *ClosetSnapshots) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := buildKey(wardrobeItemsPrefix, cs.userID)
	defer releaseKey(key)

	if err := cs.store.delete(key); err != nil {
		return fmt.Errorf("failed to delete wardrobe snapshot: %w", err)
	}
	return nil
}
