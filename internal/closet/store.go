// Package closet implements the in-memory wardrobe store backing a single
// user's closet.
//
// The collection in memory is authoritative. Every mutation commits in memory
// first and then schedules a best-effort snapshot write through a Persister;
// a failed write is logged and retried on the next mutation, never surfaced
// to the caller. All mutations for one closet go through a single mutex, so
// writes are strictly serialized.
package closet

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/id"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/logger"
)

// saveTimeout bounds a single background snapshot write.
const saveTimeout = 10 * time.Second

// Store holds one user's closet.
type Store struct {
	persister Persister
	log       *logger.Logger

	mu    sync.Mutex
	items []*domain.ClothingItem
	byID  map[string]*domain.ClothingItem

	// dirty has capacity 1 so a burst of mutations coalesces into a single
	// pending snapshot write (last write wins).
	dirty     chan struct{}
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a closet store. Call Open before using it.
func New(persister Persister, log *logger.Logger) *Store {
	return &Store{
		persister: persister,
		log:       log,
		byID:      make(map[string]*domain.ClothingItem),
		dirty:     make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

// Open loads the persisted snapshot and starts the background snapshot
// writer. A missing, unreadable, or corrupt snapshot falls back to the
// default starter closet; a failed load never prevents the closet from
// opening. Nothing is persisted until the first mutation after Open.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.persister.Load(ctx)
	switch {
	case errors.Is(err, errors.ErrNotFound):
		s.log.Info("no wardrobe snapshot found, seeding starter closet")
		items = DefaultItems()
	case err != nil:
		s.log.WithError(err).Warn("failed to load wardrobe snapshot, seeding starter closet")
		items = DefaultItems()
	default:
		if dup, ok := findDuplicateID(items); ok {
			s.log.Warn("wardrobe snapshot contains duplicate item id, discarding snapshot", "id", dup)
			items = DefaultItems()
		}
	}

	s.items = make([]*domain.ClothingItem, 0, len(items))
	s.byID = make(map[string]*domain.ClothingItem, len(items))
	for i := range items {
		item := items[i]
		s.items = append(s.items, &item)
		s.byID[item.ID] = &item
	}

	s.wg.Add(1)
	go s.persistLoop()

	return nil
}

// Close flushes any pending snapshot write and stops the background writer.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

// AddItem validates the draft, assigns a fresh ID and timestamps, and adds
// it to the closet. Server-owned fields on the draft (id, timestamps, wear
// bookkeeping, archival state) are ignored.
func (s *Store) AddItem(ctx context.Context, draft domain.ClothingItem) (*domain.ClothingItem, error) {
	draft.Name = strings.TrimSpace(draft.Name)
	if draft.Name == "" {
		return nil, errors.Validation("item name is required")
	}
	if !draft.Category.Valid() {
		return nil, errors.Validationf("unknown category %q", draft.Category)
	}
	if err := validateAttributes(&draft); err != nil {
		return nil, err
	}

	itemID, err := id.Generate("item")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to generate item id")
	}

	draft.ID = itemID
	draft.InitTimestamps()
	draft.WearCount = 0
	draft.LastWornDate = nil
	draft.IsArchived = false

	s.mu.Lock()
	item := &draft
	s.items = append(s.items, item)
	s.byID[item.ID] = item
	out := cloneItem(item)
	s.mu.Unlock()

	s.markDirty()
	return out, nil
}

// UpdateItem merges the provided patch fields into an existing item and
// bumps its UpdatedAt. ID and CreatedAt are never touched. An unknown ID is
// a no-op reported through found=false.
func (s *Store) UpdateItem(ctx context.Context, itemID string, patch ItemPatch) (*domain.ClothingItem, bool, error) {
	if err := patch.validate(); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	item, ok := s.byID[itemID]
	if !ok {
		s.mu.Unlock()
		return nil, false, nil
	}
	patch.apply(item)
	item.Touch()
	out := cloneItem(item)
	s.mu.Unlock()

	s.markDirty()
	return out, true, nil
}

// DeleteItem removes an item permanently. Deleting an unknown ID is a no-op.
func (s *Store) DeleteItem(ctx context.Context, itemID string) bool {
	s.mu.Lock()
	if _, ok := s.byID[itemID]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.byID, itemID)
	s.items = slices.DeleteFunc(s.items, func(i *domain.ClothingItem) bool {
		return i.ID == itemID
	})
	s.mu.Unlock()

	s.markDirty()
	return true
}

// ArchiveItem sets or clears the archived flag. Archived items keep all
// their data but disappear from every default read path.
func (s *Store) ArchiveItem(ctx context.Context, itemID string, archived bool) (*domain.ClothingItem, bool) {
	s.mu.Lock()
	item, ok := s.byID[itemID]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	item.IsArchived = archived
	item.Touch()
	out := cloneItem(item)
	s.mu.Unlock()

	s.markDirty()
	return out, true
}

// LogWear records a wearing of the item right now.
func (s *Store) LogWear(ctx context.Context, itemID string) (*domain.ClothingItem, bool) {
	s.mu.Lock()
	item, ok := s.byID[itemID]
	if !ok {
		s.mu.Unlock()
		return nil, false
	}
	item.LogWear(time.Now())
	out := cloneItem(item)
	s.mu.Unlock()

	s.markDirty()
	return out, true
}

// Item returns a copy of a single item by ID, archived or not.
func (s *Store) Item(itemID string) (*domain.ClothingItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.byID[itemID]
	if !ok {
		return nil, false
	}
	return cloneItem(item), true
}

// Items returns copies of all items in insertion order. Archived items are
// excluded unless includeArchived is set.
func (s *Store) Items(includeArchived bool) []domain.ClothingItem {
	return s.collect(func(i *domain.ClothingItem) bool {
		return includeArchived || !i.IsArchived
	})
}

// ItemsByCategory returns the non-archived items in the given category.
func (s *Store) ItemsByCategory(category domain.Category) []domain.ClothingItem {
	return s.collect(func(i *domain.ClothingItem) bool {
		return !i.IsArchived && i.Category == category
	})
}

// SearchItems returns the non-archived items matching a free-text query.
// Matching is OR across the item's text fields; see
// domain.ClothingItem.MatchesQuery. An empty query returns everything
// that is not archived.
func (s *Store) SearchItems(query string) []domain.ClothingItem {
	return s.collect(func(i *domain.ClothingItem) bool {
		return !i.IsArchived && i.MatchesQuery(query)
	})
}

// FilterItems returns the non-archived items satisfying every populated
// filter field (AND semantics).
func (s *Store) FilterItems(f Filters) []domain.ClothingItem {
	return s.collect(func(i *domain.ClothingItem) bool {
		return !i.IsArchived && f.matches(i)
	})
}

// Len returns the number of items, including archived ones.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) collect(keep func(*domain.ClothingItem) bool) []domain.ClothingItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.ClothingItem, 0, len(s.items))
	for _, item := range s.items {
		if keep(item) {
			out = append(out, *cloneItem(item))
		}
	}
	return out
}

// markDirty schedules a snapshot write. The single-slot channel collapses
// bursts: if a write is already pending the new mutation rides along with it.
func (s *Store) markDirty() {
	select {
	case s.dirty <- struct{}{}:
	case <-s.done:
	default:
	}
}

func (s *Store) persistLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.dirty:
			s.flush()
		case <-s.done:
			// Final drain so Close never loses the last mutation.
			select {
			case <-s.dirty:
				s.flush()
			default:
			}
			return
		}
	}
}

// flush writes the current snapshot. Failures are logged and otherwise
// swallowed; the in-memory state stays authoritative and the next mutation
// will try again.
func (s *Store) flush() {
	s.mu.Lock()
	snapshot := make([]domain.ClothingItem, 0, len(s.items))
	for _, item := range s.items {
		snapshot = append(snapshot, *cloneItem(item))
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.persister.Save(ctx, snapshot); err != nil {
		s.log.WithError(err).Warn("failed to persist wardrobe snapshot", "items", len(snapshot))
	}
}

// validateAttributes checks the optional enum-valued attributes of an item.
func validateAttributes(item *domain.ClothingItem) error {
	if !item.Condition.Valid() {
		return errors.Validationf("unknown condition %q", item.Condition)
	}
	if !item.Fit.Valid() {
		return errors.Validationf("unknown fit %q", item.Fit)
	}
	if !item.FrequencyOfWear.Valid() {
		return errors.Validationf("unknown wear frequency %q", item.FrequencyOfWear)
	}
	if item.ComfortRating < 0 || item.ComfortRating > 5 {
		return errors.Validationf("comfort rating must be between 1 and 5, got %d", item.ComfortRating)
	}
	return nil
}

func findDuplicateID(items []domain.ClothingItem) (string, bool) {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			return item.ID, true
		}
		seen[item.ID] = struct{}{}
	}
	return "", false
}

// cloneItem returns a deep-enough copy: value copy plus fresh slices, so
// callers can never alias the store's internal state.
func cloneItem(item *domain.ClothingItem) *domain.ClothingItem {
	c := *item
	c.Tags = slices.Clone(item.Tags)
	c.Occasion = slices.Clone(item.Occasion)
	c.WeatherCompatibility = slices.Clone(item.WeatherCompatibility)
	c.Seasons = slices.Clone(item.Seasons)
	if item.PurchaseDate != nil {
		d := *item.PurchaseDate
		c.PurchaseDate = &d
	}
	if item.Price != nil {
		p := *item.Price
		c.Price = &p
	}
	if item.LastWornDate != nil {
		d := *item.LastWornDate
		c.LastWornDate = &d
	}
	return &c
}
