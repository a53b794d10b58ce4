package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/closet"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
	domainerrors "github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/logger"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/media/images"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/search"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/sse"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/store"
)

// ClosetService coordinates per-user closets with photo storage, the search
// index, and SSE notifications. Each user's closet is loaded lazily on first
// touch and stays resident until shutdown.
type ClosetService struct {
	store       *store.Store
	searchIndex *search.SearchIndex
	sseManager  *sse.Manager
	images      *images.Processor
	log         *logger.Logger

	mu      sync.Mutex
	closets map[string]*closet.Store
}

// NewClosetService creates a new closet service. searchIndex, sseManager,
// and imageProcessor may be nil, which disables the corresponding side
// effects.
func NewClosetService(
	store *store.Store,
	searchIndex *search.SearchIndex,
	sseManager *sse.Manager,
	imageProcessor *images.Processor,
	log *logger.Logger,
) *ClosetService {
	return &ClosetService{
		store:       store,
		searchIndex: searchIndex,
		sseManager:  sseManager,
		images:      imageProcessor,
		log:         log,
		closets:     make(map[string]*closet.Store),
	}
}

// Close flushes and shuts down every open closet.
func (s *ClosetService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.closets {
		c.Close()
	}
	s.closets = make(map[string]*closet.Store)
}

// closetFor returns the user's closet, opening it on first access.
func (s *ClosetService) closetFor(ctx context.Context, userID string) (*closet.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.closets[userID]; ok {
		return c, nil
	}

	c := closet.New(s.store.ClosetSnapshots(userID), s.log)
	if err := c.Open(ctx); err != nil {
		return nil, fmt.Errorf("open closet for %s: %w", userID, err)
	}
	s.closets[userID] = c

	// Freshly opened closets get indexed wholesale so search reflects
	// whatever the snapshot (or seed) contained.
	s.indexAll(userID, c)

	return c, nil
}

// indexAll pushes every item in the closet into the search index.
func (s *ClosetService) indexAll(userID string, c *closet.Store) {
	if s.searchIndex == nil {
		return
	}

	items := c.Items(true)
	docs := make([]*search.ItemDocument, 0, len(items))
	for i := range items {
		docs = append(docs, search.ItemToDocument(userID, &items[i]))
	}
	if err := s.searchIndex.IndexItems(docs); err != nil {
		s.log.WithError(err).Warn("failed to index closet", "user_id", userID, "items", len(docs))
	}
}

// indexItem updates one item in the search index.
func (s *ClosetService) indexItem(userID string, item *domain.ClothingItem) {
	if s.searchIndex == nil {
		return
	}
	if err := s.searchIndex.IndexItem(search.ItemToDocument(userID, item)); err != nil {
		s.log.WithError(err).Warn("failed to index item", "item_id", item.ID)
	}
}

// emit queues an SSE event if a manager is wired.
func (s *ClosetService) emit(event sse.Event) {
	if s.sseManager != nil {
		s.sseManager.Emit(event)
	}
}

// AddItem adds a new item to the user's closet. When the draft carries an
// inline photo, the photo is processed and stored; a photo that fails to
// decode rejects the whole item rather than creating one without its image.
func (s *ClosetService) AddItem(ctx context.Context, userID string, draft domain.ClothingItem) (*domain.ClothingItem, error) {
	c, err := s.closetFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	encoded := draft.ImageBase64
	draft.ImageBase64 = ""

	item, err := c.AddItem(ctx, draft)
	if err != nil {
		return nil, err
	}

	if encoded != "" && s.images != nil {
		item, err = s.attachPhoto(ctx, c, item.ID, encoded)
		if err != nil {
			// Roll the item back; the client gets a clean validation error.
			c.DeleteItem(ctx, item.ID)
			return nil, err
		}
	}

	s.indexItem(userID, item)
	s.emit(sse.NewItemCreatedEvent(userID, item))

	s.log.Info("item added", "user_id", userID, "item_id", item.ID, "category", item.Category)
	return item, nil
}

// UpdateItem applies a partial update to an item. imageBase64, when
// non-empty, replaces the stored photo.
func (s *ClosetService) UpdateItem(ctx context.Context, userID, itemID string, patch closet.ItemPatch, imageBase64 string) (*domain.ClothingItem, error) {
	c, err := s.closetFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, found, err := c.UpdateItem(ctx, itemID, patch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainerrors.NotFoundf("item %s not found", itemID)
	}

	if imageBase64 != "" && s.images != nil {
		item, err = s.attachPhoto(ctx, c, itemID, imageBase64)
		if err != nil {
			return nil, err
		}
	}

	s.indexItem(userID, item)
	s.emit(sse.NewItemUpdatedEvent(userID, item))

	return item, nil
}

// attachPhoto ingests an inline photo and records its URLs on the item.
func (s *ClosetService) attachPhoto(ctx context.Context, c *closet.Store, itemID, encoded string) (*domain.ClothingItem, error) {
	result, err := s.images.Ingest(ctx, itemID, encoded)
	if err != nil {
		return nil, err
	}

	imageURL := fmt.Sprintf("/api/v1/closet/items/%s/image", itemID)
	thumbnailURL := fmt.Sprintf("/api/v1/closet/items/%s/thumbnail", itemID)

	item, found, err := c.UpdateItem(ctx, itemID, closet.ItemPatch{
		ImageURL:     &imageURL,
		ThumbnailURL: &thumbnailURL,
		BlurHash:     &result.BlurHash,
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domainerrors.NotFoundf("item %s not found", itemID)
	}
	return item, nil
}

// DeleteItem removes an item, its photos, and its search document.
// Deleting an unknown item is a no-op.
func (s *ClosetService) DeleteItem(ctx context.Context, userID, itemID string) error {
	c, err := s.closetFor(ctx, userID)
	if err != nil {
		return err
	}

	if !c.DeleteItem(ctx, itemID) {
		return nil
	}

	if s.images != nil {
		if err := s.images.Delete(itemID); err != nil {
			s.log.WithError(err).Warn("failed to delete item photos", "item_id", itemID)
		}
	}
	if s.searchIndex != nil {
		if err := s.searchIndex.DeleteItem(itemID); err != nil {
			s.log.WithError(err).Warn("failed to remove item from search index", "item_id", itemID)
		}
	}

	s.emit(sse.NewItemDeletedEvent(userID, itemID))

	s.log.Info("item deleted", "user_id", userID, "item_id", itemID)
	return nil
}

// ArchiveItem sets or clears the archived flag on an item.
func (s *ClosetService) ArchiveItem(ctx context.Context, userID, itemID string, archived bool) (*domain.ClothingItem, error) {
	c, err := s.closetFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, found := c.ArchiveItem(ctx, itemID, archived)
	if !found {
		return nil, domainerrors.NotFoundf("item %s not found", itemID)
	}

	s.indexItem(userID, item)
	s.emit(sse.NewItemArchivedEvent(userID, item))

	return item, nil
}

// LogWear records a wearing of an item right now.
func (s *ClosetService) LogWear(ctx context.Context, userID, itemID string) (*domain.ClothingItem, error) {
	c, err := s.closetFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, found := c.LogWear(ctx, itemID)
	if !found {
		return nil, domainerrors.NotFoundf("item %s not found", itemID)
	}

	s.indexItem(userID, item)
	s.emit(sse.NewItemWornEvent(userID, item))

	return item, nil
}

// Item returns a single item by ID, archived or not.
func (s *ClosetService) Item(ctx context.Context, userID, itemID string) (*domain.ClothingItem, error) {
	c, err := s.closetFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, found := c.Item(itemID)
	if !found {
		return nil, domainerrors.NotFoundf("item %s not found", itemID)
	}
	return item, nil
}

// Items returns all items in the user's closet in insertion order.
// Archived items are excluded unless includeArchived is set.
func (s *ClosetService) Items(ctx context.Context, userID string, includeArchived bool) ([]domain.ClothingItem, error) {
	c, err := s.closetFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c.Items(includeArchived), nil
}

// ItemsByCategory returns the non-archived items in the given category.
func (s *ClosetService) ItemsByCategory(ctx context.Context, userID string, category domain.Category) ([]domain.ClothingItem, error) {
	if !category.Valid() {
		return nil, domainerrors.Validationf("unknown category %q", category)
	}

	c, err := s.closetFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c.ItemsByCategory(category), nil
}

// SearchItems returns the non-archived items matching a free-text query.
func (s *ClosetService) SearchItems(ctx context.Context, userID, query string) ([]domain.ClothingItem, error) {
	c, err := s.closetFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c.SearchItems(query), nil
}

// FilterItems returns the non-archived items satisfying every populated
// filter field.
func (s *ClosetService) FilterItems(ctx context.Context, userID string, f closet.Filters) ([]domain.ClothingItem, error) {
	c, err := s.closetFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	return c.FilterItems(f), nil
}

// Photo returns the stored full-size photo for an item.
func (s *ClosetService) Photo(ctx context.Context, userID, itemID string) ([]byte, error) {
	if err := s.requireItem(ctx, userID, itemID); err != nil {
		return nil, err
	}

	data, err := s.images.Photo(itemID)
	if err != nil {
		return nil, domainerrors.NotFoundf("no photo for item %s", itemID)
	}
	return data, nil
}

// Thumbnail returns the stored thumbnail for an item.
func (s *ClosetService) Thumbnail(ctx context.Context, userID, itemID string) ([]byte, error) {
	if err := s.requireItem(ctx, userID, itemID); err != nil {
		return nil, err
	}

	data, err := s.images.Thumbnail(itemID)
	if err != nil {
		return nil, domainerrors.NotFoundf("no thumbnail for item %s", itemID)
	}
	return data, nil
}

// requireItem verifies the item belongs to the user's closet. Photos are
// stored by item ID alone, so the ownership check happens here.
func (s *ClosetService) requireItem(ctx context.Context, userID, itemID string) error {
	c, err := s.closetFor(ctx, userID)
	if err != nil {
		return err
	}
	if _, found := c.Item(itemID); !found {
		return domainerrors.NotFoundf("item %s not found", itemID)
	}
	return nil
}

// ReindexAll rebuilds search documents for every known user's closet.
func (s *ClosetService) ReindexAll(ctx context.Context) error {
	for user, err := range s.store.Users.List(ctx) {
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		c, err := s.closetFor(ctx, user.ID)
		if err != nil {
			return err
		}
		s.indexAll(user.ID, c)
	}
	return nil
}
