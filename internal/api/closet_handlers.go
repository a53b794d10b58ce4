package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/closet"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
)

func (s *Server) registerClosetRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/closet/items",
		Summary:     "List closet items",
		Description: "Returns the user's closet in insertion order. Archived items are excluded unless requested.",
		Tags:        []string{"Closet"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "addItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/closet/items",
		Summary:     "Add item",
		Description: "Adds a clothing item, optionally with an inline base64 photo",
		Tags:        []string{"Closet"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/closet/items/{id}",
		Summary:     "Get item",
		Description: "Returns one item by ID, archived or not",
		Tags:        []string{"Closet"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateItem",
		Method:      http.MethodPatch,
		Path:        "/api/v1/closet/items/{id}",
		Summary:     "Update item",
		Description: "Applies a partial update; absent fields are left alone",
		Tags:        []string{"Closet"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/closet/items/{id}",
		Summary:     "Delete item",
		Description: "Removes an item and its photos. Deleting an unknown item succeeds.",
		Tags:        []string{"Closet"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "archiveItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/closet/items/{id}/archive",
		Summary:     "Archive item",
		Description: "Hides an item from default listings without deleting it",
		Tags:        []string{"Closet"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleArchiveItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "restoreItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/closet/items/{id}/restore",
		Summary:     "Restore item",
		Description: "Brings an archived item back into default listings",
		Tags:        []string{"Closet"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRestoreItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "logWear",
		Method:      http.MethodPost,
		Path:        "/api/v1/closet/items/{id}/wear",
		Summary:     "Log wear",
		Description: "Records that the item was worn now",
		Tags:        []string{"Closet"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLogWear)

	huma.Register(s.api, huma.Operation{
		OperationID: "listItemsByCategory",
		Method:      http.MethodGet,
		Path:        "/api/v1/closet/categories/{category}/items",
		Summary:     "List items by category",
		Description: "Returns the non-archived items in one category",
		Tags:        []string{"Closet"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListItemsByCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchCloset",
		Method:      http.MethodGet,
		Path:        "/api/v1/closet/search",
		Summary:     "Search closet",
		Description: "Case-insensitive substring search across item text fields",
		Tags:        []string{"Closet"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchCloset)

	huma.Register(s.api, huma.Operation{
		OperationID: "filterCloset",
		Method:      http.MethodPost,
		Path:        "/api/v1/closet/filter",
		Summary:     "Filter closet",
		Description: "Returns non-archived items matching every populated filter",
		Tags:        []string{"Closet"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleFilterCloset)
}

// === DTOs ===

// ListItemsInput contains parameters for listing closet items.
type ListItemsInput struct {
	Authorization   string `header:"Authorization"`
	IncludeArchived bool   `query:"includeArchived" doc:"Include archived items"`
}

// ItemsResponse contains a list of closet items.
type ItemsResponse struct {
	Items []domain.ClothingItem `json:"items" doc:"Closet items"`
	Total int                   `json:"total" doc:"Number of items returned"`
}

// ItemsOutput wraps an item list for Huma.
type ItemsOutput struct {
	Body ItemsResponse
}

// AddItemInput wraps a new item draft for Huma.
type AddItemInput struct {
	Authorization string `header:"Authorization"`
	Body          domain.ClothingItem
}

// ItemOutput wraps a single item for Huma.
type ItemOutput struct {
	Body domain.ClothingItem
}

// ItemIDInput addresses one closet item.
type ItemIDInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
}

// UpdateItemRequest is a partial item update plus an optional replacement
// photo.
type UpdateItemRequest struct {
	closet.ItemPatch
	ImageBase64 string `json:"imageBase64,omitempty" doc:"Replacement photo, base64 or data URI"`
}

// UpdateItemInput wraps the update request for Huma.
type UpdateItemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
	Body          UpdateItemRequest
}

// CategoryItemsInput addresses one category.
type CategoryItemsInput struct {
	Authorization string `header:"Authorization"`
	Category      string `path:"category" doc:"Item category"`
}

// SearchClosetInput contains the free-text query.
type SearchClosetInput struct {
	Authorization string `header:"Authorization"`
	Query         string `query:"q" doc:"Search query"`
}

// FilterClosetInput wraps structured filters for Huma.
type FilterClosetInput struct {
	Authorization string `header:"Authorization"`
	Body          closet.Filters
}

// === Handlers ===

func (s *Server) handleListItems(ctx context.Context, input *ListItemsInput) (*ItemsOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	items, err := s.services.Closet.Items(ctx, userID, input.IncludeArchived)
	if err != nil {
		return nil, err
	}

	return &ItemsOutput{Body: ItemsResponse{Items: items, Total: len(items)}}, nil
}

func (s *Server) handleAddItem(ctx context.Context, input *AddItemInput) (*ItemOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Closet.AddItem(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: *item}, nil
}

func (s *Server) handleGetItem(ctx context.Context, input *ItemIDInput) (*ItemOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Closet.Item(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: *item}, nil
}

func (s *Server) handleUpdateItem(ctx context.Context, input *UpdateItemInput) (*ItemOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	// Image and blurhash URLs are server-owned; clients can't patch them
	// directly even though the patch type carries the fields.
	patch := input.Body.ItemPatch
	patch.ImageURL = nil
	patch.ThumbnailURL = nil
	patch.BlurHash = nil

	item, err := s.services.Closet.UpdateItem(ctx, userID, input.ID, patch, input.Body.ImageBase64)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: *item}, nil
}

func (s *Server) handleDeleteItem(ctx context.Context, input *ItemIDInput) (*MessageOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Closet.DeleteItem(ctx, userID, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Item deleted"}}, nil
}

func (s *Server) handleArchiveItem(ctx context.Context, input *ItemIDInput) (*ItemOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Closet.ArchiveItem(ctx, userID, input.ID, true)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: *item}, nil
}

func (s *Server) handleRestoreItem(ctx context.Context, input *ItemIDInput) (*ItemOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Closet.ArchiveItem(ctx, userID, input.ID, false)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: *item}, nil
}

func (s *Server) handleLogWear(ctx context.Context, input *ItemIDInput) (*ItemOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Closet.LogWear(ctx, userID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: *item}, nil
}

func (s *Server) handleListItemsByCategory(ctx context.Context, input *CategoryItemsInput) (*ItemsOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	items, err := s.services.Closet.ItemsByCategory(ctx, userID, domain.Category(input.Category))
	if err != nil {
		return nil, err
	}

	return &ItemsOutput{Body: ItemsResponse{Items: items, Total: len(items)}}, nil
}

func (s *Server) handleSearchCloset(ctx context.Context, input *SearchClosetInput) (*ItemsOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	items, err := s.services.Closet.SearchItems(ctx, userID, input.Query)
	if err != nil {
		return nil, err
	}

	return &ItemsOutput{Body: ItemsResponse{Items: items, Total: len(items)}}, nil
}

func (s *Server) handleFilterCloset(ctx context.Context, input *FilterClosetInput) (*ItemsOutput, error) {
	userID, err := s.authenticateRequest(ctx, input.Authorization)
	if err != nil {
		return nil, err
	}

	items, err := s.services.Closet.FilterItems(ctx, userID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ItemsOutput{Body: ItemsResponse{Items: items, Total: len(items)}}, nil
}
