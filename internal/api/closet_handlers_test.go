package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/closet"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
)

func TestListItems_SeedsStarterCloset(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)

	resp := ts.api.Get("/api/v1/closet/items", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[ItemsResponse](t, resp)
	assert.True(t, envelope.Success)
	assert.Len(t, envelope.Data.Items, len(closet.DefaultItems()))
	assert.Equal(t, len(closet.DefaultItems()), envelope.Data.Total)
}

func TestListItems_Unauthenticated(t *testing.T) {
	ts := setupTestServer(t)
	ts.setupRootUser(t)

	resp := ts.api.Get("/api/v1/closet/items")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestAddItem(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)

	resp := ts.api.Post("/api/v1/closet/items",
		"Authorization: Bearer "+token,
		map[string]any{
			"name":     "Corduroy Blazer",
			"category": "outerwear",
			"brand":    "Arket",
			"color":    "brown",
			"tags":     []string{"smart-casual"},
		},
	)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[domain.ClothingItem](t, resp)
	item := envelope.Data
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Corduroy Blazer", item.Name)
	assert.Equal(t, domain.CategoryOuterwear, item.Category)
	assert.Zero(t, item.WearCount)
	assert.False(t, item.IsArchived)
}

func TestAddItem_Invalid(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)

	// Missing name.
	resp := ts.api.Post("/api/v1/closet/items",
		"Authorization: Bearer "+token,
		map[string]any{"category": "tops"},
	)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	// Unknown category.
	resp = ts.api.Post("/api/v1/closet/items",
		"Authorization: Bearer "+token,
		map[string]any{"name": "Fedora", "category": "headwear"},
	)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	envelope := decodeEnvelope[struct{}](t, resp)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION", envelope.Error.Code)
}

func TestUpdateItem(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)
	itemID := ts.addItem(t, token, "Linen Shirt", "tops")

	resp := ts.api.Patch("/api/v1/closet/items/"+itemID,
		"Authorization: Bearer "+token,
		map[string]any{
			"name":       "Linen Shirt (white)",
			"color":      "white",
			"isFavorite": true,
		},
	)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[domain.ClothingItem](t, resp)
	assert.Equal(t, "Linen Shirt (white)", envelope.Data.Name)
	assert.Equal(t, "white", envelope.Data.Color)
	assert.True(t, envelope.Data.IsFavorite)
}

func TestUpdateItem_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)

	resp := ts.api.Patch("/api/v1/closet/items/item_missing",
		"Authorization: Bearer "+token,
		map[string]any{"name": "Ghost"},
	)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteItem_Idempotent(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)
	itemID := ts.addItem(t, token, "Raincoat", "outerwear")

	resp := ts.api.Delete("/api/v1/closet/items/"+itemID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/closet/items/"+itemID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// Deleting again still succeeds.
	resp = ts.api.Delete("/api/v1/closet/items/"+itemID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestArchiveAndRestoreItem(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)
	itemID := ts.addItem(t, token, "Ski Jacket", "outerwear")

	resp := ts.api.Post("/api/v1/closet/items/"+itemID+"/archive", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[domain.ClothingItem](t, resp)
	assert.True(t, envelope.Data.IsArchived)

	// Hidden from the default listing, visible with includeArchived.
	list := decodeEnvelope[ItemsResponse](t, ts.api.Get("/api/v1/closet/items", "Authorization: Bearer "+token))
	for _, item := range list.Data.Items {
		assert.NotEqual(t, itemID, item.ID)
	}

	list = decodeEnvelope[ItemsResponse](t, ts.api.Get("/api/v1/closet/items?includeArchived=true", "Authorization: Bearer "+token))
	assert.Equal(t, len(closet.DefaultItems())+1, list.Data.Total)

	resp = ts.api.Post("/api/v1/closet/items/"+itemID+"/restore", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope = decodeEnvelope[domain.ClothingItem](t, resp)
	assert.False(t, envelope.Data.IsArchived)
}

func TestLogWear(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)
	itemID := ts.addItem(t, token, "Denim Jacket", "outerwear")

	resp := ts.api.Post("/api/v1/closet/items/"+itemID+"/wear", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[domain.ClothingItem](t, resp)
	assert.Equal(t, 1, envelope.Data.WearCount)
	assert.NotNil(t, envelope.Data.LastWornDate)

	resp = ts.api.Post("/api/v1/closet/items/"+itemID+"/wear", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope = decodeEnvelope[domain.ClothingItem](t, resp)
	assert.Equal(t, 2, envelope.Data.WearCount)
}

func TestListItemsByCategory(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)
	ts.addItem(t, token, "Silk Scarf", "accessories")

	resp := ts.api.Get("/api/v1/closet/categories/accessories/items", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[ItemsResponse](t, resp)
	for _, item := range envelope.Data.Items {
		assert.Equal(t, domain.CategoryAccessories, item.Category)
	}

	resp = ts.api.Get("/api/v1/closet/categories/headwear/items", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestSearchCloset(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)
	ts.addItem(t, token, "Corduroy Blazer", "outerwear")

	resp := ts.api.Get("/api/v1/closet/search?q=corduroy", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope[ItemsResponse](t, resp)
	require.Equal(t, 1, envelope.Data.Total)
	assert.Equal(t, "Corduroy Blazer", envelope.Data.Items[0].Name)
}

func TestFilterCloset(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.setupRootUser(t)

	resp := ts.api.Post("/api/v1/closet/filter",
		"Authorization: Bearer "+token,
		map[string]any{"category": "shoes"},
	)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[ItemsResponse](t, resp)
	require.NotEmpty(t, envelope.Data.Items)
	for _, item := range envelope.Data.Items {
		assert.Equal(t, domain.CategoryShoes, item.Category)
	}
}

// addItem creates an item through the API and returns its ID.
func (ts *testServer) addItem(t *testing.T, token, name, category string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/closet/items",
		"Authorization: Bearer "+token,
		map[string]any{"name": name, "category": category},
	)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	envelope := decodeEnvelope[domain.ClothingItem](t, resp)
	return envelope.Data.ID
}
