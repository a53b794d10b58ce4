// Package search provides full-text search over closet items using
// Bleve, with faceted filtering on category, tags, and color family.
package search

import (
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/normalize"
)

// ItemDocument is the Bleve document for a clothing item.
//
// Design note: the closet itself answers simple substring searches from
// memory; the index exists for ranked multi-word queries, typo
// tolerance, and facets across large closets. Items are denormalized
// flat so one query covers every searchable surface.
type ItemDocument struct {
	// Identity
	ID     string `json:"id"`
	UserID string `json:"user_id"` // Keyword filter - every query is scoped to one user

	// Searchable text
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	Type     string `json:"type,omitempty"`
	Material string `json:"material,omitempty"`
	Notes    string `json:"notes,omitempty"`

	// Keyword fields for exact filtering and faceting
	Category    string   `json:"category"`
	Color       string   `json:"color,omitempty"`
	ColorFamily string   `json:"color_family,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Seasons     []string `json:"seasons,omitempty"`
	Occasion    []string `json:"occasion,omitempty"`

	// State
	IsArchived bool `json:"is_archived"`

	// Numeric fields for range queries and sorting
	Price     float64 `json:"price,omitempty"`
	WearCount int     `json:"wear_count,omitempty"`

	// Timestamps for sorting. Unix millis.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *ItemDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":          d.ID,
		"user_id":     d.UserID,
		"name":        d.Name,
		"category":    d.Category,
		"is_archived": d.IsArchived,
		"created_at":  d.CreatedAt,
		"updated_at":  d.UpdatedAt,
	}

	// Optional fields - only add if non-empty
	if d.Brand != "" {
		m["brand"] = d.Brand
	}
	if d.Type != "" {
		m["type"] = d.Type
	}
	if d.Material != "" {
		m["material"] = d.Material
	}
	if d.Notes != "" {
		m["notes"] = d.Notes
	}
	if d.Color != "" {
		m["color"] = d.Color
	}
	if d.ColorFamily != "" {
		m["color_family"] = d.ColorFamily
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	if len(d.Seasons) > 0 {
		m["seasons"] = d.Seasons
	}
	if len(d.Occasion) > 0 {
		m["occasion"] = d.Occasion
	}
	if d.Price > 0 {
		m["price"] = d.Price
	}
	if d.WearCount > 0 {
		m["wear_count"] = d.WearCount
	}

	return m
}

// ItemToDocument converts a clothing item to its index document.
// Tags are indexed through AllTags so the legacy single tag remains
// searchable.
func ItemToDocument(userID string, item *domain.ClothingItem) *ItemDocument {
	doc := &ItemDocument{
		ID:          item.ID,
		UserID:      userID,
		Name:        item.Name,
		Brand:       item.Brand,
		Type:        item.Type,
		Material:    item.Material,
		Notes:       item.Notes,
		Category:    string(item.Category),
		Color:       normalize.Color(item.Color),
		ColorFamily: normalize.ColorFamily(item.Color),
		Tags:        item.AllTags(),
		Seasons:     item.Seasons,
		Occasion:    item.Occasion,
		IsArchived:  item.IsArchived,
		WearCount:   item.WearCount,
		CreatedAt:   item.CreatedAt.UnixMilli(),
		UpdatedAt:   item.UpdatedAt.UnixMilli(),
	}
	if item.Price != nil {
		doc.Price = *item.Price
	}
	return doc
}
