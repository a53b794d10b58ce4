package closet

import (
	"slices"
	"strings"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
)

// PriceRange is an inclusive price interval. Items without a price never
// match a price filter.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Filters describes a structured closet query. Absent (zero) fields don't
// constrain; every populated field must match (AND semantics). Query is the
// one exception to structure: it runs the same free-text match as
// SearchItems and is intersected with the rest.
type Filters struct {
	Category   domain.Category    `json:"category,omitempty"`
	Tags       []string           `json:"tags,omitempty"`
	Color      string             `json:"color,omitempty"`
	Seasons    []string           `json:"seasons,omitempty"`
	Conditions []domain.Condition `json:"conditions,omitempty"`
	PriceRange *PriceRange        `json:"priceRange,omitempty"`
	Query      string             `json:"searchQuery,omitempty"`
}

func (f Filters) matches(item *domain.ClothingItem) bool {
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if len(f.Tags) > 0 && !intersects(f.Tags, item.AllTags()) {
		return false
	}
	if f.Color != "" && !strings.EqualFold(f.Color, item.Color) {
		return false
	}
	if len(f.Seasons) > 0 && !intersects(f.Seasons, item.Seasons) {
		return false
	}
	if len(f.Conditions) > 0 && !slices.Contains(f.Conditions, item.Condition) {
		return false
	}
	if f.PriceRange != nil {
		if item.Price == nil {
			return false
		}
		if *item.Price < f.PriceRange.Min || *item.Price > f.PriceRange.Max {
			return false
		}
	}
	if f.Query != "" && !item.MatchesQuery(f.Query) {
		return false
	}
	return true
}

// intersects reports whether the two sets share at least one element.
func intersects(want, have []string) bool {
	for _, w := range want {
		if slices.Contains(have, w) {
			return true
		}
	}
	return false
}
