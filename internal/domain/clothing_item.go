// Package domain contains the core entity types for the wardrobe server.
package domain

import (
	"strings"
	"time"
)

// Category classifies a clothing item. The set is closed: anything a client
// sends outside this list is rejected at the validation boundary.
type Category string

// All recognized item categories.
const (
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryShoes       Category = "shoes"
	CategoryAccessories Category = "accessories"
	CategoryOuterwear   Category = "outerwear"
	CategoryDresses     Category = "dresses"
	CategoryActivewear  Category = "activewear"
	CategorySwimwear    Category = "swimwear"
	CategoryUnderwear   Category = "underwear"
	CategoryOther       Category = "other"
	CategoryOutfits     Category = "outfits"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryTops,
		CategoryBottoms,
		CategoryShoes,
		CategoryAccessories,
		CategoryOuterwear,
		CategoryDresses,
		CategoryActivewear,
		CategorySwimwear,
		CategoryUnderwear,
		CategoryOther,
		CategoryOutfits,
	}
}

// Valid reports whether c is one of the recognized categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTops, CategoryBottoms, CategoryShoes, CategoryAccessories,
		CategoryOuterwear, CategoryDresses, CategoryActivewear,
		CategorySwimwear, CategoryUnderwear, CategoryOther, CategoryOutfits:
		return true
	}
	return false
}

// Condition describes the physical state of an item.
type Condition string

// Item conditions from best to worst.
const (
	ConditionNew       Condition = "new"
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionPoor      Condition = "poor"
)

// Valid reports whether the condition is recognized. Empty is allowed;
// condition is an optional attribute.
func (c Condition) Valid() bool {
	switch c {
	case "", ConditionNew, ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// Fit describes how an item fits.
type Fit string

// Recognized fits.
const (
	FitSlim      Fit = "slim"
	FitRegular   Fit = "regular"
	FitLoose     Fit = "loose"
	FitOversized Fit = "oversized"
)

// Valid reports whether the fit is recognized. Empty is allowed.
func (f Fit) Valid() bool {
	switch f {
	case "", FitSlim, FitRegular, FitLoose, FitOversized:
		return true
	}
	return false
}

// WearFrequency is the owner's estimate of how often an item gets worn.
type WearFrequency string

// Recognized wear frequencies.
const (
	FrequencyDaily   WearFrequency = "daily"
	FrequencyWeekly  WearFrequency = "weekly"
	FrequencyMonthly WearFrequency = "monthly"
	FrequencyRarely  WearFrequency = "rarely"
	FrequencyNever   WearFrequency = "never"
)

// Valid reports whether the frequency is recognized. Empty is allowed.
func (f WearFrequency) Valid() bool {
	switch f {
	case "", FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyRarely, FrequencyNever:
		return true
	}
	return false
}

// ClothingItem is a single piece in a user's closet.
//
// Only Name and Category are required. Everything else is optional metadata
// the owner may or may not have filled in, so most fields use omitempty and
// readers must tolerate zero values.
type ClothingItem struct {
	Syncable

	Name     string   `json:"name"`
	Category Category `json:"category"`
	Type     string   `json:"type,omitempty"`
	Brand    string   `json:"brand,omitempty"`

	// ImageBase64 is transport-only: clients upload images inline, the
	// server stores them on disk and strips this field before the item
	// reaches the snapshot.
	ImageBase64  string `json:"imageBase64,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	BlurHash     string `json:"blurHash,omitempty"`

	PurchaseDate *time.Time `json:"purchaseDate,omitempty"`
	Price        *float64   `json:"price,omitempty"`
	Currency     string     `json:"currency,omitempty"`
	Size         string     `json:"size,omitempty"`

	Color     string    `json:"color,omitempty"`
	Material  string    `json:"material,omitempty"`
	Condition Condition `json:"condition,omitempty"`
	Pattern   string    `json:"pattern,omitempty"`
	Fit       Fit       `json:"fit,omitempty"`

	Tags []string `json:"tags,omitempty"`
	// Tag is the legacy singular field older clients still write.
	// Never cleared on update; AllTags is the only place the union happens.
	Tag                  string   `json:"tag,omitempty"`
	Occasion             []string `json:"occasion,omitempty"`
	WeatherCompatibility []string `json:"weatherCompatibility,omitempty"`
	Seasons              []string `json:"seasons,omitempty"`

	FrequencyOfWear WearFrequency `json:"frequencyOfWear,omitempty"`
	ComfortRating   int           `json:"comfortRating,omitempty"`
	IsFavorite      bool          `json:"isFavorite,omitempty"`
	Notes           string        `json:"notes,omitempty"`

	LastWornDate *time.Time `json:"lastWornDate,omitempty"`
	WearCount    int        `json:"wearCount"`
	IsArchived   bool       `json:"isArchived"`
}

// AllTags returns the union of Tags and the legacy singular Tag field,
// preserving first-occurrence order and dropping duplicates.
func (i *ClothingItem) AllTags() []string {
	tags := make([]string, 0, len(i.Tags)+1)
	seen := make(map[string]struct{}, len(i.Tags)+1)
	for _, t := range i.Tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	if i.Tag != "" {
		if _, ok := seen[i.Tag]; !ok {
			tags = append(tags, i.Tag)
		}
	}
	return tags
}

// HasTag reports whether tag appears in AllTags.
func (i *ClothingItem) HasTag(tag string) bool {
	for _, t := range i.AllTags() {
		if t == tag {
			return true
		}
	}
	return false
}

// MatchesQuery reports whether the item matches a free-text query.
// Matching is a case-insensitive substring test OR'd across name, brand,
// tags (including the legacy tag), color, material, notes, and type.
// An empty or whitespace-only query matches everything.
func (i *ClothingItem) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	fields := []string{i.Name, i.Brand, i.Color, i.Material, i.Notes, i.Type}
	fields = append(fields, i.AllTags()...)

	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// LogWear records a wearing of this item at the given time.
func (i *ClothingItem) LogWear(now time.Time) {
	i.WearCount++
	i.LastWornDate = &now
	i.UpdatedAt = now
}

// DisplayImage returns the best available image reference, preferring the
// inline upload, then the stored URL, then the thumbnail.
func (i *ClothingItem) DisplayImage() string {
	if i.ImageBase64 != "" {
		return i.ImageBase64
	}
	if i.ImageURL != "" {
		return i.ImageURL
	}
	return i.ThumbnailURL
}
