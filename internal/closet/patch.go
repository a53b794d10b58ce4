package closet

import (
	"strings"
	"time"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
)

// ItemPatch is a partial update for a clothing item. Nil fields are left
// alone; set fields replace the current value wholesale (slices included).
// ID, CreatedAt, and the wear/archive bookkeeping are deliberately absent:
// those only move through their dedicated operations.
type ItemPatch struct {
	Name     *string          `json:"name,omitempty"`
	Category *domain.Category `json:"category,omitempty"`
	Type     *string          `json:"type,omitempty"`
	Brand    *string          `json:"brand,omitempty"`

	ImageURL     *string `json:"imageUrl,omitempty"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
	BlurHash     *string `json:"blurHash,omitempty"`

	PurchaseDate *time.Time `json:"purchaseDate,omitempty"`
	Price        *float64   `json:"price,omitempty"`
	Currency     *string    `json:"currency,omitempty"`
	Size         *string    `json:"size,omitempty"`

	Color     *string           `json:"color,omitempty"`
	Material  *string           `json:"material,omitempty"`
	Condition *domain.Condition `json:"condition,omitempty"`
	Pattern   *string           `json:"pattern,omitempty"`
	Fit       *domain.Fit       `json:"fit,omitempty"`

	Tags                 *[]string `json:"tags,omitempty"`
	Tag                  *string   `json:"tag,omitempty"`
	Occasion             *[]string `json:"occasion,omitempty"`
	WeatherCompatibility *[]string `json:"weatherCompatibility,omitempty"`
	Seasons              *[]string `json:"seasons,omitempty"`

	FrequencyOfWear *domain.WearFrequency `json:"frequencyOfWear,omitempty"`
	ComfortRating   *int                  `json:"comfortRating,omitempty"`
	IsFavorite      *bool                 `json:"isFavorite,omitempty"`
	Notes           *string               `json:"notes,omitempty"`
}

func (p *ItemPatch) validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return errors.Validation("item name cannot be empty")
	}
	if p.Category != nil && !p.Category.Valid() {
		return errors.Validationf("unknown category %q", *p.Category)
	}
	if p.Condition != nil && !p.Condition.Valid() {
		return errors.Validationf("unknown condition %q", *p.Condition)
	}
	if p.Fit != nil && !p.Fit.Valid() {
		return errors.Validationf("unknown fit %q", *p.Fit)
	}
	if p.FrequencyOfWear != nil && !p.FrequencyOfWear.Valid() {
		return errors.Validationf("unknown wear frequency %q", *p.FrequencyOfWear)
	}
	if p.ComfortRating != nil && (*p.ComfortRating < 0 || *p.ComfortRating > 5) {
		return errors.Validationf("comfort rating must be between 1 and 5, got %d", *p.ComfortRating)
	}
	return nil
}

// apply merges the patch into item. Callers hold the store lock.
func (p *ItemPatch) apply(item *domain.ClothingItem) {
	if p.Name != nil {
		item.Name = strings.TrimSpace(*p.Name)
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Type != nil {
		item.Type = *p.Type
	}
	if p.Brand != nil {
		item.Brand = *p.Brand
	}
	if p.ImageURL != nil {
		item.ImageURL = *p.ImageURL
	}
	if p.ThumbnailURL != nil {
		item.ThumbnailURL = *p.ThumbnailURL
	}
	if p.BlurHash != nil {
		item.BlurHash = *p.BlurHash
	}
	if p.PurchaseDate != nil {
		d := *p.PurchaseDate
		item.PurchaseDate = &d
	}
	if p.Price != nil {
		v := *p.Price
		item.Price = &v
	}
	if p.Currency != nil {
		item.Currency = *p.Currency
	}
	if p.Size != nil {
		item.Size = *p.Size
	}
	if p.Color != nil {
		item.Color = *p.Color
	}
	if p.Material != nil {
		item.Material = *p.Material
	}
	if p.Condition != nil {
		item.Condition = *p.Condition
	}
	if p.Pattern != nil {
		item.Pattern = *p.Pattern
	}
	if p.Fit != nil {
		item.Fit = *p.Fit
	}
	if p.Tags != nil {
		item.Tags = append([]string(nil), (*p.Tags)...)
	}
	if p.Tag != nil {
		item.Tag = *p.Tag
	}
	if p.Occasion != nil {
		item.Occasion = append([]string(nil), (*p.Occasion)...)
	}
	if p.WeatherCompatibility != nil {
		item.WeatherCompatibility = append([]string(nil), (*p.WeatherCompatibility)...)
	}
	if p.Seasons != nil {
		item.Seasons = append([]string(nil), (*p.Seasons)...)
	}
	if p.FrequencyOfWear != nil {
		item.FrequencyOfWear = *p.FrequencyOfWear
	}
	if p.ComfortRating != nil {
		item.ComfortRating = *p.ComfortRating
	}
	if p.IsFavorite != nil {
		item.IsFavorite = *p.IsFavorite
	}
	if p.Notes != nil {
		item.Notes = *p.Notes
	}
}
