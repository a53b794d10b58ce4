package closet

import (
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/id"
)

// DefaultItems returns the starter closet a user gets when no snapshot
// exists (fresh install) or the stored one cannot be read. IDs are generated
// fresh on every call; the seed lives only in memory until the first
// mutation persists it.
func DefaultItems() []domain.ClothingItem {
	price := func(v float64) *float64 { return &v }

	items := []domain.ClothingItem{
		{
			Name:            "Blue Shirt",
			Category:        domain.CategoryTops,
			Type:            "button-down",
			Color:           "blue",
			Material:        "cotton",
			Condition:       domain.ConditionGood,
			Fit:             domain.FitRegular,
			Tags:            []string{"casual", "work"},
			Seasons:         []string{"spring", "summer", "fall"},
			Occasion:        []string{"office", "everyday"},
			Price:           price(39.90),
			Currency:        "EUR",
			FrequencyOfWear: domain.FrequencyWeekly,
		},
		{
			Name:            "Blue Jeans",
			Category:        domain.CategoryBottoms,
			Type:            "jeans",
			Color:           "blue",
			Material:        "denim",
			Condition:       domain.ConditionExcellent,
			Fit:             domain.FitSlim,
			Tags:            []string{"casual"},
			Seasons:         []string{"spring", "fall", "winter"},
			Occasion:        []string{"everyday"},
			Price:           price(59.00),
			Currency:        "EUR",
			FrequencyOfWear: domain.FrequencyDaily,
		},
		{
			Name:            "White Sneakers",
			Category:        domain.CategoryShoes,
			Type:            "sneakers",
			Color:           "white",
			Material:        "canvas",
			Condition:       domain.ConditionGood,
			Tags:            []string{"casual", "sport"},
			Seasons:         []string{"spring", "summer", "fall"},
			Price:           price(74.95),
			Currency:        "EUR",
			FrequencyOfWear: domain.FrequencyDaily,
		},
		{
			Name:                 "Black Leather Jacket",
			Category:             domain.CategoryOuterwear,
			Type:                 "jacket",
			Color:                "black",
			Material:             "leather",
			Condition:            domain.ConditionExcellent,
			Fit:                  domain.FitRegular,
			Tags:                 []string{"evening", "vintage"},
			Seasons:              []string{"fall", "winter"},
			WeatherCompatibility: []string{"cool", "cold", "windy"},
			Price:                price(189.00),
			Currency:             "EUR",
			FrequencyOfWear:      domain.FrequencyWeekly,
			IsFavorite:           true,
		},
		{
			Name:                 "Floral Summer Dress",
			Category:             domain.CategoryDresses,
			Type:                 "dress",
			Color:                "yellow",
			Material:             "viscose",
			Pattern:              "floral",
			Condition:            domain.ConditionNew,
			Fit:                  domain.FitLoose,
			Tags:                 []string{"summer", "party"},
			Seasons:              []string{"summer"},
			WeatherCompatibility: []string{"hot", "warm"},
			Occasion:             []string{"party", "vacation"},
			Price:                price(45.50),
			Currency:             "EUR",
			FrequencyOfWear:      domain.FrequencyMonthly,
		},
		{
			Name:                 "Wool Scarf",
			Category:             domain.CategoryAccessories,
			Type:                 "scarf",
			Color:                "gray",
			Material:             "wool",
			Condition:            domain.ConditionGood,
			Tags:                 []string{"winter"},
			Seasons:              []string{"fall", "winter"},
			WeatherCompatibility: []string{"cold", "snow"},
			FrequencyOfWear:      domain.FrequencyWeekly,
		},
		{
			Name:            "Running Shorts",
			Category:        domain.CategoryActivewear,
			Type:            "shorts",
			Color:           "black",
			Material:        "polyester",
			Condition:       domain.ConditionFair,
			Tags:            []string{"sport", "running"},
			Seasons:         []string{"spring", "summer"},
			Occasion:        []string{"gym"},
			FrequencyOfWear: domain.FrequencyWeekly,
			ComfortRating:   5,
		},
		{
			Name:      "Gray Hoodie",
			Category:  domain.CategoryTops,
			Type:      "hoodie",
			Color:     "gray",
			Material:  "cotton",
			Condition: domain.ConditionGood,
			Fit:       domain.FitOversized,
			Tags:      []string{"casual", "loungewear"},
			Seasons:   []string{"fall", "winter"},
			Notes:     "Softest thing I own",
		},
	}

	for i := range items {
		items[i].ID = id.MustGenerate("item")
		items[i].InitTimestamps()
	}
	return items
}
