// Package main provides a tool to seed the database with a demo wardrobe.
//
// It creates a demo user (unless one with the given email exists) and fills
// their closet with the starter items plus a handful of extras, so filter,
// search, and outfit features have something to chew on.
//
// Usage:
//
//	DATA_PATH=~/FitBot/data go run ./cmd/seed
//	go run ./cmd/seed --email demo@example.com --password "demo password"
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/auth"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/closet"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/id"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/logger"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/store"
)

var (
	email    = flag.String("email", "demo@example.com", "Demo user email")
	password = flag.String("password", "try it on for size", "Demo user password")
	name     = flag.String("display-name", "Demo", "Demo user display name")
)

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/FitBot/data")
	}
	dbPath := filepath.Join(dataPath, "db")

	fmt.Printf("Opening database at: %s\n", dbPath)

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := store.New(dbPath, quiet)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()

	user, err := ensureUser(ctx, s)
	if err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}
	fmt.Printf("Demo user: %s (%s)\n", user.Email, user.ID)

	added, err := seedCloset(ctx, s, user.ID)
	if err != nil {
		log.Fatalf("Failed to seed closet: %v", err)
	}

	fmt.Printf("Closet ready: %d items\n", added)
	fmt.Println("Done.")
}

func ensureUser(ctx context.Context, s *store.Store) (*domain.User, error) {
	existing, err := s.Users.GetByIndex(ctx, "email", *email)
	if err == nil {
		return existing, nil
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		return nil, err
	}

	userID, err := id.Generate("user")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		Syncable: domain.Syncable{
			ID:        userID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        *email,
		PasswordHash: hash,
		DisplayName:  *name,
	}

	if err := s.Users.Create(ctx, user.ID, user); err != nil {
		return nil, err
	}
	return user, nil
}

// extraItems returns a few items beyond the starter set so price and
// season filters return interesting results.
func extraItems() []domain.ClothingItem {
	price := func(v float64) *float64 { return &v }

	return []domain.ClothingItem{
		{
			Name:                 "Camel Overcoat",
			Category:             domain.CategoryOuterwear,
			Brand:                "COS",
			Color:                "camel",
			Material:             "wool",
			Price:                price(220),
			Currency:             "EUR",
			Seasons:              []string{"fall", "winter"},
			WeatherCompatibility: []string{"cold", "cool", "windy"},
			Occasion:             []string{"work"},
			Tags:                 []string{"smart", "layering"},
		},
		{
			Name:                 "Linen Camp Shirt",
			Category:             domain.CategoryTops,
			Color:                "sage",
			Material:             "linen",
			Price:                price(45),
			Currency:             "EUR",
			Seasons:              []string{"summer"},
			WeatherCompatibility: []string{"hot", "warm"},
			Occasion:             []string{"casual"},
			Tags:                 []string{"vacation"},
		},
		{
			Name:                 "Chelsea Boots",
			Category:             domain.CategoryShoes,
			Brand:                "Blundstone",
			Color:                "brown",
			Material:             "leather",
			Condition:            domain.ConditionExcellent,
			Price:                price(180),
			Currency:             "EUR",
			Seasons:              []string{"fall", "winter", "spring"},
			WeatherCompatibility: []string{"rain", "cool", "cold"},
			Tags:                 []string{"boots", "everyday"},
		},
		{
			Name:     "Pleated Midi Skirt",
			Category: domain.CategoryBottoms,
			Color:    "navy",
			Fit:      domain.FitRegular,
			Price:    price(60),
			Currency: "EUR",
			Seasons:  []string{"spring", "summer", "fall"},
			Occasion: []string{"work"},
		},
	}
}

func seedCloset(ctx context.Context, s *store.Store, userID string) (int, error) {
	quiet := &logger.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	c := closet.New(s.ClosetSnapshots(userID), quiet)
	if err := c.Open(ctx); err != nil {
		return 0, err
	}
	defer c.Close()

	for _, item := range extraItems() {
		if _, err := c.AddItem(ctx, item); err != nil {
			return 0, fmt.Errorf("add %q: %w", item.Name, err)
		}
	}

	return c.Len(), nil
}
