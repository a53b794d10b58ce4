package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
	apperrors "github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
	"github.com/KamilaKuyanova/FITBOT-sub000/internal/search"
)

func newSearchFixture(t *testing.T) (*SearchService, *ClosetService) {
	t.Helper()

	s := newTestStore(t)
	index, err := search.NewSearchIndex(search.Options{
		DataPath: t.TempDir(),
		Logger:   testLogger().Logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	closetSvc := NewClosetService(s, index, nil, nil, testLogger())
	t.Cleanup(closetSvc.Close)

	return NewSearchService(index, closetSvc, testLogger()), closetSvc
}

func TestSearchService_Search(t *testing.T) {
	searchSvc, closetSvc := newSearchFixture(t)
	ctx := context.Background()

	_, err := closetSvc.AddItem(ctx, "user-1", domain.ClothingItem{
		Name:     "Corduroy Blazer",
		Category: domain.CategoryOuterwear,
		Brand:    "Arket",
	})
	require.NoError(t, err)

	result, err := searchSvc.Search(ctx, "user-1", search.SearchParams{Query: "corduroy"})
	require.NoError(t, err)
	require.NotZero(t, result.Total)
	assert.Equal(t, "Corduroy Blazer", result.Hits[0].Name)
}

func TestSearchService_ScopesToUser(t *testing.T) {
	searchSvc, closetSvc := newSearchFixture(t)
	ctx := context.Background()

	_, err := closetSvc.AddItem(ctx, "user-1", domain.ClothingItem{
		Name:     "Corduroy Blazer",
		Category: domain.CategoryOuterwear,
	})
	require.NoError(t, err)

	// A spoofed UserID in params must not widen the scope.
	result, err := searchSvc.Search(ctx, "user-2", search.SearchParams{
		Query:  "corduroy",
		UserID: "user-1",
	})
	require.NoError(t, err)
	assert.Zero(t, result.Total)

	_, err = searchSvc.Search(ctx, "", search.SearchParams{Query: "corduroy"})
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
}

func TestSearchService_Rebuild(t *testing.T) {
	searchSvc, closetSvc := newSearchFixture(t)
	ctx := context.Background()

	// Rebuild walks users from the store, so the closet owner must exist
	// as a stored user.
	user := &domain.User{Email: "kamila@example.com", DisplayName: "Kamila"}
	user.ID = "user-1"
	user.InitTimestamps()
	s := closetSvc.store
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	_, err := closetSvc.AddItem(ctx, "user-1", domain.ClothingItem{
		Name:     "Linen Trousers",
		Category: domain.CategoryBottoms,
	})
	require.NoError(t, err)

	require.NoError(t, searchSvc.Rebuild(ctx))

	result, err := searchSvc.Search(ctx, "user-1", search.SearchParams{Query: "linen"})
	require.NoError(t, err)
	assert.NotZero(t, result.Total)
}
