package store

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KamilaKuyanova/FITBOT-sub000/internal/domain"
	apperrors "github.com/KamilaKuyanova/FITBOT-sub000/internal/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := New(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testUser(email string) *domain.User {
	u := &domain.User{Email: email, DisplayName: "Tester"}
	u.ID = "user-" + email
	u.InitTimestamps()
	return u
}

func TestUsersCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := testUser("kamila@example.com")
	require.NoError(t, s.Users.Create(ctx, user.ID, user))

	t.Run("get by id", func(t *testing.T) {
		got, err := s.Users.Get(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
	})

	t.Run("get by email index is case-insensitive", func(t *testing.T) {
		got, err := s.Users.GetByIndex(ctx, "email", "KAMILA@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		err := s.Users.Create(ctx, user.ID, user)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		other := testUser("kamila@example.com")
		other.ID = "user-other"
		err := s.Users.Create(ctx, other.ID, other)
		assert.ErrorIs(t, err, ErrAlreadyExists)
	})

	t.Run("update moves index", func(t *testing.T) {
		user.Email = "new@example.com"
		require.NoError(t, s.Users.Update(ctx, user.ID, user))

		_, err := s.Users.GetByIndex(ctx, "email", "kamila@example.com")
		assert.ErrorIs(t, err, ErrNotFound)

		got, err := s.Users.GetByIndex(ctx, "email", "new@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, s.Users.Delete(ctx, user.ID))
		require.NoError(t, s.Users.Delete(ctx, user.ID))

		_, err := s.Users.Get(ctx, user.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUsersList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		u := testUser(email)
		require.NoError(t, s.Users.Create(ctx, u.ID, u))
	}

	var count int
	for u, err := range s.Users.List(ctx) {
		require.NoError(t, err)
		require.NotNil(t, u)
		count++
	}
	assert.Equal(t, 3, count)
}

func TestClosetSnapshots(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	snaps := s.ClosetSnapshots("user-1")

	t.Run("load before first save reports not found", func(t *testing.T) {
		_, err := snaps.Load(ctx)
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	item := domain.ClothingItem{Name: "Blue Shirt", Category: domain.CategoryTops}
	item.ID = "item-1"
	item.InitTimestamps()

	t.Run("save and load roundtrip", func(t *testing.T) {
		require.NoError(t, snaps.Save(ctx, []domain.ClothingItem{item}))

		items, err := snaps.Load(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Blue Shirt", items[0].Name)
		assert.Equal(t, domain.CategoryTops, items[0].Category)
	})

	t.Run("save replaces wholesale", func(t *testing.T) {
		other := domain.ClothingItem{Name: "Jeans", Category: domain.CategoryBottoms}
		other.ID = "item-2"
		require.NoError(t, snaps.Save(ctx, []domain.ClothingItem{other}))

		items, err := snaps.Load(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Jeans", items[0].Name)
	})

	t.Run("slots are per user", func(t *testing.T) {
		_, err := s.ClosetSnapshots("user-2").Load(ctx)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		require.NoError(t, snaps.Delete(ctx))
		require.NoError(t, snaps.Delete(ctx))

		_, err := snaps.Load(ctx)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestSessions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mkSession := func(id, userID, tokenHash string, expiresAt time.Time) *domain.Session {
		return &domain.Session{
			ID:               id,
			UserID:           userID,
			RefreshTokenHash: tokenHash,
			ExpiresAt:        expiresAt,
			CreatedAt:        time.Now(),
		}
	}

	live := mkSession("ses-live", "user-1", "hash-live", time.Now().Add(time.Hour))
	dead := mkSession("ses-dead", "user-1", "hash-dead", time.Now().Add(-time.Hour))
	other := mkSession("ses-other", "user-2", "hash-other", time.Now().Add(time.Hour))

	for _, sess := range []*domain.Session{live, dead, other} {
		require.NoError(t, s.Sessions.Create(ctx, sess.ID, sess))
	}

	t.Run("lookup by token hash", func(t *testing.T) {
		got, err := s.Sessions.GetByIndex(ctx, "token", "hash-live")
		require.NoError(t, err)
		assert.Equal(t, "ses-live", got.ID)
	})

	t.Run("sessions for user", func(t *testing.T) {
		sessions, err := s.SessionsForUser(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, sessions, 2)
	})

	t.Run("expired cleanup", func(t *testing.T) {
		removed, err := s.DeleteExpiredSessions(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		_, err = s.Sessions.Get(ctx, "ses-dead")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.Sessions.Get(ctx, "ses-live")
		assert.NoError(t, err)
	})
}

func TestInstanceLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.GetInstance(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	created, err := s.InitializeInstance(ctx)
	require.NoError(t, err)
	assert.True(t, created.SetupRequired())

	// Second initialize returns the existing record.
	again, err := s.InitializeInstance(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	created.HasRootUser = true
	require.NoError(t, s.UpdateInstance(ctx, created))

	got, err := s.GetInstance(ctx)
	require.NoError(t, err)
	assert.False(t, got.SetupRequired())
}

func TestOutfitsForUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := &domain.OutfitSuggestion{ID: "outfit-1", UserID: "user-1", Name: "Office", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &domain.OutfitSuggestion{ID: "outfit-2", UserID: "user-1", Name: "Dinner", CreatedAt: time.Now()}
	foreign := &domain.OutfitSuggestion{ID: "outfit-3", UserID: "user-2", Name: "Hike", CreatedAt: time.Now()}

	for _, o := range []*domain.OutfitSuggestion{older, newer, foreign} {
		require.NoError(t, s.Outfits.Create(ctx, o.ID, o))
	}

	outfits, err := s.OutfitsForUser(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, outfits, 2)
	assert.Equal(t, "Dinner", outfits[0].Name, "newest first")
	assert.Equal(t, "Office", outfits[1].Name)
}
