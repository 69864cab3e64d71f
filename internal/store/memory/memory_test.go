package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/q-lng/Christmas-Community/internal/domain"
	apperrors "github.com/q-lng/Christmas-Community/pkg/errors"
)

func TestStore_GetPutRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, &domain.User{
		ID:       "alice",
		Wishlist: []domain.WishlistItem{{ID: "42", Name: "Kettle"}},
	}))

	got, err := s.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.ID)
	require.Len(t, got.Wishlist, 1)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestStore_Get_NotFound(t *testing.T) {
	s := New()

	_, err := s.Get(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestStore_All_OrderedByID(t *testing.T) {
	s := New()
	s.Seed(
		&domain.User{ID: "carol"},
		&domain.User{ID: "alice"},
		&domain.User{ID: "bob"},
	)

	users, err := s.All(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].ID)
	assert.Equal(t, "bob", users[1].ID)
	assert.Equal(t, "carol", users[2].ID)
}

func TestStore_CallersCannotMutateStoredState(t *testing.T) {
	s := New()
	ctx := context.Background()
	s.Seed(&domain.User{
		ID:       "alice",
		Wishlist: []domain.WishlistItem{{ID: "42", Purchased: false}},
	})

	got, err := s.Get(ctx, "alice")
	require.NoError(t, err)
	got.Wishlist[0].Purchased = true

	again, err := s.Get(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, again.Wishlist[0].Purchased)
}
