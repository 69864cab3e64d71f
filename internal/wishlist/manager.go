package wishlist

import (
	"context"

	"github.com/q-lng/Christmas-Community/internal/domain"
	"github.com/q-lng/Christmas-Community/internal/store"
	apperrors "github.com/q-lng/Christmas-Community/pkg/errors"
)

// Manager mediates access to per-user wishlists stored inside user documents.
// Every wishlist mutation goes through a Handle so the owning document is
// written back whole.
type Manager struct {
	store store.DocumentStore
}

// NewManager creates a wishlist manager on top of a document store.
func NewManager(s store.DocumentStore) *Manager {
	return &Manager{store: s}
}

// Get loads the wishlist handle for the given owner. Returns a not-found
// error when no user document exists for the owner.
func (m *Manager) Get(ctx context.Context, owner string) (*Handle, error) {
	user, err := m.store.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	return &Handle{manager: m, user: user}, nil
}

// Handle is a loaded user document with wishlist accessors. Mutations made
// through Item are not durable until Save is called.
type Handle struct {
	manager *Manager
	user    *domain.User
}

// Owner returns the id of the user owning this wishlist.
func (h *Handle) Owner() string {
	return h.user.ID
}

// Items returns the wishlist in insertion order.
func (h *Handle) Items() []domain.WishlistItem {
	return h.user.Wishlist
}

// Item returns a pointer into the wishlist for the item with the given id,
// or a not-found error when the owner has no such item.
func (h *Handle) Item(itemID string) (*domain.WishlistItem, error) {
	for i := range h.user.Wishlist {
		if h.user.Wishlist[i].ID == itemID {
			return &h.user.Wishlist[i], nil
		}
	}
	return nil, apperrors.NotFound("item", itemID)
}

// Save persists the whole owning document.
func (h *Handle) Save(ctx context.Context) error {
	return h.manager.store.Put(ctx, h.user)
}
