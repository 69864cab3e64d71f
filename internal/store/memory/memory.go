package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/q-lng/Christmas-Community/internal/domain"
	apperrors "github.com/q-lng/Christmas-Community/pkg/errors"
)

// Store implements store.DocumentStore using an in-memory map. Documents are
// deep-copied on the way in and out so callers cannot mutate stored state
// without going through Put. Intended for tests and local development.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*domain.User
}

// New creates an empty in-memory document store.
func New() *Store {
	return &Store{docs: make(map[string]*domain.User)}
}

// Seed inserts users without touching timestamps. Test helper.
func (s *Store) Seed(users ...*domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.docs[u.ID] = clone(u)
	}
}

// Get loads one user document by id.
func (s *Store) Get(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, apperrors.NotFound("user", id)
	}
	return clone(doc), nil
}

// Put upserts a whole user document.
func (s *Store) Put(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.UpdatedAt = time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = user.UpdatedAt
	}

	s.docs[user.ID] = clone(user)
	return nil
}

// All enumerates every user document, ordered by id.
func (s *Store) All(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.docs))
	for id := range s.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	users := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, clone(s.docs[id]))
	}
	return users, nil
}

func clone(u *domain.User) *domain.User {
	c := *u
	if u.Info != nil {
		c.Info = make(map[string]string, len(u.Info))
		for k, v := range u.Info {
			c.Info[k] = v
		}
	}
	if u.ProfilePicture != nil {
		pfp := *u.ProfilePicture
		c.ProfilePicture = &pfp
	}
	if u.Wishlist != nil {
		c.Wishlist = make([]domain.WishlistItem, len(u.Wishlist))
		copy(c.Wishlist, u.Wishlist)
	}
	return &c
}
