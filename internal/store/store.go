package store

import (
	"context"

	"github.com/q-lng/Christmas-Community/internal/domain"
)

// DocumentStore persists whole user documents. Each document owns its
// embedded wishlist; the per-document upsert in Put is the only consistency
// boundary the rest of the application relies on.
type DocumentStore interface {
	// Get loads one user document by id. Returns a not-found error when no
	// document exists for the id.
	Get(ctx context.Context, id string) (*domain.User, error)

	// Put upserts a whole user document atomically.
	Put(ctx context.Context, user *domain.User) error

	// All enumerates every user document, ordered by id.
	All(ctx context.Context) ([]*domain.User, error)
}
