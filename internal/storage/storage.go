package storage

import (
	"context"
	"io"
)

// Storage stores uploaded profile picture files. Keys are opaque file names
// scoped to this service; implementations decide where the bytes live.
type Storage interface {
	// Upload stores the content under the given key, replacing any existing
	// file with the same key.
	Upload(ctx context.Context, key string, contentType string, content io.Reader) error

	// Delete removes the file with the given key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// URL returns the public URL for the given key.
	URL(key string) string
}
