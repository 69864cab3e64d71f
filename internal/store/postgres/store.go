package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/q-lng/Christmas-Community/internal/domain"
	apperrors "github.com/q-lng/Christmas-Community/pkg/errors"
)

// DB is the subset of pgxpool.Pool used by the store. pgxmock satisfies it
// in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements store.DocumentStore over a user_docs jsonb table.
type Store struct {
	db DB
}

// NewStore creates a new PostgreSQL-backed document store.
func NewStore(db DB) *Store {
	return &Store{db: db}
}

// document is the persisted shape of a user document. Unlike domain.User it
// serializes the password hash, which must never leave the store layer in
// JSON form.
type document struct {
	ID             string                 `json:"id"`
	PasswordHash   string                 `json:"password_hash"`
	Info           map[string]string      `json:"info,omitempty"`
	ProfilePicture *domain.ProfilePicture `json:"profile_picture,omitempty"`
	Wishlist       []domain.WishlistItem  `json:"wishlist,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

func toDocument(u *domain.User) *document {
	return &document{
		ID:             u.ID,
		PasswordHash:   u.PasswordHash,
		Info:           u.Info,
		ProfilePicture: u.ProfilePicture,
		Wishlist:       u.Wishlist,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (d *document) toUser() *domain.User {
	return &domain.User{
		ID:             d.ID,
		PasswordHash:   d.PasswordHash,
		Info:           d.Info,
		ProfilePicture: d.ProfilePicture,
		Wishlist:       d.Wishlist,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// Get loads one user document by id.
func (s *Store) Get(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT doc FROM user_docs WHERE id = $1`

	var raw []byte
	if err := s.db.QueryRow(ctx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("user", id)
		}
		return nil, fmt.Errorf("get user doc: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode user doc %s: %w", id, err)
	}

	// The id column is authoritative.
	doc.ID = id
	return doc.toUser(), nil
}

// Put upserts a whole user document.
func (s *Store) Put(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = user.UpdatedAt
	}

	raw, err := json.Marshal(toDocument(user))
	if err != nil {
		return fmt.Errorf("encode user doc %s: %w", user.ID, err)
	}

	query := `
		INSERT INTO user_docs (id, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`

	if _, err := s.db.Exec(ctx, query, user.ID, raw); err != nil {
		return fmt.Errorf("put user doc %s: %w", user.ID, err)
	}

	return nil
}

// All enumerates every user document, ordered by id.
func (s *Store) All(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT id, doc FROM user_docs ORDER BY id`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("enumerate user docs: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan user doc: %w", err)
		}

		var doc document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode user doc %s: %w", id, err)
		}
		doc.ID = id
		users = append(users, doc.toUser())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user docs: %w", err)
	}

	return users, nil
}
