// Package main implements a standalone seed script that provisions user
// documents with hashed passwords and sample wishlists. The service has no
// registration endpoint; accounts are created out of band with this tool.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/q-lng/Christmas-Community/internal/domain"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

type seedUser struct {
	id       string
	password string
	info     map[string]string
	wishlist []domain.WishlistItem
}

var seedUsers = []seedUser{
	{
		id:       "alice",
		password: "alice-password",
		info:     map[string]string{"shoeSize": "38", "hatSize": "M"},
		wishlist: []domain.WishlistItem{
			{ID: "1", Name: "Electric kettle", Price: "35.00", AddedBy: "alice", PledgedBy: "dave"},
			{ID: "2", Name: "Wool scarf", Price: "20.00", AddedBy: "alice"},
			{ID: "3", URL: "https://example.com/espresso-cups", AddedBy: "bob"},
		},
	},
	{
		id:       "bob",
		password: "bob-password",
		info:     map[string]string{"shirtSize": "L"},
		wishlist: []domain.WishlistItem{
			{ID: "1", Name: "Cordless drill", Price: "89.00", AddedBy: "bob", PledgedBy: "dave", Purchased: true},
		},
	},
	{
		id:       "dave",
		password: "dave-password",
		wishlist: []domain.WishlistItem{},
	},
}

type document struct {
	ID           string                `json:"id"`
	PasswordHash string                `json:"password_hash"`
	Info         map[string]string     `json:"info,omitempty"`
	Wishlist     []domain.WishlistItem `json:"wishlist,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		getEnv("POSTGRES_USER", "wishlist"),
		getEnv("POSTGRES_PASSWORD", "wishlist"),
		getEnv("POSTGRES_HOST", "localhost"),
		getEnv("POSTGRES_PORT", "5432"),
		getEnv("POSTGRES_DB", "wishlist"),
		getEnv("POSTGRES_SSL_MODE", "disable"),
	)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to postgres: %v", err)
	}
	defer pool.Close()

	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), 12)
		if err != nil {
			log.Fatalf("hash password for %s: %v", su.id, err)
		}

		now := time.Now().UTC()
		raw, err := json.Marshal(document{
			ID:           su.id,
			PasswordHash: string(hash),
			Info:         su.info,
			Wishlist:     su.wishlist,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			log.Fatalf("encode document for %s: %v", su.id, err)
		}

		_, err = pool.Exec(ctx, `
			INSERT INTO user_docs (id, doc, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`,
			su.id, raw,
		)
		if err != nil {
			log.Fatalf("insert user %s: %v", su.id, err)
		}
		log.Printf("seeded user %s", su.id)
	}

	log.Printf("done: %d users", len(seedUsers))
}
