package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/q-lng/Christmas-Community/pkg/errors"
)

func TestJWTManager_GenerateAndValidate(t *testing.T) {
	m := NewJWTManager("test-secret-at-least-32-chars-long!!", "wishlist-service", time.Hour)

	token, expiresAt, err := m.Generate("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.UserID)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "wishlist-service", claims.Issuer)
}

func TestJWTManager_Validate_WrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret-one-at-least-32-chars-long!!!", "wishlist-service", time.Hour)
	verifier := NewJWTManager("secret-two-at-least-32-chars-long!!!", "wishlist-service", time.Hour)

	token, _, err := issuer.Generate("alice")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestJWTManager_Validate_Expired(t *testing.T) {
	m := NewJWTManager("test-secret-at-least-32-chars-long!!", "wishlist-service", -time.Minute)

	token, _, err := m.Generate("alice")
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestJWTManager_Validate_WrongIssuer(t *testing.T) {
	issuer := NewJWTManager("test-secret-at-least-32-chars-long!!", "some-other-service", time.Hour)
	verifier := NewJWTManager("test-secret-at-least-32-chars-long!!", "wishlist-service", time.Hour)

	token, _, err := issuer.Generate("alice")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestJWTManager_Validate_EmptyUserID(t *testing.T) {
	m := NewJWTManager("test-secret-at-least-32-chars-long!!", "wishlist-service", time.Hour)

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "wishlist-service",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret-at-least-32-chars-long!!"))
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestJWTManager_Validate_Garbage(t *testing.T) {
	m := NewJWTManager("test-secret-at-least-32-chars-long!!", "wishlist-service", time.Hour)

	_, err := m.Validate("not.a.token")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}
