package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/q-lng/Christmas-Community/internal/auth"
	"github.com/q-lng/Christmas-Community/internal/domain"
	filememory "github.com/q-lng/Christmas-Community/internal/storage/memory"
	"github.com/q-lng/Christmas-Community/internal/store/memory"
	apperrors "github.com/q-lng/Christmas-Community/pkg/errors"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	// Low cost keeps the test suite fast.
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newUserFixture(t *testing.T, users ...*domain.User) (*UserService, *memory.Store, *filememory.Storage, *recordingPublisher) {
	t.Helper()
	s := memory.New()
	s.Seed(users...)
	files := filememory.New()
	pub := &recordingPublisher{}
	tokens := auth.NewJWTManager("test-secret-at-least-32-chars-long!!", "wishlist-service", time.Hour)
	svc := NewUserService(s, tokens, files, pub, slog.New(slog.DiscardHandler), 1024)
	return svc, s, files, pub
}

func TestLogin_Success(t *testing.T) {
	svc, _, _, _ := newUserFixture(t, &domain.User{
		ID:           "alice",
		PasswordHash: hashPassword(t, "correct horse"),
	})

	result, err := svc.Login(context.Background(), "alice", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.True(t, result.ExpiresAt.After(time.Now()))
}

func TestLogin_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	svc, _, _, _ := newUserFixture(t, &domain.User{
		ID:           "alice",
		PasswordHash: hashPassword(t, "correct horse"),
	})

	_, wrongPass := svc.Login(context.Background(), "alice", "wrong")
	_, unknownUser := svc.Login(context.Background(), "nobody", "whatever")

	require.Error(t, wrongPass)
	require.Error(t, unknownUser)
	assert.True(t, errors.Is(wrongPass, apperrors.ErrUnauthorized))
	assert.Equal(t, wrongPass.Error(), unknownUser.Error())
}

func TestUpdateInfo_DropsUnknownKeysKeepsExisting(t *testing.T) {
	svc, s, _, pub := newUserFixture(t, &domain.User{
		ID:   "alice",
		Info: map[string]string{"hatSize": "M"},
	})

	updated, err := svc.UpdateInfo(context.Background(), "alice", map[string]string{
		"shoeSize": "42",
		"isAdmin":  "true",
	})
	require.NoError(t, err)
	assert.Equal(t, "42", updated.Info["shoeSize"])
	assert.Equal(t, "M", updated.Info["hatSize"])
	assert.NotContains(t, updated.Info, "isAdmin")

	stored, err := s.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "42", stored.Info["shoeSize"])

	require.Len(t, pub.profile, 1)
	assert.Equal(t, []string{"shoeSize"}, pub.profile[0].data.Fields)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, s, _, _ := newUserFixture(t, &domain.User{
		ID:           "alice",
		PasswordHash: hashPassword(t, "old password"),
	})

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "alice", "wrong", "new password 123")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run("too short", func(t *testing.T) {
		err := svc.ChangePassword(ctx, "alice", "old password", "short")
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("success", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, "alice", "old password", "new password 123"))

		stored, err := s.Get(ctx, "alice")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(stored.PasswordHash), []byte("new password 123")))
	})
}

func TestUploadProfilePicture(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects unsupported extension", func(t *testing.T) {
		svc, _, _, _ := newUserFixture(t, &domain.User{ID: "alice"})

		_, err := svc.UploadProfilePicture(ctx, "alice", "avatar.gif", strings.NewReader("gif"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("rejects oversized upload", func(t *testing.T) {
		svc, _, _, _ := newUserFixture(t, &domain.User{ID: "alice"})

		big := strings.Repeat("x", 2048)
		_, err := svc.UploadProfilePicture(ctx, "alice", "avatar.png", strings.NewReader(big))
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("stores file and replaces old one", func(t *testing.T) {
		svc, s, files, _ := newUserFixture(t, &domain.User{ID: "alice"})

		first, err := svc.UploadProfilePicture(ctx, "alice", "avatar.png", strings.NewReader("v1"))
		require.NoError(t, err)
		require.NotNil(t, first.ProfilePicture)
		firstKey := first.ProfilePicture.File
		_, ok := files.Get(firstKey)
		assert.True(t, ok)

		second, err := svc.UploadProfilePicture(ctx, "alice", "avatar.jpg", strings.NewReader("v2"))
		require.NoError(t, err)
		require.NotNil(t, second.ProfilePicture)
		assert.NotEqual(t, firstKey, second.ProfilePicture.File)

		// Old file is gone, new one readable, document updated.
		_, ok = files.Get(firstKey)
		assert.False(t, ok)
		data, ok := files.Get(second.ProfilePicture.File)
		require.True(t, ok)
		assert.Equal(t, "v2", string(data))

		stored, err := s.Get(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, stored.ProfilePicture)
		assert.Equal(t, second.ProfilePicture.File, stored.ProfilePicture.File)
	})
}
