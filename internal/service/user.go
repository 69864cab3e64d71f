package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/q-lng/Christmas-Community/internal/auth"
	"github.com/q-lng/Christmas-Community/internal/domain"
	"github.com/q-lng/Christmas-Community/internal/event"
	"github.com/q-lng/Christmas-Community/internal/storage"
	"github.com/q-lng/Christmas-Community/internal/store"
	apperrors "github.com/q-lng/Christmas-Community/pkg/errors"
)

const bcryptCost = 12

var allowedPictureExts = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// UserService handles login and profile management for user documents.
type UserService struct {
	store   store.DocumentStore
	tokens  *auth.JWTManager
	files   storage.Storage
	events  event.Publisher
	logger  *slog.Logger
	maxSize int64
}

// NewUserService creates a user service. maxUploadSize bounds profile
// picture uploads in bytes.
func NewUserService(s store.DocumentStore, tokens *auth.JWTManager, files storage.Storage, events event.Publisher, log *slog.Logger, maxUploadSize int64) *UserService {
	return &UserService{
		store:   s,
		tokens:  tokens,
		files:   files,
		events:  events,
		logger:  log,
		maxSize: maxUploadSize,
	}
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Login verifies credentials and issues an access token. Unknown users and
// wrong passwords both map to the same unauthorized error.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.store.Get(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("invalid username or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("invalid username or password")
	}

	token, expiresAt, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))

	return &LoginResult{AccessToken: token, ExpiresAt: expiresAt}, nil
}

// GetProfile returns the user's own profile document.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.Get(ctx, userID)
}

// UpdateInfo merges allow-listed sizing attributes into the user's profile.
// Keys outside the allow-list are dropped silently; existing keys not present
// in values are left untouched.
func (s *UserService) UpdateInfo(ctx context.Context, userID string, values map[string]string) (*domain.User, error) {
	user, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.SetInfo(values)
	if err := s.store.Put(ctx, user); err != nil {
		return nil, err
	}

	s.events.ProfileUpdated(ctx, event.TypeProfileInfoUpdated, event.ProfileUpdatedData{
		UserID: userID,
		Fields: infoFields(values),
	})

	return user, nil
}

// ChangePassword verifies the old password and stores a new bcrypt hash.
// The document is re-read so a stale in-flight profile view cannot clobber
// other fields.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.InvalidInput("new password must be at least 8 characters")
	}

	user, err := s.store.Get(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return apperrors.Unauthorized("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return apperrors.Internal(err)
	}

	user.PasswordHash = string(hash)
	if err := s.store.Put(ctx, user); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "password changed", slog.String("user_id", userID))
	s.events.ProfileUpdated(ctx, event.TypePasswordChanged, event.ProfileUpdatedData{UserID: userID})

	return nil
}

// UploadProfilePicture validates and stores a new profile picture, replacing
// any previous one. The old file is deleted best-effort after the document
// update succeeds.
func (s *UserService) UploadProfilePicture(ctx context.Context, userID, filename string, content io.Reader) (*domain.User, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := allowedPictureExts[ext]
	if !ok {
		return nil, apperrors.InvalidInput("profile picture must be a png or jpeg file")
	}

	user, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s-%d%s", userID, time.Now().UnixNano(), ext)
	limited := io.LimitReader(content, s.maxSize+1)

	var buf bytes.Buffer
	n, err := io.Copy(&buf, limited)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("read upload: %w", err))
	}
	if n > s.maxSize {
		return nil, apperrors.InvalidInput(fmt.Sprintf("profile picture exceeds the %d byte limit", s.maxSize))
	}

	if err := s.files.Upload(ctx, key, contentType, &buf); err != nil {
		return nil, apperrors.Internal(fmt.Errorf("store upload: %w", err))
	}

	old := user.ProfilePicture
	user.ProfilePicture = &domain.ProfilePicture{
		File: key,
		URL:  s.files.URL(key),
	}

	if err := s.store.Put(ctx, user); err != nil {
		// Document update failed; drop the orphaned upload.
		if delErr := s.files.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to clean up orphaned upload",
				slog.String("key", key),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, err
	}

	if old != nil && old.File != "" {
		if err := s.files.Delete(ctx, old.File); err != nil {
			s.logger.WarnContext(ctx, "failed to delete old profile picture",
				slog.String("key", old.File),
				slog.String("error", err.Error()),
			)
		}
	}

	s.events.ProfileUpdated(ctx, event.TypeProfilePictureUpdated, event.ProfileUpdatedData{UserID: userID})

	return user, nil
}

func infoFields(values map[string]string) []string {
	fields := make([]string, 0, len(values))
	for k := range values {
		if domain.IsInfoKey(k) {
			fields = append(fields, k)
		}
	}
	return fields
}
