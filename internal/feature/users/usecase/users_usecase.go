// Package usecase implements the business logic for the users feature.
package usecase

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"contact_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user profiles.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// FindByID retrieves a user matching the specified ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdateAvatar stores the user's avatar URL.
	UpdateAvatar(ctx context.Context, id uint, url string) error
}

// AvatarStorage abstracts the object store that holds avatar images.
type AvatarStorage interface {
	// Upload stores the object under key and returns its public URL.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// UsersUsecase provides profile and avatar operations for the current user.
type UsersUsecase struct {
	users   UserRepository
	avatars AvatarStorage
}

// NewUsersUsecase creates a new UsersUsecase.
func NewUsersUsecase(users UserRepository, avatars AvatarStorage) *UsersUsecase {
	return &UsersUsecase{users: users, avatars: avatars}
}

// Profile returns the user's profile.
func (u *UsersUsecase) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateAvatar uploads the image to object storage under a random key and
// persists the resulting URL on the user. The original filename only
// contributes its extension.
func (u *UsersUsecase) UpdateAvatar(ctx context.Context, userID uint, filename, contentType string, body io.Reader) (string, error) {
	if u.avatars == nil {
		return "", fmt.Errorf("avatar storage is not configured")
	}

	key := AvatarKey(filename)
	url, err := u.avatars.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := u.users.UpdateAvatar(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}

// AvatarKey builds a collision-free object key, keeping the upload's
// extension so the store serves a sensible content type.
func AvatarKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("avatars/%s%s", uuid.New(), ext)
}
