package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fathima-sithara/messenger-backend/internal/apperrors"
	"github.com/fathima-sithara/messenger-backend/internal/models"
	"github.com/fathima-sithara/messenger-backend/internal/repository"
	"github.com/fathima-sithara/messenger-backend/internal/storage"
)

// AvatarStore is the object-storage contract for profile images.
type AvatarStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) (string, error)
}

type ProfileService struct {
	users   repository.UserRepository
	avatars AvatarStore
}

func NewProfileService(users repository.UserRepository, avatars AvatarStore) *ProfileService {
	return &ProfileService{users: users, avatars: avatars}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUser(ctx, userID)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, displayName, statusMessage *string) (*models.User, error) {
	if displayName != nil && strings.TrimSpace(*displayName) == "" {
		return nil, fmt.Errorf("display name cannot be empty: %w", apperrors.ErrValidation)
	}
	if err := s.users.UpdateProfile(ctx, userID, displayName, statusMessage); err != nil {
		return nil, err
	}
	return s.users.GetUser(ctx, userID)
}

// UploadAvatar downscales the image, stores it under <userId>-<timestamp>.<ext>
// and persists the resulting URL on the user document.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID, fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty image: %w", apperrors.ErrValidation)
	}

	processed, contentType, err := storage.ProcessAvatar(data)
	if err != nil {
		return "", fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
	}

	// re-encoded as JPEG regardless of the uploaded extension
	key := storage.AvatarKey(userID, "jpg")
	url, err := s.avatars.Upload(ctx, key, contentType, processed)
	if err != nil {
		return "", err
	}
	if err := s.users.SetAvatarURL(ctx, userID, url); err != nil {
		return "", err
	}
	return url, nil
}
