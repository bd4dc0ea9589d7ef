package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fathima-sithara/messenger-backend/internal/apperrors"
	"github.com/fathima-sithara/messenger-backend/internal/models"
	"github.com/fathima-sithara/messenger-backend/internal/repository"
	"github.com/fathima-sithara/messenger-backend/internal/utils"
)

// ContactService manages the per-user address book. Contact records are pure
// personalization; removing one never touches the referenced user or any chat
// history.
type ContactService struct {
	contacts repository.ContactRepository
	users    repository.UserRepository
	now      func() time.Time
}

func NewContactService(contacts repository.ContactRepository, users repository.UserRepository) *ContactService {
	return &ContactService{contacts: contacts, users: users, now: time.Now}
}

// AddContact resolves a global user by normalized phone and stores a
// denormalized snapshot with an optional local override name. Self-adds and
// duplicates are rejected.
func (s *ContactService) AddContact(ctx context.Context, owner *models.User, rawPhone, localName string) (*models.Contact, error) {
	rawPhone = strings.TrimSpace(rawPhone)
	if rawPhone == "" {
		return nil, fmt.Errorf("phone required: %w", apperrors.ErrValidation)
	}

	normalized := utils.NormalizePhone(rawPhone)
	if normalized == utils.NormalizePhone(owner.Phone) {
		return nil, fmt.Errorf("cannot add yourself: %w", apperrors.ErrValidation)
	}

	target, err := s.users.FindUserByPhoneNormalized(ctx, normalized)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("no user with phone %s: %w", normalized, apperrors.ErrNotFound)
		}
		return nil, err
	}

	if _, err := s.contacts.GetContact(ctx, owner.ID, target.ID); err == nil {
		return nil, fmt.Errorf("contact %s: %w", target.ID, apperrors.ErrAlreadyExists)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	displayName := strings.TrimSpace(localName)
	if displayName == "" {
		displayName = target.DisplayName
	}
	if displayName == "" {
		displayName = rawPhone
	}

	contact := &models.Contact{
		ID:              primitive.NewObjectID().Hex(),
		OwnerID:         owner.ID,
		ContactUserID:   target.ID,
		DisplayName:     displayName,
		Phone:           target.Phone,
		PhoneNormalized: normalized,
		AvatarURL:       target.AvatarURL,
		CreatedAt:       s.now(),
	}
	if err := s.contacts.InsertContact(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) Contacts(ctx context.Context, ownerID string) ([]models.Contact, error) {
	return s.contacts.ContactsForOwner(ctx, ownerID)
}

func (s *ContactService) RenameContact(ctx context.Context, ownerID, contactUserID, displayName string) error {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return fmt.Errorf("name required: %w", apperrors.ErrValidation)
	}
	if _, err := s.contacts.GetContact(ctx, ownerID, contactUserID); err != nil {
		return err
	}
	return s.contacts.RenameContact(ctx, ownerID, contactUserID, displayName)
}

// ToggleFavorite flips the favorite flag and returns the new state.
func (s *ContactService) ToggleFavorite(ctx context.Context, ownerID, contactUserID string) (bool, error) {
	contact, err := s.contacts.GetContact(ctx, ownerID, contactUserID)
	if err != nil {
		return false, err
	}
	next := !contact.IsFavorite
	if err := s.contacts.SetFavorite(ctx, ownerID, contactUserID, next); err != nil {
		return false, err
	}
	return next, nil
}

func (s *ContactService) RemoveContact(ctx context.Context, ownerID, contactUserID string) error {
	if _, err := s.contacts.GetContact(ctx, ownerID, contactUserID); err != nil {
		return err
	}
	return s.contacts.DeleteContact(ctx, ownerID, contactUserID)
}
