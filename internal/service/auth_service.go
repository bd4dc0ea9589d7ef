package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fathima-sithara/messenger-backend/internal/apperrors"
	"github.com/fathima-sithara/messenger-backend/internal/auth"
	"github.com/fathima-sithara/messenger-backend/internal/models"
	"github.com/fathima-sithara/messenger-backend/internal/repository"
	"github.com/fathima-sithara/messenger-backend/internal/utils"
)

const defaultStatusMessage = "Hey there! I am using Messenger."

// PresenceCache mirrors online/last-seen flips into a fast store.
type PresenceCache interface {
	SetPresence(ctx context.Context, userID string, online bool) error
	SetLastSeen(ctx context.Context, userID string, at time.Time) error
}

// AuthService wraps the identity flow: phone+password sign-in against a
// synthetic email, profile document creation on first sign-up, and presence
// flips on sign-in/out. The authenticated user travels as an explicit value,
// never a process-wide global.
type AuthService struct {
	users    repository.UserRepository
	presence PresenceCache
	tokens   *auth.Manager
	domain   string
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewAuthService(users repository.UserRepository, presence PresenceCache, tokens *auth.Manager, emailDomain string, log *zap.SugaredLogger) *AuthService {
	return &AuthService{users: users, presence: presence, tokens: tokens, domain: emailDomain, log: log, now: time.Now}
}

type Session struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func (s *AuthService) SignUp(ctx context.Context, phone, password, displayName string) (*Session, error) {
	normalized := utils.NormalizePhone(phone)
	if normalized == "" {
		return nil, fmt.Errorf("phone required: %w", apperrors.ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password too short: %w", apperrors.ErrValidation)
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = phone
	}

	email := utils.PhoneToEmail(phone, s.domain)
	if _, err := s.users.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("phone already registered: %w", apperrors.ErrAlreadyExists)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &models.User{
		ID:              primitive.NewObjectID().Hex(),
		Phone:           strings.TrimSpace(phone),
		PhoneNormalized: normalized,
		Email:           email,
		DisplayName:     displayName,
		PasswordHash:    string(hash),
		StatusMessage:   defaultStatusMessage,
		Online:          true,
		LastSeen:        &now,
		CreatedAt:       now,
	}
	if err := s.users.InsertUser(ctx, user); err != nil {
		return nil, err
	}
	s.mirrorPresence(ctx, user.ID, true, now)

	return s.session(user)
}

func (s *AuthService) SignIn(ctx context.Context, phone, password string) (*Session, error) {
	email := utils.PhoneToEmail(phone, s.domain)
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.ErrUnauthorized
	}

	now := s.now()
	if err := s.users.SetPresence(ctx, user.ID, true, now); err != nil {
		return nil, err
	}
	s.mirrorPresence(ctx, user.ID, true, now)
	user.Online = true
	user.LastSeen = &now

	return s.session(user)
}

func (s *AuthService) SignOut(ctx context.Context, userID string) error {
	now := s.now()
	if err := s.users.SetPresence(ctx, userID, false, now); err != nil {
		return err
	}
	s.mirrorPresence(ctx, userID, false, now)
	return nil
}

func (s *AuthService) session(user *models.User) (*Session, error) {
	token, exp, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) mirrorPresence(ctx context.Context, userID string, online bool, at time.Time) {
	if s.presence == nil {
		return
	}
	if err := s.presence.SetPresence(ctx, userID, online); err != nil {
		s.log.Warnw("presence cache", "user", userID, "err", err)
	}
	if err := s.presence.SetLastSeen(ctx, userID, at); err != nil {
		s.log.Warnw("presence cache", "user", userID, "err", err)
	}
}
