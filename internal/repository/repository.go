package repository

import (
	"context"
	"time"

	"github.com/fathima-sithara/messenger-backend/internal/models"
)

// The service layer talks to storage through these interfaces; tests swap in
// in-memory fakes.

type UserRepository interface {
	InsertUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByPhoneNormalized(ctx context.Context, phone string) (*models.User, error)
	SetPresence(ctx context.Context, id string, online bool, lastSeen time.Time) error
	UpdateProfile(ctx context.Context, id string, displayName, statusMessage *string) error
	SetAvatarURL(ctx context.Context, id, url string) error
}

type ChatRepository interface {
	InsertChat(ctx context.Context, c *models.Chat) error
	GetChat(ctx context.Context, id string) (*models.Chat, error)
	ChatsForUser(ctx context.Context, userID string) ([]models.Chat, error)
	DirectChatsWithMember(ctx context.Context, userID string) ([]models.Chat, error)
	FindChatByInviteCode(ctx context.Context, code string) (*models.Chat, error)

	SetLastMessage(ctx context.Context, chatID, text, senderID string, at *time.Time) error
	ClearLastMessage(ctx context.Context, chatID string) error

	// SetTyping updates the structured typing map and the legacy id set in a
	// single document update; a nil mode removes the entry from both.
	SetTyping(ctx context.Context, chatID, userID string, mode *models.TypingMode) error

	SetMembers(ctx context.Context, chatID string, memberIDs []string, adminID *string) error
	AddMember(ctx context.Context, chatID, userID string) error
	SetAdmin(ctx context.Context, chatID, userID string) error
	SetInvite(ctx context.Context, chatID string, code string, expiresAt *time.Time) error
	SetJoinApproval(ctx context.Context, chatID string, required bool) error
}

type MessageRepository interface {
	InsertMessage(ctx context.Context, m *models.Message) error
	GetMessage(ctx context.Context, chatID, messageID string) (*models.Message, error)
	MessagesForChat(ctx context.Context, chatID string) ([]models.Message, error)
	// LatestMessage returns nil without error when the chat has no messages.
	LatestMessage(ctx context.Context, chatID string) (*models.Message, error)
	UpdateMessageText(ctx context.Context, chatID, messageID, text string, editedAt time.Time) error
	DeleteMessage(ctx context.Context, chatID, messageID string) error
	SetReaction(ctx context.Context, chatID, messageID, userID string, on bool) error
}

type ContactRepository interface {
	InsertContact(ctx context.Context, c *models.Contact) error
	ContactsForOwner(ctx context.Context, ownerID string) ([]models.Contact, error)
	GetContact(ctx context.Context, ownerID, contactUserID string) (*models.Contact, error)
	RenameContact(ctx context.Context, ownerID, contactUserID, displayName string) error
	SetFavorite(ctx context.Context, ownerID, contactUserID string, favorite bool) error
	DeleteContact(ctx context.Context, ownerID, contactUserID string) error
}

type JoinRequestRepository interface {
	InsertRequest(ctx context.Context, r *models.JoinRequest) error
	RequestsForChat(ctx context.Context, chatID string) ([]models.JoinRequest, error)
	GetRequest(ctx context.Context, chatID, requestID string) (*models.JoinRequest, error)
	DeleteRequest(ctx context.Context, chatID, requestID string) error
	DeleteRequestsForChat(ctx context.Context, chatID string) error
}

type ReminderRepository interface {
	InsertReminder(ctx context.Context, r *models.Reminder) error
	RemindersForOwner(ctx context.Context, ownerID string) ([]models.Reminder, error)
	GetReminder(ctx context.Context, ownerID, reminderID string) (*models.Reminder, error)
	DeleteReminder(ctx context.Context, ownerID, reminderID string) error
}
