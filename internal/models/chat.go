package models

import "time"

type ChatType string

const (
	ChatDirect ChatType = "direct"
	ChatGroup  ChatType = "group"
)

// TypingMode tags what a member is currently composing.
type TypingMode string

const (
	TypingText  TypingMode = "text"
	TypingAudio TypingMode = "audio"
	TypingPhoto TypingMode = "photo"
)

func (m TypingMode) Valid() bool {
	switch m {
	case TypingText, TypingAudio, TypingPhoto:
		return true
	}
	return false
}

type Chat struct {
	ID        string   `bson:"_id" json:"id"`
	Type      ChatType `bson:"type" json:"type"`
	Title     string   `bson:"title,omitempty" json:"title,omitempty"`
	AvatarURL string   `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	MemberIDs []string `bson:"member_ids" json:"member_ids"`
	AdminID   string   `bson:"admin_id,omitempty" json:"admin_id,omitempty"`

	// Denormalized projection of the most recent message. Every writer that
	// sends, edits or deletes a message keeps these in step.
	LastMessageText     string     `bson:"last_message_text,omitempty" json:"last_message_text,omitempty"`
	LastMessageSenderID string     `bson:"last_message_sender_id,omitempty" json:"last_message_sender_id,omitempty"`
	LastMessageAt       *time.Time `bson:"last_message_at,omitempty" json:"last_message_at,omitempty"`

	// TypingStates is the canonical per-member composing state. TypingUserIDs
	// mirrors it as a plain id set for older readers; writers update both in
	// the same document update.
	TypingStates  map[string]TypingMode `bson:"typing_states,omitempty" json:"typing_states,omitempty"`
	TypingUserIDs []string              `bson:"typing_user_ids,omitempty" json:"typing_user_ids,omitempty"`

	// Group invitation state.
	InviteCode           string     `bson:"invite_code,omitempty" json:"invite_code,omitempty"`
	InviteExpiresAt      *time.Time `bson:"invite_expires_at,omitempty" json:"invite_expires_at,omitempty"`
	JoinApprovalRequired bool       `bson:"join_approval_required" json:"join_approval_required"`

	CreatedByID string    `bson:"created_by_id,omitempty" json:"created_by_id,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// IsMember reports whether userID belongs to the chat.
func (c *Chat) IsMember(userID string) bool {
	for _, id := range c.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// CounterpartID returns the other member of a direct chat, or "" for a
// self-chat.
func (c *Chat) CounterpartID(viewerID string) string {
	for _, id := range c.MemberIDs {
		if id != viewerID {
			return id
		}
	}
	return ""
}
