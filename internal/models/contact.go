package models

import "time"

// Contact is a per-owner personalization record over another user. Deleting
// it leaves the underlying user document and chat history untouched.
type Contact struct {
	ID              string    `bson:"_id" json:"id"`
	OwnerID         string    `bson:"owner_id" json:"owner_id"`
	ContactUserID   string    `bson:"contact_user_id" json:"contact_user_id"`
	DisplayName     string    `bson:"display_name" json:"display_name"`
	Phone           string    `bson:"phone" json:"phone"`
	PhoneNormalized string    `bson:"phone_normalized" json:"phone_normalized"`
	AvatarURL       string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	IsFavorite      bool      `bson:"is_favorite" json:"is_favorite"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
}

type JoinRequest struct {
	ID          string    `bson:"_id" json:"id"`
	ChatID      string    `bson:"chat_id" json:"chat_id"`
	RequesterID string    `bson:"requester_id" json:"requester_id"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

type Reminder struct {
	ID                      string    `bson:"_id" json:"id"`
	OwnerID                 string    `bson:"owner_id" json:"owner_id"`
	ChatID                  string    `bson:"chat_id" json:"chat_id"`
	MessageID               string    `bson:"message_id" json:"message_id"`
	At                      time.Time `bson:"at" json:"at"`
	ScheduledNotificationID string    `bson:"scheduled_notification_id" json:"scheduled_notification_id"`
	CreatedAt               time.Time `bson:"created_at" json:"created_at"`
}
