package models

import "time"

type User struct {
	ID                 string     `bson:"_id" json:"id"`
	Phone              string     `bson:"phone" json:"phone"`
	PhoneNormalized    string     `bson:"phone_normalized" json:"phone_normalized"`
	Email              string     `bson:"email" json:"email"`
	DisplayName        string     `bson:"display_name" json:"display_name"`
	PasswordHash       string     `bson:"password_hash" json:"-"`
	AvatarURL          string     `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	StatusMessage      string     `bson:"status_message,omitempty" json:"status_message,omitempty"`
	Online             bool       `bson:"online" json:"online"`
	LastSeen           *time.Time `bson:"last_seen,omitempty" json:"last_seen,omitempty"`
	FavoriteChatIDs    []string   `bson:"favorite_chat_ids,omitempty" json:"favorite_chat_ids,omitempty"`
	FavoriteContactIDs []string   `bson:"favorite_contact_ids,omitempty" json:"favorite_contact_ids,omitempty"`
	CreatedAt          time.Time  `bson:"created_at" json:"created_at"`
}
