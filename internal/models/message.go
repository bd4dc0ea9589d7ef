package models

import "time"

type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageVideo MessageType = "video"
	MessageAudio MessageType = "audio"
	MessageFile  MessageType = "file"
)

type Message struct {
	ID       string      `bson:"_id" json:"id"`
	ChatID   string      `bson:"chat_id" json:"chat_id"`
	SenderID string      `bson:"sender_id" json:"sender_id"`
	Type     MessageType `bson:"type" json:"type"`

	Text string `bson:"text,omitempty" json:"text,omitempty"`

	MediaURL  string `bson:"media_url,omitempty" json:"media_url,omitempty"`
	MediaType string `bson:"media_type,omitempty" json:"media_type,omitempty"`
	FileName  string `bson:"file_name,omitempty" json:"file_name,omitempty"`
	FileSize  int64  `bson:"file_size,omitempty" json:"file_size,omitempty"`

	// ReplyToMessageID is a weak reference: the target may be deleted later,
	// readers resolve it against the loaded list and drop the preview when it
	// no longer exists.
	ReplyToMessageID string `bson:"reply_to_message_id,omitempty" json:"reply_to_message_id,omitempty"`

	// EditedAt stays nil until the first edit.
	EditedAt *time.Time `bson:"edited_at,omitempty" json:"edited_at,omitempty"`

	// ReactedBy holds the ids of members who hearted the message.
	ReactedBy []string `bson:"reacted_by,omitempty" json:"reacted_by,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
