package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event kinds carried on the chat-events topic. Each one names a chat whose
// subscribers should receive a fresh snapshot.
const (
	MessageSent       = "message_sent"
	MessageEdited     = "message_edited"
	MessageDeleted    = "message_deleted"
	ChatUpdated       = "chat_updated"
	TypingChanged     = "typing_changed"
	MembershipChanged = "membership_changed"
)

type Event struct {
	Kind      string    `json:"kind"`
	ChatID    string    `json:"chat_id"`
	ActorID   string    `json:"actor_id,omitempty"`
	MessageID string    `json:"message_id,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher is the write side of the event bus; Kafka in production, a
// recorder in tests.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

func (e Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

func Unmarshal(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}
