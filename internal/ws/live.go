package ws

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/fathima-sithara/messenger-backend/internal/events"
	"github.com/fathima-sithara/messenger-backend/internal/models"
	"github.com/fathima-sithara/messenger-backend/internal/repository"
)

const snapshotTimeout = 5 * time.Second

// ChatFrame carries a full chat document to subscribers.
type ChatFrame struct {
	Type string       `json:"type"`
	Chat *models.Chat `json:"chat"`
}

// MessagesFrame carries the full ordered message list of a chat.
type MessagesFrame struct {
	Type     string           `json:"type"`
	ChatID   string           `json:"chat_id"`
	Messages []models.Message `json:"messages"`
}

// Live turns mutation events into fresh snapshots for chat subscribers.
// Every event triggers a re-read of the affected documents; documents that
// fail validation are dropped instead of being delivered half-formed.
type Live struct {
	hub      *Hub
	chats    repository.ChatRepository
	messages repository.MessageRepository
	log      *zap.SugaredLogger
}

func NewLive(hub *Hub, chats repository.ChatRepository, messages repository.MessageRepository, log *zap.SugaredLogger) *Live {
	return &Live{hub: hub, chats: chats, messages: messages, log: log}
}

// Run consumes mutation events until ctx is cancelled.
func (l *Live) Run(ctx context.Context, in <-chan events.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-in:
			if !ok {
				return
			}
			l.handle(ctx, ev)
		}
	}
}

func (l *Live) handle(ctx context.Context, ev events.Event) {
	if ev.ChatID == "" {
		return
	}
	if l.hub.Subscribers(ev.ChatID) == 0 {
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	chat, msgs, err := l.snapshot(opCtx, ev.ChatID)
	if err != nil {
		l.log.Warnw("snapshot after event failed", "chat", ev.ChatID, "kind", ev.Kind, "err", err)
		return
	}
	l.hub.Broadcast(ev.ChatID, ChatFrame{Type: "chat", Chat: chat})

	switch ev.Kind {
	case events.MessageSent, events.MessageEdited, events.MessageDeleted:
		l.hub.Broadcast(ev.ChatID, MessagesFrame{Type: "messages", ChatID: ev.ChatID, Messages: msgs})
	}
}

// SendSnapshot pushes the current state to a single client, used right after
// it subscribes so it does not wait for the next mutation.
func (l *Live) SendSnapshot(chatID string, c *Client) {
	opCtx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	chat, msgs, err := l.snapshot(opCtx, chatID)
	if err != nil {
		l.log.Warnw("initial snapshot failed", "chat", chatID, "err", err)
		return
	}
	select {
	case c.send <- ChatFrame{Type: "chat", Chat: chat}:
	default:
	}
	select {
	case c.send <- MessagesFrame{Type: "messages", ChatID: chatID, Messages: msgs}:
	default:
	}
}

func (l *Live) snapshot(ctx context.Context, chatID string) (*models.Chat, []models.Message, error) {
	chat, err := l.chats.GetChat(ctx, chatID)
	if err != nil {
		return nil, nil, err
	}
	if err := chat.Validate(); err != nil {
		return nil, nil, err
	}
	all, err := l.messages.MessagesForChat(ctx, chatID)
	if err != nil {
		return nil, nil, err
	}
	msgs := make([]models.Message, 0, len(all))
	for i := range all {
		if err := all[i].Validate(); err != nil {
			l.log.Warnw("dropping invalid message from snapshot", "chat", chatID, "message", all[i].ID, "err", err)
			continue
		}
		msgs = append(msgs, all[i])
	}
	return chat, msgs, nil
}
