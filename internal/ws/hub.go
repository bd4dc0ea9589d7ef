package ws

import (
	"sync"

	"go.uber.org/zap"
)

// Hub tracks which clients subscribe to which chats and fans payloads out to
// them. A client with a full send buffer is skipped rather than blocking the
// broadcaster; the next snapshot supersedes the missed one anyway.
type Hub struct {
	mu    sync.RWMutex
	chats map[string]map[*Client]struct{}
	log   *zap.SugaredLogger
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{chats: make(map[string]map[*Client]struct{}), log: log}
}

func (h *Hub) Subscribe(chatID string, c *Client) {
	h.mu.Lock()
	if _, ok := h.chats[chatID]; !ok {
		h.chats[chatID] = make(map[*Client]struct{})
	}
	h.chats[chatID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unsubscribe(chatID string, c *Client) {
	h.mu.Lock()
	if subs, ok := h.chats[chatID]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.chats, chatID)
		}
	}
	h.mu.Unlock()
}

// Drop removes the client from every chat it subscribed to.
func (h *Hub) Drop(c *Client) {
	h.mu.Lock()
	for chatID, subs := range h.chats {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.chats, chatID)
		}
	}
	h.mu.Unlock()
}

// Broadcast delivers payload to every subscriber of chatID.
func (h *Hub) Broadcast(chatID string, payload any) {
	h.mu.RLock()
	subs := h.chats[chatID]
	targets := make([]*Client, 0, len(subs))
	for c := range subs {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		select {
		case c.send <- payload:
		default:
			h.log.Warnw("slow ws client, dropping frame", "user", c.userID, "chat", chatID)
		}
	}
}

// Subscribers reports how many clients watch chatID.
func (h *Hub) Subscribers(chatID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.chats[chatID])
}
