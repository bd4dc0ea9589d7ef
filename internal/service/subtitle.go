package service

import (
	"fmt"
	"time"

	"github.com/fathima-sithara/messenger-backend/internal/models"
)

// Pure read-side derivations for the chat header and the chats-list rows.
// They operate on already-loaded snapshots and never touch storage.

func typingString(mode models.TypingMode) string {
	switch mode {
	case models.TypingAudio:
		return "recording a voice…"
	case models.TypingPhoto:
		return "choosing a photo…"
	default:
		return "typing…"
	}
}

// Presence is the slice of the counterpart's profile the header subtitle
// falls back to when nobody is typing.
type Presence struct {
	Online   bool
	LastSeen *time.Time
}

// ChatSubtitle derives the chat-screen header subtitle: typing signal first,
// then presence for direct chats, then a participant count for groups.
func ChatSubtitle(chat *models.Chat, viewerID string, counterpart *Presence) string {
	ts := chat.TypingStates
	legacy := chat.TypingUserIDs

	switch chat.Type {
	case models.ChatDirect:
		otherID := chat.CounterpartID(viewerID)
		if otherID == "" {
			// self-chat: same logic against the viewer's own flag
			if mode, ok := ts[viewerID]; ok {
				return typingString(mode)
			}
			if containsID(legacy, viewerID) {
				return typingString(models.TypingText)
			}
			return ""
		}
		if mode, ok := ts[otherID]; ok {
			return typingString(mode)
		}
		if containsID(legacy, otherID) {
			return "typing…"
		}
	case models.ChatGroup:
		var active []models.TypingMode
		for _, id := range chat.MemberIDs {
			if id == viewerID {
				continue
			}
			if mode, ok := ts[id]; ok {
				active = append(active, mode)
			}
		}
		if len(active) > 1 {
			return "Several people are typing…"
		}
		if len(active) == 1 {
			return typingString(active[0])
		}
		legacyOthers := 0
		for _, id := range legacy {
			if id != viewerID {
				legacyOthers++
			}
		}
		if legacyOthers > 1 {
			return "Several people are typing…"
		}
		if legacyOthers == 1 {
			return "Someone is typing…"
		}
		return fmt.Sprintf("%d participants", len(chat.MemberIDs))
	}

	if counterpart != nil {
		if counterpart.Online {
			return "online"
		}
		if counterpart.LastSeen != nil {
			return "last seen at " + counterpart.LastSeen.Format("Jan 2, 2006 15:04")
		}
	}
	return ""
}

// ListSubtitle derives the chats-list row subtitle: typing signal first, then
// the cached last message ("You: "-prefixed when the viewer sent it), then
// the empty-chat placeholder.
func ListSubtitle(chat *models.Chat, viewerID string) string {
	ts := chat.TypingStates
	legacy := chat.TypingUserIDs

	if chat.Type == models.ChatDirect {
		otherID := chat.CounterpartID(viewerID)
		if otherID != "" {
			if mode, ok := ts[otherID]; ok {
				return typingString(mode)
			}
			if containsID(legacy, otherID) {
				return "typing…"
			}
		}
	} else {
		var active []models.TypingMode
		for _, id := range chat.MemberIDs {
			if id == viewerID {
				continue
			}
			if mode, ok := ts[id]; ok {
				active = append(active, mode)
			}
		}
		if len(active) > 1 {
			return "Several people are typing…"
		}
		if len(active) == 1 {
			return typingString(active[0])
		}
		legacyOthers := 0
		for _, id := range legacy {
			if id != viewerID {
				legacyOthers++
			}
		}
		if legacyOthers > 1 {
			return "Several people are typing…"
		}
		if legacyOthers == 1 {
			return "Someone is typing…"
		}
	}

	if chat.LastMessageText == "" {
		return "No messages yet"
	}
	if chat.LastMessageSenderID == viewerID {
		return "You: " + chat.LastMessageText
	}
	return chat.LastMessageText
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
