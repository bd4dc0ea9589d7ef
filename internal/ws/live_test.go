package ws

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fathima-sithara/messenger-backend/internal/events"
	"github.com/fathima-sithara/messenger-backend/internal/models"
)

// stubStore serves fixed documents through the repository interfaces the live
// layer reads from.
type stubStore struct {
	chat *models.Chat
	msgs []models.Message
}

func (s *stubStore) InsertChat(context.Context, *models.Chat) error { return nil }
func (s *stubStore) GetChat(context.Context, string) (*models.Chat, error) {
	return s.chat, nil
}
func (s *stubStore) ChatsForUser(context.Context, string) ([]models.Chat, error) { return nil, nil }
func (s *stubStore) DirectChatsWithMember(context.Context, string) ([]models.Chat, error) {
	return nil, nil
}
func (s *stubStore) FindChatByInviteCode(context.Context, string) (*models.Chat, error) {
	return nil, nil
}
func (s *stubStore) SetLastMessage(context.Context, string, string, string, *time.Time) error {
	return nil
}
func (s *stubStore) ClearLastMessage(context.Context, string) error { return nil }
func (s *stubStore) SetTyping(context.Context, string, string, *models.TypingMode) error {
	return nil
}
func (s *stubStore) SetMembers(context.Context, string, []string, *string) error { return nil }
func (s *stubStore) AddMember(context.Context, string, string) error { return nil }
func (s *stubStore) SetAdmin(context.Context, string, string) error { return nil }
func (s *stubStore) SetInvite(context.Context, string, string, *time.Time) error { return nil }
func (s *stubStore) SetJoinApproval(context.Context, string, bool) error { return nil }

func (s *stubStore) InsertMessage(context.Context, *models.Message) error { return nil }
func (s *stubStore) GetMessage(context.Context, string, string) (*models.Message, error) {
	return nil, nil
}
func (s *stubStore) MessagesForChat(context.Context, string) ([]models.Message, error) {
	return s.msgs, nil
}
func (s *stubStore) LatestMessage(context.Context, string) (*models.Message, error) {
	return nil, nil
}
func (s *stubStore) UpdateMessageText(context.Context, string, string, string, time.Time) error {
	return nil
}
func (s *stubStore) DeleteMessage(context.Context, string, string) error { return nil }
func (s *stubStore) SetReaction(context.Context, string, string, string, bool) error {
	return nil
}

func TestLiveBroadcastsSnapshotsOnEvent(t *testing.T) {
	store := &stubStore{
		chat: &models.Chat{ID: "c1", Type: models.ChatDirect, MemberIDs: []string{"alice", "bob"}},
		msgs: []models.Message{
			{ID: "m1", ChatID: "c1", SenderID: "alice", Type: models.MessageText, Text: "hi"},
		},
	}
	hub := NewHub(zap.NewNop().Sugar())
	live := NewLive(hub, store, store, zap.NewNop().Sugar())

	c := testClient(8)
	hub.Subscribe("c1", c)

	live.handle(context.Background(), events.Event{Kind: events.MessageSent, ChatID: "c1"})

	chatFrame, ok := (<-c.send).(ChatFrame)
	require.True(t, ok)
	assert.Equal(t, "chat", chatFrame.Type)
	assert.Equal(t, "c1", chatFrame.Chat.ID)

	msgFrame, ok := (<-c.send).(MessagesFrame)
	require.True(t, ok)
	assert.Equal(t, "messages", msgFrame.Type)
	require.Len(t, msgFrame.Messages, 1)
}

func TestLiveTypingEventSendsChatOnly(t *testing.T) {
	store := &stubStore{
		chat: &models.Chat{ID: "c1", Type: models.ChatDirect, MemberIDs: []string{"alice", "bob"}},
	}
	hub := NewHub(zap.NewNop().Sugar())
	live := NewLive(hub, store, store, zap.NewNop().Sugar())

	c := testClient(8)
	hub.Subscribe("c1", c)

	live.handle(context.Background(), events.Event{Kind: events.TypingChanged, ChatID: "c1"})

	require.Len(t, c.send, 1)
	_, ok := (<-c.send).(ChatFrame)
	assert.True(t, ok)
}

func TestLiveDropsInvalidChat(t *testing.T) {
	// unknown chat type must not reach subscribers half-decoded
	store := &stubStore{
		chat: &models.Chat{ID: "c1", Type: "broadcast", MemberIDs: []string{"alice"}},
	}
	hub := NewHub(zap.NewNop().Sugar())
	live := NewLive(hub, store, store, zap.NewNop().Sugar())

	c := testClient(8)
	hub.Subscribe("c1", c)

	live.handle(context.Background(), events.Event{Kind: events.MessageSent, ChatID: "c1"})
	assert.Empty(t, c.send)
}

func TestLiveFiltersInvalidMessages(t *testing.T) {
	store := &stubStore{
		chat: &models.Chat{ID: "c1", Type: models.ChatDirect, MemberIDs: []string{"alice", "bob"}},
		msgs: []models.Message{
			{ID: "m1", ChatID: "c1", SenderID: "alice", Type: models.MessageText, Text: "ok"},
			{ID: "m2", ChatID: "c1", SenderID: "", Type: models.MessageText, Text: "no sender"},
		},
	}
	hub := NewHub(zap.NewNop().Sugar())
	live := NewLive(hub, store, store, zap.NewNop().Sugar())

	c := testClient(8)
	hub.Subscribe("c1", c)

	live.handle(context.Background(), events.Event{Kind: events.MessageSent, ChatID: "c1"})

	<-c.send // chat frame
	msgFrame := (<-c.send).(MessagesFrame)
	require.Len(t, msgFrame.Messages, 1)
	assert.Equal(t, "m1", msgFrame.Messages[0].ID)
}

func TestLiveSkipsChatsWithoutSubscribers(t *testing.T) {
	store := &stubStore{}
	hub := NewHub(zap.NewNop().Sugar())
	live := NewLive(hub, store, store, zap.NewNop().Sugar())

	// GetChat would return a nil chat; without subscribers it is never called
	live.handle(context.Background(), events.Event{Kind: events.MessageSent, ChatID: "nobody"})
}
