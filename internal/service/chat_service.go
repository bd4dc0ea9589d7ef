package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/fathima-sithara/messenger-backend/internal/apperrors"
	"github.com/fathima-sithara/messenger-backend/internal/events"
	"github.com/fathima-sithara/messenger-backend/internal/models"
	"github.com/fathima-sithara/messenger-backend/internal/repository"
)

// EditWindow is how long after creation the sender may still edit a message.
const EditWindow = 15 * time.Minute

// ChatService owns chat metadata, the ordered message list and every
// user-initiated mutation on them, including last-message cache repair and
// typing advertisement.
type ChatService struct {
	chats    repository.ChatRepository
	messages repository.MessageRepository
	pub      events.Publisher
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewChatService(chats repository.ChatRepository, messages repository.MessageRepository, pub events.Publisher, log *zap.SugaredLogger) *ChatService {
	return &ChatService{chats: chats, messages: messages, pub: pub, log: log, now: time.Now}
}

// OpenDirectChat finds the direct chat between actor and counterpart,
// creating it when none exists. Opening a chat with yourself yields the
// single-member self-chat. Two users racing to open the same pair can still
// create two documents; there is no find-or-create transaction.
func (s *ChatService) OpenDirectChat(ctx context.Context, actorID, counterpartID string) (*models.Chat, error) {
	if counterpartID == "" {
		return nil, fmt.Errorf("counterpart id required: %w", apperrors.ErrValidation)
	}

	existing, err := s.chats.DirectChatsWithMember(ctx, actorID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		c := &existing[i]
		if counterpartID == actorID {
			if len(c.MemberIDs) == 1 {
				return c, nil
			}
			continue
		}
		if c.IsMember(counterpartID) {
			return c, nil
		}
	}

	members := []string{actorID}
	if counterpartID != actorID {
		members = append(members, counterpartID)
	}
	now := s.now()
	chat := &models.Chat{
		ID:          primitive.NewObjectID().Hex(),
		Type:        models.ChatDirect,
		MemberIDs:   members,
		CreatedByID: actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.chats.InsertChat(ctx, chat); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{Kind: events.ChatUpdated, ChatID: chat.ID, ActorID: actorID})
	return chat, nil
}

// CreateGroup creates a group chat with the actor as admin and first member.
func (s *ChatService) CreateGroup(ctx context.Context, actorID, title string, memberIDs []string) (*models.Chat, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("group title required: %w", apperrors.ErrValidation)
	}

	members := []string{actorID}
	seen := map[string]struct{}{actorID: {}}
	for _, id := range memberIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		members = append(members, id)
	}

	now := s.now()
	chat := &models.Chat{
		ID:          primitive.NewObjectID().Hex(),
		Type:        models.ChatGroup,
		Title:       title,
		MemberIDs:   members,
		AdminID:     actorID,
		CreatedByID: actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.chats.InsertChat(ctx, chat); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{Kind: events.ChatUpdated, ChatID: chat.ID, ActorID: actorID})
	return chat, nil
}

func (s *ChatService) GetChat(ctx context.Context, chatID string) (*models.Chat, error) {
	return s.chats.GetChat(ctx, chatID)
}

func (s *ChatService) ChatsForUser(ctx context.Context, userID string) ([]models.Chat, error) {
	return s.chats.ChatsForUser(ctx, userID)
}

func (s *ChatService) Messages(ctx context.Context, chatID string) ([]models.Message, error) {
	return s.messages.MessagesForChat(ctx, chatID)
}

// Send appends a text message. The sender's typing advertisement is cleared
// first, then the message is written with a server-assigned timestamp, then
// the chat's last-message cache and updated_at move forward.
func (s *ChatService) Send(ctx context.Context, chatID, senderID, text, replyToMessageID string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("empty message: %w", apperrors.ErrValidation)
	}

	chat, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.IsMember(senderID) {
		return nil, fmt.Errorf("sender %s is not a member of chat %s: %w", senderID, chatID, apperrors.ErrPermissionDenied)
	}

	if err := s.chats.SetTyping(ctx, chatID, senderID, nil); err != nil {
		// advisory only; the send itself still proceeds
		s.log.Warnw("clear typing before send", "chat", chatID, "err", err)
	}

	now := s.now()
	msg := &models.Message{
		ID:               primitive.NewObjectID().Hex(),
		ChatID:           chatID,
		SenderID:         senderID,
		Type:             models.MessageText,
		Text:             text,
		ReplyToMessageID: replyToMessageID,
		CreatedAt:        now,
	}
	if err := s.messages.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.chats.SetLastMessage(ctx, chatID, text, senderID, &now); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{Kind: events.MessageSent, ChatID: chatID, ActorID: senderID, MessageID: msg.ID})
	return msg, nil
}

// Edit rewrites a message's text. Only the original sender may edit, and only
// within EditWindow of the original creation time no matter how many edits
// happened before. When the edited message is the chat's cached last message
// the cache is refreshed too.
func (s *ChatService) Edit(ctx context.Context, chatID, messageID, actorID, newText string) error {
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return fmt.Errorf("empty message: %w", apperrors.ErrValidation)
	}

	msg, err := s.messages.GetMessage(ctx, chatID, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != actorID {
		return fmt.Errorf("message %s: %w", messageID, apperrors.ErrPermissionDenied)
	}
	now := s.now()
	if now.Sub(msg.CreatedAt) > EditWindow {
		return fmt.Errorf("message %s: %w", messageID, apperrors.ErrWindowExpired)
	}

	if err := s.messages.UpdateMessageText(ctx, chatID, messageID, newText, now); err != nil {
		return err
	}

	latest, err := s.messages.LatestMessage(ctx, chatID)
	if err != nil {
		return err
	}
	if latest != nil && latest.ID == messageID {
		if err := s.chats.SetLastMessage(ctx, chatID, newText, actorID, &now); err != nil {
			return err
		}
	}

	s.publish(ctx, events.Event{Kind: events.MessageEdited, ChatID: chatID, ActorID: actorID, MessageID: messageID})
	return nil
}

// DeleteMessage removes a message and repairs the chat's last-message cache:
// the most recent remaining message takes its place, or the cache is cleared
// when none remain.
func (s *ChatService) DeleteMessage(ctx context.Context, chatID, messageID, actorID string) error {
	msg, err := s.messages.GetMessage(ctx, chatID, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != actorID {
		return fmt.Errorf("message %s: %w", messageID, apperrors.ErrPermissionDenied)
	}

	if err := s.messages.DeleteMessage(ctx, chatID, messageID); err != nil {
		return err
	}

	latest, err := s.messages.LatestMessage(ctx, chatID)
	if err != nil {
		return err
	}
	if latest == nil {
		if err := s.chats.ClearLastMessage(ctx, chatID); err != nil {
			return err
		}
	} else {
		at := latest.CreatedAt
		if err := s.chats.SetLastMessage(ctx, chatID, latest.Text, latest.SenderID, &at); err != nil {
			return err
		}
	}

	s.publish(ctx, events.Event{Kind: events.MessageDeleted, ChatID: chatID, ActorID: actorID, MessageID: messageID})
	return nil
}

// SetTyping advertises or clears the actor's composing state. The structured
// map and the legacy id set always reflect the same transition. This is
// advisory and self-expiring: callers clear it on idle, blur or leave, and a
// crashed client leaves a stale entry until its next write.
func (s *ChatService) SetTyping(ctx context.Context, chatID, actorID string, mode *models.TypingMode) error {
	if mode != nil && !mode.Valid() {
		return fmt.Errorf("typing mode %q: %w", *mode, apperrors.ErrValidation)
	}
	if err := s.chats.SetTyping(ctx, chatID, actorID, mode); err != nil {
		return err
	}
	s.publish(ctx, events.Event{Kind: events.TypingChanged, ChatID: chatID, ActorID: actorID})
	return nil
}

// ToggleReaction flips the actor's heart on a message.
func (s *ChatService) ToggleReaction(ctx context.Context, chatID, messageID, actorID string) (bool, error) {
	msg, err := s.messages.GetMessage(ctx, chatID, messageID)
	if err != nil {
		return false, err
	}
	on := true
	for _, id := range msg.ReactedBy {
		if id == actorID {
			on = false
			break
		}
	}
	if err := s.messages.SetReaction(ctx, chatID, messageID, actorID, on); err != nil {
		return false, err
	}
	s.publish(ctx, events.Event{Kind: events.MessageEdited, ChatID: chatID, ActorID: actorID, MessageID: messageID})
	return on, nil
}

func (s *ChatService) publish(ctx context.Context, e events.Event) {
	e.At = s.now()
	if err := s.pub.Publish(ctx, e); err != nil {
		s.log.Warnw("publish event", "kind", e.Kind, "chat", e.ChatID, "err", err)
	}
}
