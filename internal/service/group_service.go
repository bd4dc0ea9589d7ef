package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/fathima-sithara/messenger-backend/internal/apperrors"
	"github.com/fathima-sithara/messenger-backend/internal/events"
	"github.com/fathima-sithara/messenger-backend/internal/models"
	"github.com/fathima-sithara/messenger-backend/internal/repository"
	"github.com/fathima-sithara/messenger-backend/internal/utils"
)

// GroupService gates membership and invite mutations behind the admin role.
type GroupService struct {
	chats    repository.ChatRepository
	requests repository.JoinRequestRepository
	pub      events.Publisher
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewGroupService(chats repository.ChatRepository, requests repository.JoinRequestRepository, pub events.Publisher, log *zap.SugaredLogger) *GroupService {
	return &GroupService{chats: chats, requests: requests, pub: pub, log: log, now: time.Now}
}

func (s *GroupService) adminChat(ctx context.Context, chatID, actorID string) (*models.Chat, error) {
	chat, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat.Type != models.ChatGroup {
		return nil, fmt.Errorf("chat %s is not a group: %w", chatID, apperrors.ErrValidation)
	}
	if chat.AdminID != actorID {
		return nil, fmt.Errorf("chat %s: %w", chatID, apperrors.ErrPermissionDenied)
	}
	return chat, nil
}

func (s *GroupService) MakeAdmin(ctx context.Context, chatID, actorID, userID string) error {
	chat, err := s.adminChat(ctx, chatID, actorID)
	if err != nil {
		return err
	}
	if !chat.IsMember(userID) {
		return fmt.Errorf("user %s is not a member of chat %s: %w", userID, chatID, apperrors.ErrValidation)
	}
	if err := s.chats.SetAdmin(ctx, chatID, userID); err != nil {
		return err
	}
	s.publish(ctx, events.Event{Kind: events.MembershipChanged, ChatID: chatID, ActorID: actorID})
	return nil
}

// RemoveMember drops a member from the group. It deliberately does not
// reassign admin; only self-exit does.
func (s *GroupService) RemoveMember(ctx context.Context, chatID, actorID, userID string) error {
	chat, err := s.adminChat(ctx, chatID, actorID)
	if err != nil {
		return err
	}
	if !chat.IsMember(userID) {
		return nil
	}
	members := without(chat.MemberIDs, userID)
	if err := s.chats.SetMembers(ctx, chatID, members, nil); err != nil {
		return err
	}
	s.publish(ctx, events.Event{Kind: events.MembershipChanged, ChatID: chatID, ActorID: actorID})
	return nil
}

// ExitGroup removes the actor from the group. When the leaver held admin and
// members remain, admin transfers to the first remaining member in array
// order.
func (s *GroupService) ExitGroup(ctx context.Context, chatID, actorID string) error {
	chat, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		return err
	}
	if chat.Type != models.ChatGroup {
		return fmt.Errorf("chat %s is not a group: %w", chatID, apperrors.ErrValidation)
	}
	if !chat.IsMember(actorID) {
		return nil
	}

	members := without(chat.MemberIDs, actorID)
	var admin *string
	if chat.AdminID == actorID && len(members) > 0 {
		admin = &members[0]
	}
	if err := s.chats.SetMembers(ctx, chatID, members, admin); err != nil {
		return err
	}
	s.publish(ctx, events.Event{Kind: events.MembershipChanged, ChatID: chatID, ActorID: actorID})
	return nil
}

// GenerateInvite mints a fresh invite code with no expiry.
func (s *GroupService) GenerateInvite(ctx context.Context, chatID, actorID string) (string, error) {
	if _, err := s.adminChat(ctx, chatID, actorID); err != nil {
		return "", err
	}
	code := utils.GenerateInviteCode()
	if err := s.chats.SetInvite(ctx, chatID, code, nil); err != nil {
		return "", err
	}
	s.publish(ctx, events.Event{Kind: events.ChatUpdated, ChatID: chatID, ActorID: actorID})
	return code, nil
}

func (s *GroupService) RevokeInvite(ctx context.Context, chatID, actorID string) error {
	if _, err := s.adminChat(ctx, chatID, actorID); err != nil {
		return err
	}
	if err := s.chats.SetInvite(ctx, chatID, "", nil); err != nil {
		return err
	}
	s.publish(ctx, events.Event{Kind: events.ChatUpdated, ChatID: chatID, ActorID: actorID})
	return nil
}

// SetJoinApproval toggles the approval gate; disabling it drops any pending
// request queue.
func (s *GroupService) SetJoinApproval(ctx context.Context, chatID, actorID string, required bool) error {
	if _, err := s.adminChat(ctx, chatID, actorID); err != nil {
		return err
	}
	if err := s.chats.SetJoinApproval(ctx, chatID, required); err != nil {
		return err
	}
	if !required {
		if err := s.requests.DeleteRequestsForChat(ctx, chatID); err != nil {
			return err
		}
	}
	s.publish(ctx, events.Event{Kind: events.ChatUpdated, ChatID: chatID, ActorID: actorID})
	return nil
}

// JoinResult reports how RequestJoin resolved.
type JoinResult struct {
	Chat    *models.Chat `json:"chat"`
	Pending bool         `json:"pending"`
}

// RequestJoin resolves an invite code. Expired codes are rejected, existing
// members are treated as already joined, and chats with the approval gate on
// only enqueue a request.
func (s *GroupService) RequestJoin(ctx context.Context, code, requesterID string) (*JoinResult, error) {
	chat, err := s.chats.FindChatByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if chat.InviteExpiresAt != nil && chat.InviteExpiresAt.Before(s.now()) {
		return nil, fmt.Errorf("invite for chat %s: %w", chat.ID, apperrors.ErrInviteExpired)
	}
	if chat.IsMember(requesterID) {
		return &JoinResult{Chat: chat}, nil
	}

	if chat.JoinApprovalRequired {
		req := &models.JoinRequest{
			ID:          primitive.NewObjectID().Hex(),
			ChatID:      chat.ID,
			RequesterID: requesterID,
			CreatedAt:   s.now(),
		}
		if err := s.requests.InsertRequest(ctx, req); err != nil {
			return nil, err
		}
		return &JoinResult{Chat: chat, Pending: true}, nil
	}

	if err := s.chats.AddMember(ctx, chat.ID, requesterID); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{Kind: events.MembershipChanged, ChatID: chat.ID, ActorID: requesterID})
	return &JoinResult{Chat: chat}, nil
}

func (s *GroupService) PendingRequests(ctx context.Context, chatID, actorID string) ([]models.JoinRequest, error) {
	if _, err := s.adminChat(ctx, chatID, actorID); err != nil {
		return nil, err
	}
	return s.requests.RequestsForChat(ctx, chatID)
}

// ApproveRequest adds the requester to the membership and dequeues.
func (s *GroupService) ApproveRequest(ctx context.Context, chatID, requestID, actorID string) error {
	chat, err := s.adminChat(ctx, chatID, actorID)
	if err != nil {
		return err
	}
	req, err := s.requests.GetRequest(ctx, chatID, requestID)
	if err != nil {
		return err
	}
	if !chat.IsMember(req.RequesterID) {
		if err := s.chats.AddMember(ctx, chatID, req.RequesterID); err != nil {
			return err
		}
	}
	if err := s.requests.DeleteRequest(ctx, chatID, requestID); err != nil {
		return err
	}
	s.publish(ctx, events.Event{Kind: events.MembershipChanged, ChatID: chatID, ActorID: actorID})
	return nil
}

// DeclineRequest only dequeues.
func (s *GroupService) DeclineRequest(ctx context.Context, chatID, requestID, actorID string) error {
	if _, err := s.adminChat(ctx, chatID, actorID); err != nil {
		return err
	}
	return s.requests.DeleteRequest(ctx, chatID, requestID)
}

func (s *GroupService) publish(ctx context.Context, e events.Event) {
	e.At = s.now()
	if err := s.pub.Publish(ctx, e); err != nil {
		s.log.Warnw("publish event", "kind", e.Kind, "chat", e.ChatID, "err", err)
	}
}

func without(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}
