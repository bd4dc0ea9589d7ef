package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fathima-sithara/messenger-backend/internal/apperrors"
	"github.com/fathima-sithara/messenger-backend/internal/events"
	"github.com/fathima-sithara/messenger-backend/internal/models"
)

// In-memory doubles for the repository interfaces. They mirror the store's
// observable behavior: not-found errors wrap apperrors.ErrNotFound, a missing
// invite code resolves to ErrInviteInvalid, typing writes touch the map and
// the legacy set together.

type fakeChatRepo struct {
	mu    sync.Mutex
	chats map[string]*models.Chat
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[string]*models.Chat)}
}

func (r *fakeChatRepo) InsertChat(_ context.Context, c *models.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.chats[c.ID] = &cp
	return nil
}

func (r *fakeChatRepo) GetChat(_ context.Context, id string) (*models.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[id]
	if !ok {
		return nil, fmt.Errorf("chat %s: %w", id, apperrors.ErrNotFound)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeChatRepo) ChatsForUser(_ context.Context, userID string) ([]models.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Chat
	for _, c := range r.chats {
		if c.IsMember(userID) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeChatRepo) DirectChatsWithMember(_ context.Context, userID string) ([]models.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Chat
	for _, c := range r.chats {
		if c.Type == models.ChatDirect && c.IsMember(userID) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeChatRepo) FindChatByInviteCode(_ context.Context, code string) (*models.Chat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if code != "" {
		for _, c := range r.chats {
			if c.InviteCode == code {
				cp := *c
				return &cp, nil
			}
		}
	}
	return nil, apperrors.ErrInviteInvalid
}

func (r *fakeChatRepo) SetLastMessage(_ context.Context, chatID, text, senderID string, at *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return fmt.Errorf("chat %s: %w", chatID, apperrors.ErrNotFound)
	}
	c.LastMessageText = text
	c.LastMessageSenderID = senderID
	c.LastMessageAt = at
	if at != nil {
		c.UpdatedAt = *at
	}
	return nil
}

func (r *fakeChatRepo) ClearLastMessage(_ context.Context, chatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return fmt.Errorf("chat %s: %w", chatID, apperrors.ErrNotFound)
	}
	c.LastMessageText = ""
	c.LastMessageSenderID = ""
	c.LastMessageAt = nil
	return nil
}

func (r *fakeChatRepo) SetTyping(_ context.Context, chatID, userID string, mode *models.TypingMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return fmt.Errorf("chat %s: %w", chatID, apperrors.ErrNotFound)
	}
	if mode == nil {
		delete(c.TypingStates, userID)
		for i, id := range c.TypingUserIDs {
			if id == userID {
				c.TypingUserIDs = append(c.TypingUserIDs[:i], c.TypingUserIDs[i+1:]...)
				break
			}
		}
		return nil
	}
	if c.TypingStates == nil {
		c.TypingStates = make(map[string]models.TypingMode)
	}
	c.TypingStates[userID] = *mode
	for _, id := range c.TypingUserIDs {
		if id == userID {
			return nil
		}
	}
	c.TypingUserIDs = append(c.TypingUserIDs, userID)
	return nil
}

func (r *fakeChatRepo) SetMembers(_ context.Context, chatID string, memberIDs []string, adminID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return fmt.Errorf("chat %s: %w", chatID, apperrors.ErrNotFound)
	}
	c.MemberIDs = append([]string(nil), memberIDs...)
	if adminID != nil {
		c.AdminID = *adminID
	}
	return nil
}

func (r *fakeChatRepo) AddMember(_ context.Context, chatID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return fmt.Errorf("chat %s: %w", chatID, apperrors.ErrNotFound)
	}
	if !c.IsMember(userID) {
		c.MemberIDs = append(c.MemberIDs, userID)
	}
	return nil
}

func (r *fakeChatRepo) SetAdmin(_ context.Context, chatID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return fmt.Errorf("chat %s: %w", chatID, apperrors.ErrNotFound)
	}
	c.AdminID = userID
	return nil
}

func (r *fakeChatRepo) SetInvite(_ context.Context, chatID string, code string, expiresAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return fmt.Errorf("chat %s: %w", chatID, apperrors.ErrNotFound)
	}
	c.InviteCode = code
	c.InviteExpiresAt = expiresAt
	return nil
}

func (r *fakeChatRepo) SetJoinApproval(_ context.Context, chatID string, required bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.chats[chatID]
	if !ok {
		return fmt.Errorf("chat %s: %w", chatID, apperrors.ErrNotFound)
	}
	c.JoinApprovalRequired = required
	return nil
}

type fakeMessageRepo struct {
	mu   sync.Mutex
	msgs []models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) InsertMessage(_ context.Context, m *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, *m)
	return nil
}

func (r *fakeMessageRepo) GetMessage(_ context.Context, chatID, messageID string) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.msgs {
		if r.msgs[i].ChatID == chatID && r.msgs[i].ID == messageID {
			cp := r.msgs[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("message %s: %w", messageID, apperrors.ErrNotFound)
}

func (r *fakeMessageRepo) MessagesForChat(_ context.Context, chatID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Message
	for i := range r.msgs {
		if r.msgs[i].ChatID == chatID {
			out = append(out, r.msgs[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMessageRepo) LatestMessage(_ context.Context, chatID string) (*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *models.Message
	for i := range r.msgs {
		m := &r.msgs[i]
		if m.ChatID != chatID {
			continue
		}
		if latest == nil || m.CreatedAt.After(latest.CreatedAt) {
			latest = m
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *fakeMessageRepo) UpdateMessageText(_ context.Context, chatID, messageID, text string, editedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.msgs {
		if r.msgs[i].ChatID == chatID && r.msgs[i].ID == messageID {
			r.msgs[i].Text = text
			at := editedAt
			r.msgs[i].EditedAt = &at
			return nil
		}
	}
	return fmt.Errorf("message %s: %w", messageID, apperrors.ErrNotFound)
}

func (r *fakeMessageRepo) DeleteMessage(_ context.Context, chatID, messageID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.msgs {
		if r.msgs[i].ChatID == chatID && r.msgs[i].ID == messageID {
			r.msgs = append(r.msgs[:i], r.msgs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("message %s: %w", messageID, apperrors.ErrNotFound)
}

func (r *fakeMessageRepo) SetReaction(_ context.Context, chatID, messageID, userID string, on bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.msgs {
		m := &r.msgs[i]
		if m.ChatID != chatID || m.ID != messageID {
			continue
		}
		if on {
			for _, id := range m.ReactedBy {
				if id == userID {
					return nil
				}
			}
			m.ReactedBy = append(m.ReactedBy, userID)
			return nil
		}
		for j, id := range m.ReactedBy {
			if id == userID {
				m.ReactedBy = append(m.ReactedBy[:j], m.ReactedBy[j+1:]...)
				break
			}
		}
		return nil
	}
	return fmt.Errorf("message %s: %w", messageID, apperrors.ErrNotFound)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*models.User)}
}

func (r *fakeUserRepo) InsertUser(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindUserByPhoneNormalized(_ context.Context, phone string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PhoneNormalized == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) SetPresence(_ context.Context, id string, online bool, lastSeen time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	u.Online = online
	at := lastSeen
	u.LastSeen = &at
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, id string, displayName, statusMessage *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	if displayName != nil {
		u.DisplayName = *displayName
	}
	if statusMessage != nil {
		u.StatusMessage = *statusMessage
	}
	return nil
}

func (r *fakeUserRepo) SetAvatarURL(_ context.Context, id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, apperrors.ErrNotFound)
	}
	u.AvatarURL = url
	return nil
}

type fakeContactRepo struct {
	mu       sync.Mutex
	contacts []models.Contact
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{}
}

func (r *fakeContactRepo) InsertContact(_ context.Context, c *models.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.contacts = append(r.contacts, *c)
	return nil
}

func (r *fakeContactRepo) ContactsForOwner(_ context.Context, ownerID string) ([]models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Contact
	for _, c := range r.contacts {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeContactRepo) GetContact(_ context.Context, ownerID, contactUserID string) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.contacts {
		if r.contacts[i].OwnerID == ownerID && r.contacts[i].ContactUserID == contactUserID {
			cp := r.contacts[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("contact %s: %w", contactUserID, apperrors.ErrNotFound)
}

func (r *fakeContactRepo) RenameContact(_ context.Context, ownerID, contactUserID, displayName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.contacts {
		if r.contacts[i].OwnerID == ownerID && r.contacts[i].ContactUserID == contactUserID {
			r.contacts[i].DisplayName = displayName
			return nil
		}
	}
	return fmt.Errorf("contact %s: %w", contactUserID, apperrors.ErrNotFound)
}

func (r *fakeContactRepo) SetFavorite(_ context.Context, ownerID, contactUserID string, favorite bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.contacts {
		if r.contacts[i].OwnerID == ownerID && r.contacts[i].ContactUserID == contactUserID {
			r.contacts[i].IsFavorite = favorite
			return nil
		}
	}
	return fmt.Errorf("contact %s: %w", contactUserID, apperrors.ErrNotFound)
}

func (r *fakeContactRepo) DeleteContact(_ context.Context, ownerID, contactUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.contacts {
		if r.contacts[i].OwnerID == ownerID && r.contacts[i].ContactUserID == contactUserID {
			r.contacts = append(r.contacts[:i], r.contacts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("contact %s: %w", contactUserID, apperrors.ErrNotFound)
}

type fakeJoinRequestRepo struct {
	mu   sync.Mutex
	reqs []models.JoinRequest
}

func newFakeJoinRequestRepo() *fakeJoinRequestRepo {
	return &fakeJoinRequestRepo{}
}

func (r *fakeJoinRequestRepo) InsertRequest(_ context.Context, req *models.JoinRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, *req)
	return nil
}

func (r *fakeJoinRequestRepo) RequestsForChat(_ context.Context, chatID string) ([]models.JoinRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.JoinRequest
	for _, req := range r.reqs {
		if req.ChatID == chatID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeJoinRequestRepo) GetRequest(_ context.Context, chatID, requestID string) (*models.JoinRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reqs {
		if r.reqs[i].ChatID == chatID && r.reqs[i].ID == requestID {
			cp := r.reqs[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("join request %s: %w", requestID, apperrors.ErrNotFound)
}

func (r *fakeJoinRequestRepo) DeleteRequest(_ context.Context, chatID, requestID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reqs {
		if r.reqs[i].ChatID == chatID && r.reqs[i].ID == requestID {
			r.reqs = append(r.reqs[:i], r.reqs[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("join request %s: %w", requestID, apperrors.ErrNotFound)
}

func (r *fakeJoinRequestRepo) DeleteRequestsForChat(_ context.Context, chatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.reqs[:0]
	for _, req := range r.reqs {
		if req.ChatID != chatID {
			kept = append(kept, req)
		}
	}
	r.reqs = kept
	return nil
}

type fakeReminderRepo struct {
	mu        sync.Mutex
	reminders []models.Reminder
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{}
}

func (r *fakeReminderRepo) InsertReminder(_ context.Context, rem *models.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reminders = append(r.reminders, *rem)
	return nil
}

func (r *fakeReminderRepo) RemindersForOwner(_ context.Context, ownerID string) ([]models.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Reminder
	for _, rem := range r.reminders {
		if rem.OwnerID == ownerID {
			out = append(out, rem)
		}
	}
	return out, nil
}

func (r *fakeReminderRepo) GetReminder(_ context.Context, ownerID, reminderID string) (*models.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reminders {
		if r.reminders[i].OwnerID == ownerID && r.reminders[i].ID == reminderID {
			cp := r.reminders[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("reminder %s: %w", reminderID, apperrors.ErrNotFound)
}

func (r *fakeReminderRepo) DeleteReminder(_ context.Context, ownerID, reminderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.reminders {
		if r.reminders[i].OwnerID == ownerID && r.reminders[i].ID == reminderID {
			r.reminders = append(r.reminders[:i], r.reminders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("reminder %s: %w", reminderID, apperrors.ErrNotFound)
}

// fakePublisher records published events in order.
type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *fakePublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Kind
	}
	return out
}
