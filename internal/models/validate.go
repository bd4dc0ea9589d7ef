package models

import (
	"fmt"

	"github.com/fathima-sithara/messenger-backend/internal/apperrors"
)

// Validate is the schema check applied at the subscription boundary: a chat
// document that fails it is surfaced as a decode error instead of being
// silently defaulted.
func (c *Chat) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("chat missing id: %w", apperrors.ErrValidation)
	}
	switch c.Type {
	case ChatDirect, ChatGroup:
	default:
		return fmt.Errorf("chat %s has unknown type %q: %w", c.ID, c.Type, apperrors.ErrValidation)
	}
	seen := make(map[string]struct{}, len(c.MemberIDs))
	for _, id := range c.MemberIDs {
		if id == "" {
			return fmt.Errorf("chat %s has empty member id: %w", c.ID, apperrors.ErrValidation)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("chat %s has duplicate member %s: %w", c.ID, id, apperrors.ErrValidation)
		}
		seen[id] = struct{}{}
	}
	if c.Type == ChatDirect {
		if c.AdminID != "" {
			return fmt.Errorf("direct chat %s carries an admin: %w", c.ID, apperrors.ErrValidation)
		}
		if len(c.MemberIDs) > 2 {
			return fmt.Errorf("direct chat %s has %d members: %w", c.ID, len(c.MemberIDs), apperrors.ErrValidation)
		}
	}
	if c.Type == ChatGroup && len(c.MemberIDs) > 0 {
		if c.AdminID == "" {
			return fmt.Errorf("group chat %s has no admin: %w", c.ID, apperrors.ErrValidation)
		}
		if _, ok := seen[c.AdminID]; !ok {
			return fmt.Errorf("group chat %s admin %s is not a member: %w", c.ID, c.AdminID, apperrors.ErrValidation)
		}
	}
	for uid, mode := range c.TypingStates {
		if !mode.Valid() {
			return fmt.Errorf("chat %s has invalid typing mode %q for %s: %w", c.ID, mode, uid, apperrors.ErrValidation)
		}
	}
	return nil
}

func (m *Message) Validate() error {
	if m.ID == "" || m.ChatID == "" {
		return fmt.Errorf("message missing identity: %w", apperrors.ErrValidation)
	}
	if m.SenderID == "" {
		return fmt.Errorf("message %s missing sender: %w", m.ID, apperrors.ErrValidation)
	}
	switch m.Type {
	case MessageText, MessageImage, MessageVideo, MessageAudio, MessageFile:
	default:
		return fmt.Errorf("message %s has unknown type %q: %w", m.ID, m.Type, apperrors.ErrValidation)
	}
	if m.Type == MessageText && m.Text == "" {
		return fmt.Errorf("message %s is text with no body: %w", m.ID, apperrors.ErrValidation)
	}
	if m.Type != MessageText && m.MediaURL == "" {
		return fmt.Errorf("message %s is %s with no media url: %w", m.ID, m.Type, apperrors.ErrValidation)
	}
	return nil
}
