package service

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/fathima-sithara/messenger-backend/internal/apperrors"
	"github.com/fathima-sithara/messenger-backend/internal/models"
	"github.com/fathima-sithara/messenger-backend/internal/notify"
	"github.com/fathima-sithara/messenger-backend/internal/repository"
)

const reminderSnippetLen = 80

type ReminderService struct {
	reminders repository.ReminderRepository
	messages  repository.MessageRepository
	chats     repository.ChatRepository
	scheduler notify.Scheduler
	log       *zap.SugaredLogger
	now       func() time.Time
}

func NewReminderService(reminders repository.ReminderRepository, messages repository.MessageRepository, chats repository.ChatRepository, scheduler notify.Scheduler, log *zap.SugaredLogger) *ReminderService {
	return &ReminderService{
		reminders: reminders,
		messages:  messages,
		chats:     chats,
		scheduler: scheduler,
		log:       log,
		now:       time.Now,
	}
}

// CreateReminder schedules a one-shot notification pointing back at the
// message. Times that already passed are nudged slightly into the future so
// the notification still fires instead of being dropped.
func (s *ReminderService) CreateReminder(ctx context.Context, ownerID, chatID, messageID string, at time.Time) (*models.Reminder, error) {
	chat, err := s.chats.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.IsMember(ownerID) {
		return nil, fmt.Errorf("remind in chat %s: %w", chatID, apperrors.ErrPermissionDenied)
	}
	msg, err := s.messages.GetMessage(ctx, chatID, messageID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !at.After(now) {
		at = now.Add(2 * time.Second)
	}

	body := msg.Text
	if body == "" {
		body = "[message]"
	} else if len(body) > reminderSnippetLen {
		body = body[:reminderSnippetLen]
	}

	notifID, err := s.scheduler.Schedule(at, notify.Notification{
		Title: "Reminder",
		Body:  body,
		Data:  map[string]string{"chatId": chatID, "messageId": messageID},
	})
	if err != nil {
		return nil, fmt.Errorf("schedule reminder: %w", err)
	}

	r := &models.Reminder{
		ID:                      primitive.NewObjectID().Hex(),
		OwnerID:                 ownerID,
		ChatID:                  chatID,
		MessageID:               messageID,
		At:                      at,
		ScheduledNotificationID: notifID,
		CreatedAt:               now,
	}
	if err := s.reminders.InsertReminder(ctx, r); err != nil {
		s.scheduler.Cancel(notifID)
		return nil, err
	}
	return r, nil
}

func (s *ReminderService) Reminders(ctx context.Context, ownerID string) ([]models.Reminder, error) {
	return s.reminders.RemindersForOwner(ctx, ownerID)
}

// CancelReminder stops the pending notification and removes the record.
func (s *ReminderService) CancelReminder(ctx context.Context, ownerID, reminderID string) error {
	r, err := s.reminders.GetReminder(ctx, ownerID, reminderID)
	if err != nil {
		return err
	}
	s.scheduler.Cancel(r.ScheduledNotificationID)
	return s.reminders.DeleteReminder(ctx, ownerID, reminderID)
}
