package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/messenger-backend/internal/middleware"
	"github.com/fathima-sithara/messenger-backend/internal/models"
	"github.com/fathima-sithara/messenger-backend/internal/repository"
	"github.com/fathima-sithara/messenger-backend/internal/service"
)

type ChatHandler struct {
	chats *service.ChatService
	users repository.UserRepository
	log   *zap.SugaredLogger
}

func NewChatHandler(chats *service.ChatService, users repository.UserRepository, log *zap.SugaredLogger) *ChatHandler {
	return &ChatHandler{chats: chats, users: users, log: log}
}

// chatView is a chat plus the viewer-dependent subtitle for the list row.
type chatView struct {
	models.Chat
	Subtitle string `json:"subtitle"`
}

func (h *ChatHandler) OpenDirect(c *fiber.Ctx) error {
	var body struct {
		UserID string `json:"user_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	chat, err := h.chats.OpenDirectChat(c.Context(), middleware.UserID(c), body.UserID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(chat)
}

func (h *ChatHandler) CreateGroup(c *fiber.Ctx) error {
	var body struct {
		Title     string   `json:"title"`
		MemberIDs []string `json:"member_ids"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	chat, err := h.chats.CreateGroup(c.Context(), middleware.UserID(c), body.Title, body.MemberIDs)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(chat)
}

func (h *ChatHandler) List(c *fiber.Ctx) error {
	viewerID := middleware.UserID(c)
	chats, err := h.chats.ChatsForUser(c.Context(), viewerID)
	if err != nil {
		return fail(c, err)
	}
	views := make([]chatView, 0, len(chats))
	for i := range chats {
		views = append(views, chatView{
			Chat:     chats[i],
			Subtitle: service.ListSubtitle(&chats[i], viewerID),
		})
	}
	return c.JSON(views)
}

func (h *ChatHandler) Get(c *fiber.Ctx) error {
	viewerID := middleware.UserID(c)
	chat, err := h.chats.GetChat(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if !chat.IsMember(viewerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "permission denied"})
	}

	var presence *service.Presence
	if chat.Type == models.ChatDirect {
		if otherID := chat.CounterpartID(viewerID); otherID != "" {
			if u, err := h.users.GetUser(c.Context(), otherID); err == nil {
				presence = &service.Presence{Online: u.Online, LastSeen: u.LastSeen}
			} else {
				h.log.Warnw("load counterpart for subtitle", "chat", chat.ID, "err", err)
			}
		}
	}
	return c.JSON(fiber.Map{
		"chat":     chat,
		"subtitle": service.ChatSubtitle(chat, viewerID, presence),
	})
}

func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	viewerID := middleware.UserID(c)
	chatID := c.Params("id")
	chat, err := h.chats.GetChat(c.Context(), chatID)
	if err != nil {
		return fail(c, err)
	}
	if !chat.IsMember(viewerID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "permission denied"})
	}

	msgs, err := h.chats.Messages(c.Context(), chatID)
	if err != nil {
		return fail(c, err)
	}

	names := make(map[string]string, len(chat.MemberIDs))
	for _, id := range chat.MemberIDs {
		if u, err := h.users.GetUser(c.Context(), id); err == nil {
			names[id] = u.DisplayName
		}
	}

	loaded := make([]*models.Message, len(msgs))
	for i := range msgs {
		loaded[i] = &msgs[i]
	}
	type messageView struct {
		models.Message
		ReplyPreview *service.ReplyPreview `json:"reply_preview,omitempty"`
	}
	views := make([]messageView, 0, len(msgs))
	for i := range msgs {
		views = append(views, messageView{
			Message:      msgs[i],
			ReplyPreview: service.BuildReplyPreview(&msgs[i], loaded, viewerID, names),
		})
	}
	return c.JSON(views)
}

func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var body struct {
		Text             string `json:"text"`
		ReplyToMessageID string `json:"reply_to_message_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	msg, err := h.chats.Send(c.Context(), c.Params("id"), middleware.UserID(c), body.Text, body.ReplyToMessageID)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *ChatHandler) Edit(c *fiber.Ctx) error {
	var body struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	if err := h.chats.Edit(c.Context(), c.Params("id"), c.Params("messageId"), middleware.UserID(c), body.Text); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "edited"})
}

func (h *ChatHandler) Delete(c *fiber.Ctx) error {
	if err := h.chats.DeleteMessage(c.Context(), c.Params("id"), c.Params("messageId"), middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "deleted"})
}

func (h *ChatHandler) SetTyping(c *fiber.Ctx) error {
	var body struct {
		Mode *string `json:"mode"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	var mode *models.TypingMode
	if body.Mode != nil && *body.Mode != "" {
		m := models.TypingMode(*body.Mode)
		mode = &m
	}
	if err := h.chats.SetTyping(c.Context(), c.Params("id"), middleware.UserID(c), mode); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *ChatHandler) ToggleReaction(c *fiber.Ctx) error {
	on, err := h.chats.ToggleReaction(c.Context(), c.Params("id"), c.Params("messageId"), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"reacted": on})
}
