package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fathima-sithara/messenger-backend/internal/middleware"
	"github.com/fathima-sithara/messenger-backend/internal/service"
)

type ReminderHandler struct {
	reminders *service.ReminderService
}

func NewReminderHandler(reminders *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

func (h *ReminderHandler) Create(c *fiber.Ctx) error {
	var body struct {
		ChatID    string    `json:"chat_id"`
		MessageID string    `json:"message_id"`
		At        time.Time `json:"at"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	r, err := h.reminders.CreateReminder(c.Context(), middleware.UserID(c), body.ChatID, body.MessageID, body.At)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

func (h *ReminderHandler) List(c *fiber.Ctx) error {
	list, err := h.reminders.Reminders(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *ReminderHandler) Cancel(c *fiber.Ctx) error {
	if err := h.reminders.CancelReminder(c.Context(), middleware.UserID(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "cancelled"})
}
