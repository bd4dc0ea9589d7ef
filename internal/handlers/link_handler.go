package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fathima-sithara/messenger-backend/internal/utils"
)

// LinkHandler resolves scanned QR payloads and pasted deep links into a
// structured intent the client can act on.
type LinkHandler struct{}

func NewLinkHandler() *LinkHandler {
	return &LinkHandler{}
}

func (h *LinkHandler) Resolve(c *fiber.Ctx) error {
	var body struct {
		Payload string `json:"payload"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	intent := utils.ParsePayload(body.Payload)
	if intent == nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "unrecognized payload"})
	}
	return c.JSON(intent)
}
