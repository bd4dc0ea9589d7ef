package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/fathima-sithara/messenger-backend/internal/middleware"
	"github.com/fathima-sithara/messenger-backend/internal/service"
	"github.com/fathima-sithara/messenger-backend/internal/utils"
)

const maxAvatarBytes = 10 << 20

type ProfileHandler struct {
	profiles *service.ProfileService
}

func NewProfileHandler(profiles *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	user, err := h.profiles.GetProfile(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"user":       user,
		"qr_payload": utils.BuildContactPayload(userID),
	})
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var body struct {
		DisplayName *string `json:"display_name"`
		Status      *string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	user, err := h.profiles.UpdateProfile(c.Context(), middleware.UserID(c), body.DisplayName, body.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	fh, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "avatar file required"})
	}
	if fh.Size > maxAvatarBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"error": "avatar too large"})
	}
	f, err := fh.Open()
	if err != nil {
		return fiber.ErrBadRequest
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return fiber.ErrBadRequest
	}

	url, err := h.profiles.UploadAvatar(c.Context(), middleware.UserID(c), fh.Filename, data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"avatar_url": url})
}
