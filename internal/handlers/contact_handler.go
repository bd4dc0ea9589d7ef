package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fathima-sithara/messenger-backend/internal/middleware"
	"github.com/fathima-sithara/messenger-backend/internal/repository"
	"github.com/fathima-sithara/messenger-backend/internal/service"
)

type ContactHandler struct {
	contacts *service.ContactService
	users    repository.UserRepository
}

func NewContactHandler(contacts *service.ContactService, users repository.UserRepository) *ContactHandler {
	return &ContactHandler{contacts: contacts, users: users}
}

func (h *ContactHandler) Add(c *fiber.Ctx) error {
	var body struct {
		Phone string `json:"phone"`
		Name  string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	owner, err := h.users.GetUser(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	contact, err := h.contacts.AddContact(c.Context(), owner, body.Phone, body.Name)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	list, err := h.contacts.Contacts(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(list)
}

func (h *ContactHandler) Rename(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	if err := h.contacts.RenameContact(c.Context(), middleware.UserID(c), c.Params("userId"), body.Name); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "renamed"})
}

func (h *ContactHandler) ToggleFavorite(c *fiber.Ctx) error {
	fav, err := h.contacts.ToggleFavorite(c.Context(), middleware.UserID(c), c.Params("userId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"is_favorite": fav})
}

func (h *ContactHandler) Remove(c *fiber.Ctx) error {
	if err := h.contacts.RemoveContact(c.Context(), middleware.UserID(c), c.Params("userId")); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "removed"})
}
