package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/messenger-backend/internal/middleware"
	"github.com/fathima-sithara/messenger-backend/internal/service"
)

type AuthHandler struct {
	auth *service.AuthService
	log  *zap.SugaredLogger
}

func NewAuthHandler(auth *service.AuthService, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var body struct {
		Phone       string `json:"phone"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	sess, err := h.auth.SignUp(c.Context(), body.Phone, body.Password, body.DisplayName)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sess)
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var body struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return fiber.ErrBadRequest
	}
	sess, err := h.auth.SignIn(c.Context(), body.Phone, body.Password)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(sess)
}

func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	if err := h.auth.SignOut(c.Context(), middleware.UserID(c)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "signed out"})
}
