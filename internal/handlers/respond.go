package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fathima-sithara/messenger-backend/internal/apperrors"
)

// fail maps the service error taxonomy onto HTTP statuses. Unknown errors are
// reported as 500 without leaking their text.
func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "permission denied"})
	case errors.Is(err, apperrors.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, apperrors.ErrAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "already exists"})
	case errors.Is(err, apperrors.ErrWindowExpired):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "edit window expired"})
	case errors.Is(err, apperrors.ErrInviteInvalid):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "invite code is invalid"})
	case errors.Is(err, apperrors.ErrInviteExpired):
		return c.Status(fiber.StatusGone).JSON(fiber.Map{"error": "invite code has expired"})
	case errors.Is(err, apperrors.ErrBackendUnavailable):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "backend unavailable"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
