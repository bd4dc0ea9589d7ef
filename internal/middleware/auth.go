package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fathima-sithara/messenger-backend/internal/auth"
)

// RequireAuth validates the bearer token and stores the caller id in
// c.Locals("user_id") for the handlers downstream.
func RequireAuth(tokens *auth.Manager, log *zap.SugaredLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr, err := auth.ParseBearerToken(c.Get("Authorization"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or malformed authorization header"})
		}
		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			log.Debugw("token rejected", "err", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}
		c.Locals("user_id", claims.UserID)
		return c.Next()
	}
}

// UserID reads the caller id set by RequireAuth.
func UserID(c *fiber.Ctx) string {
	if v, ok := c.Locals("user_id").(string); ok {
		return v
	}
	return ""
}
