package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"blog_platform/internal/token"
)

// RequireAuth verifies the token from the Authorization header and stores the
// decoded identity in Locals for downstream handlers. The gate never touches
// the user directory: role and blocked status are taken from the token as
// issued, so a still-valid token keeps working until expiry even if the user
// was blocked in the meantime.
func RequireAuth(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get("Authorization"))
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "Unauthorized - Missing token"})
		}

		// Clients send the raw token; tolerate a Bearer prefix anyway.
		if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
			raw = strings.TrimSpace(raw[7:])
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": "Unauthorized - Invalid token"})
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// RequireRole composes after RequireAuth and rejects requests whose token
// role is not in the allowed set.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		if !slices.Contains(allowed, role) {
			return c.Status(fiber.StatusForbidden).
				JSON(fiber.Map{"message": "Forbidden - Insufficient permissions"})
		}
		return c.Next()
	}
}
