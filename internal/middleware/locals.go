package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// UIDFromLocals reads the user id RequireAuth stored on the request.
func UIDFromLocals(c *fiber.Ctx) (string, error) {
	uid, _ := c.Locals("user_id").(string)
	if uid == "" {
		return "", fiber.ErrUnauthorized
	}
	return uid, nil
}

func RoleFromLocals(c *fiber.Ctx) string {
	role, _ := c.Locals("role").(string)
	return role
}
