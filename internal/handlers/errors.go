package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// internalError logs the detail server-side and returns the generic 500
// envelope. Internal failures are never leaked to clients.
func internalError(c *fiber.Ctx, scope string, err error) error {
	log.Printf("%s: %v", scope, err)
	return c.Status(fiber.StatusInternalServerError).
		JSON(fiber.Map{"message": "Internal Server Error"})
}
