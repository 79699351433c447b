package middleware

import (
	"github.com/gofiber/fiber/v2"

	"leave-backend/internal/model"
)

// Role lets the request pass when the token carries one of allowedRoles.
func Role(allowedRoles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Ambil role user dari context (diset di Auth middleware)
		userRoles, ok := c.Locals(LocalRoles).([]string)
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied: no roles"})
		}

		for _, have := range userRoles {
			if have == string(model.RoleInactive) {
				return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied: inactive"})
			}
		}
		for _, want := range allowedRoles {
			for _, have := range userRoles {
				if have == string(want) {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "access denied"})
	}
}
