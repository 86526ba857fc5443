package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole restricts a route to users whose token carries one of the
// given roles. Protected() must run first to populate the role local.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User role not found in context",
			})
		}

		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have the required role to perform this action",
		})
	}
}
