package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"oriem/internal/services"
)

// SubjectKey is the context local under which the verified subject email is
// stored for downstream handlers.
const SubjectKey = "subject_email"

// AuthRequired is a Fiber middleware that checks for a valid bearer token.
// Absent, malformed, forged and expired tokens all answer 401 with the same
// body.
func AuthRequired(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "Invalid token",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && strings.EqualFold(parts[0], "Bearer")) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "Invalid token",
			})
		}

		subject, err := tokens.Verify(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "Invalid token",
			})
		}

		c.Locals(SubjectKey, subject)
		return c.Next()
	}
}
