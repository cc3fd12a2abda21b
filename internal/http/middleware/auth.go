package middleware

import (
	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/apperr"
	"portfolio-api/internal/token"
)

const (
	// AuthHeader carries the signed credential.
	AuthHeader = "X-Auth-Token"
	// IdentityLocalKey stores the verified subject id in context locals.
	IdentityLocalKey = "identity"
)

// RequireAuth rejects requests without a valid token. A missing header gets
// its own message; expired and tampered tokens pass through raw so the error
// normalizer can tell them apart.
func RequireAuth(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(AuthHeader)
		if raw == "" {
			return apperr.Unauthorized("No token, authorization denied")
		}

		subject, err := tokens.Verify(raw)
		if err != nil {
			return err
		}

		c.Locals(IdentityLocalKey, subject)
		return c.Next()
	}
}

// Identity returns the verified subject id set by RequireAuth.
func Identity(c *fiber.Ctx) string {
	id, _ := c.Locals(IdentityLocalKey).(string)
	return id
}
