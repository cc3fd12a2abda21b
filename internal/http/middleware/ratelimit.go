package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/apperr"
	"portfolio-api/internal/ratelimit"
)

// RateLimit enforces a per-client fixed window against the given store. Keys
// combine the scope with the client IP so the login limiter and the general
// API limiter count independently. A zero limit disables the middleware.
func RateLimit(store ratelimit.Store, scope string, limit int, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limit <= 0 {
			return c.Next()
		}

		key := scope + ":" + c.IP()
		allowed, retryAfter, err := store.Allow(c.UserContext(), key, limit, window)
		if err != nil {
			// A broken limiter backend must not take the API down.
			return c.Next()
		}
		if !allowed {
			secs := int(retryAfter / time.Second)
			if secs < 1 {
				secs = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(secs))
			return apperr.New(fiber.StatusTooManyRequests, "Too many requests from this IP, please try again later")
		}

		return c.Next()
	}
}
