package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/apperr"
)

// HealthCheck reports readiness; the database is the only hard dependency.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return apperr.New(fiber.StatusServiceUnavailable, "Service unavailable").WithCause(err)
		}
		return respondMessage(c, fiber.StatusOK, "API is running")
	}
}

// LivenessProbe is the bare process-up check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
