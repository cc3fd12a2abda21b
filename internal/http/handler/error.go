package handler

import (
	"encoding/json"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/apperr"
	"portfolio-api/internal/config"
	"portfolio-api/internal/http/middleware"
)

// ErrorHandler is the Fiber global error handler. Every error funnels through
// apperr.Classify into the normalized shape; production suppresses the detail
// of non-operational faults.
func ErrorHandler(env string) fiber.ErrorHandler {
	return errorHandlerWithWriter(env, os.Stdout)
}

func errorHandlerWithWriter(env string, w io.Writer) fiber.ErrorHandler {
	enc := json.NewEncoder(w)

	return func(c *fiber.Ctx, err error) error {
		e := apperr.Classify(err)

		rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)
		level := "warn"
		if e.Code >= 500 {
			level = "error"
		}
		_ = enc.Encode(map[string]any{
			"ts":         time.Now().UTC().Format(time.RFC3339Nano),
			"level":      level,
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     e.Code,
			"message":    e.Error(),
		})

		body := fiber.Map{"status": e.Status}

		message := e.Message
		if env == config.EnvProduction && !e.Operational {
			message = "Something went wrong"
		}
		body["message"] = message

		if len(e.Fields) > 0 {
			body["errors"] = e.Fields
		}
		if env != config.EnvProduction && e.Err != nil {
			body["detail"] = e.Err.Error()
		}
		if env != config.EnvProduction && !e.Operational {
			body["stack"] = string(debug.Stack())
		}

		return c.Status(e.Code).JSON(body)
	}
}
