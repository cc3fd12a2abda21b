package middleware

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"portfolio-api/internal/apperr"
)

// Fields whose values never reach the log output.
var redactedFields = map[string]struct{}{
	"password":        {},
	"currentPassword": {},
	"newPassword":     {},
	"token":           {},
}

const maxLoggedBodyBytes = 2048

// Logger logs each request as one JSON line on stdout.
func Logger() fiber.Handler {
	return LoggerWithWriter(os.Stdout)
}

// LoggerWithWriter is Logger with an injectable sink for tests. Each line
// carries request_id, method, path, status and latency; JSON request and
// response bodies are included with credential fields redacted.
func LoggerWithWriter(w io.Writer) fiber.Handler {
	enc := json.NewEncoder(w)

	return func(c *fiber.Ctx) error {
		start := time.Now()
		body := capturedBody(c)

		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		entry := map[string]any{
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     loggedStatus(c, err),
			"latency":    float64(time.Since(start).Milliseconds()),
			"ip":         c.IP(),
		}
		if body != nil {
			entry["body"] = body
		}
		if resp := capturedResponse(c); resp != nil {
			entry["response"] = resp
		}

		_ = enc.Encode(entry)

		return err
	}
}

// loggedStatus derives the status of a failing request from the returned
// error; the app-level error handler has not written its response yet when
// this middleware logs.
func loggedStatus(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	switch e := err.(type) {
	case *apperr.Error:
		return e.Code
	case *fiber.Error:
		return e.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// capturedBody returns a redacted copy of a JSON request body, or nil when
// the body is absent, non-JSON or too large to bother with.
func capturedBody(c *fiber.Ctx) any {
	raw := c.Body()
	if len(raw) == 0 || len(raw) > maxLoggedBodyBytes {
		return nil
	}
	if !strings.Contains(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil
	}
	return redact(decoded)
}

// capturedResponse is capturedBody for the buffered response.
func capturedResponse(c *fiber.Ctx) any {
	raw := c.Response().Body()
	if len(raw) == 0 || len(raw) > maxLoggedBodyBytes {
		return nil
	}
	if !strings.Contains(string(c.Response().Header.ContentType()), fiber.MIMEApplicationJSON) {
		return nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil
	}
	return redact(decoded)
}

func redact(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, inner := range val {
			if _, hidden := redactedFields[k]; hidden {
				val[k] = "[REDACTED]"
				continue
			}
			val[k] = redact(inner)
		}
		return val
	case []any:
		for i, inner := range val {
			val[i] = redact(inner)
		}
		return val
	default:
		return v
	}
}
