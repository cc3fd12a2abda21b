package middleware

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SanitizeBody neutralizes operator-injection and script payloads in JSON
// request bodies before any handler parses them: keys starting with "$" or
// containing "." are dropped, and angle brackets in string values are
// HTML-escaped. Non-JSON bodies pass through untouched.
func SanitizeBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Body()
		if len(raw) == 0 || !strings.Contains(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
			return c.Next()
		}

		var decoded any
		if err := json.Unmarshal(raw, &decoded); err != nil {
			// Let the body parser produce the malformed-JSON error.
			return c.Next()
		}

		cleaned, err := json.Marshal(sanitizeValue(decoded))
		if err != nil {
			return c.Next()
		}
		c.Request().SetBody(cleaned)

		return c.Next()
	}
}

func sanitizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, inner := range val {
			if strings.HasPrefix(k, "$") || strings.Contains(k, ".") {
				delete(val, k)
				continue
			}
			val[k] = sanitizeValue(inner)
		}
		return val
	case []any:
		for i, inner := range val {
			val[i] = sanitizeValue(inner)
		}
		return val
	case string:
		return escapeMarkup(val)
	default:
		return v
	}
}

func escapeMarkup(s string) string {
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

// CollapseQueryParams defends against parameter pollution: when a query key
// repeats, only the last value survives unless the key is allowed to carry
// multiples.
func CollapseQueryParams(allowMultiple ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(allowMultiple))
	for _, k := range allowMultiple {
		allowed[k] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		args := c.Context().QueryArgs()
		if args.Len() == 0 {
			return c.Next()
		}

		type pair struct{ key, value string }
		var pairs []pair
		seen := map[string]int{}
		args.VisitAll(func(k, v []byte) {
			pairs = append(pairs, pair{string(k), string(v)})
			seen[string(k)]++
		})

		polluted := false
		for k, n := range seen {
			if n > 1 {
				if _, ok := allowed[k]; !ok {
					polluted = true
				}
			}
		}
		if !polluted {
			return c.Next()
		}

		values := url.Values{}
		for _, p := range pairs {
			if _, ok := allowed[p.key]; ok {
				values.Add(p.key, p.value)
				continue
			}
			values.Set(p.key, p.value)
		}
		c.Request().URI().SetQueryString(values.Encode())

		return c.Next()
	}
}
