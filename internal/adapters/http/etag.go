package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/etag"
)

// ETagMiddleware tags successful GET bodies with a weak validator and answers
// 304 on a matching If-None-Match. /metrics is never tagged.
func ETagMiddleware() fiber.Handler {
	return etag.New(etag.Config{
		Weak: true,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() != fiber.MethodGet || c.Path() == "/metrics"
		},
	})
}
