package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/metrics"
)

const requestTimeout = 15 * time.Second

// deprecatedRoutes lists endpoints kept for old clients.
var deprecatedRoutes = []DeprecatedRoute{
	{
		Path:        "/v1/check",
		SunsetDate:  time.Date(2027, time.June, 30, 0, 0, 0, 0, time.UTC),
		Alternative: "/v1/classify",
	},
}

// SetupRoutes registers all REST, GraphQL, and WebSocket routes.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	// Prometheus metrics
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	app.Use(requestid.New())
	app.Use(RequestIDLogMiddleware())
	app.Use(AccessLogMiddleware())

	rate := deps.RateLimit
	if rate <= 0 {
		rate = 120
	}
	app.Use(limiter.New(limiter.Config{
		Max:        rate,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	}))

	// Security headers + API version
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Set("X-API-Version", "1.0.0")
		return c.Next()
	})

	app.Use(DeprecationMiddleware(deprecatedRoutes))
	app.Use(ETagMiddleware())
	app.Use(CachingMiddleware())

	// Health & readiness (no timeout)
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	v1 := app.Group("/v1")
	v1.Post("/classify", withTimeout(ClassifyHandler(deps)))
	v1.Post("/classify/batch", withTimeout(ClassifyBatchHandler(deps)))
	v1.Get("/check", withTimeout(CheckHandler(deps)))
	v1.Post("/canvas/click", withTimeout(CanvasClickHandler(deps)))
	v1.Post("/render", withTimeout(RenderHandler(deps)))

	v1.Post("/polygons", withTimeout(CreatePolygonHandler(deps)))
	v1.Get("/polygons", withTimeout(ListPolygonsHandler(deps)))
	v1.Get("/polygons/:id", withTimeout(GetPolygonHandler(deps)))
	v1.Delete("/polygons/:id", withTimeout(DeletePolygonHandler(deps)))
	v1.Get("/polygons/:id/classify", withTimeout(ClassifyPolygonHandler(deps)))
	v1.Get("/polygons/:id/render", withTimeout(RenderPolygonHandler(deps)))

	v1.Get("/audit", withTimeout(AuditHandler(deps)))

	app.Post("/graphql", GraphQLHandler(deps))

	SetupDocs(app)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps)))
}

func withTimeout(h fiber.Handler) fiber.Handler {
	return timeout.NewWithContext(h, requestTimeout)
}
