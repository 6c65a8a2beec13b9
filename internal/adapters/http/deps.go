package http

import (
	"github.com/nats-io/nats.go"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/adapters/postgres"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/adapters/valkey"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/usecases"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/canvas"
)

// Dependencies holds all services needed by HTTP handlers.
// Only Inspector is required; the rest degrade to 503 or "not configured".
type Dependencies struct {
	Inspector *usecases.InspectorService
	Polygons  *usecases.PolygonService
	Audit     *usecases.AuditService
	NATS      *nats.Conn
	DB        *postgres.DB
	Cache     *valkey.Cache

	Canvas    canvas.RenderOptions // default raster size
	RateLimit int                  // requests per minute per IP, 0 = 120
}
