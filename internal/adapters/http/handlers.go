package http

import (
	"bytes"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/usecases"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/canvas"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/geometry"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/metrics"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/vertexparse"
)

// ClassifyHandler locates one point against an inline polygon.
func ClassifyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req classifyRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Point == nil {
			return errBadRequest(c, "point is required")
		}
		if err := req.Point.Validate(); err != nil {
			return errBadRequest(c, err.Error())
		}

		ctx := c.UserContext()
		vertices, err := req.resolve(ctx, deps.Inspector)
		if err != nil {
			return errFromService(c, err)
		}

		result := deps.Inspector.Classify(ctx, vertices, *req.Point)
		return c.JSON(newClassificationResponse(result, *req.Point, len(vertices)))
	}
}

// ClassifyBatchHandler locates many points against one inline polygon.
func ClassifyBatchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req batchRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if len(req.Points) == 0 {
			return errBadRequest(c, "points must not be empty")
		}
		if len(req.Points) > 10000 {
			return errBadRequest(c, "too many points (max 10000)")
		}
		if err := validatePoints(req.Points); err != nil {
			return errBadRequest(c, err.Error())
		}

		ctx := c.UserContext()
		vertices, err := req.resolve(ctx, deps.Inspector)
		if err != nil {
			return errFromService(c, err)
		}

		results := deps.Inspector.ClassifyBatch(ctx, usecases.Query{Source: usecases.SourceBatch}, vertices, req.Points)
		report := domain.BatchReport{Results: results}
		for _, r := range results {
			report.Tally(r)
		}
		return c.JSON(BatchResponse{
			Results: report.Results,
			Inside:  report.Inside,
			OnEdge:  report.OnEdge,
			Outside: report.Outside,
		})
	}
}

// CheckHandler is the query-string form of ClassifyHandler. Vertex lines in
// the vertices parameter are separated by ';'.
func CheckHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		text := strings.ReplaceAll(c.Query("vertices"), ";", "\n")
		if strings.TrimSpace(text) == "" {
			return errBadRequest(c, "vertices query parameter is required")
		}
		point, err := queryPoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		ctx := c.UserContext()
		result, vertices, err := deps.Inspector.Inspect(ctx, usecases.Query{Source: usecases.SourceHTTP}, text, point)
		if err != nil {
			return errFromService(c, err)
		}

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(newClassificationResponse(result, point, len(vertices)))
	}
}

// CanvasClickHandler turns a click on the rendered canvas into a new query
// point and classifies it.
func CanvasClickHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req clickRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if req.Width <= 0 || req.Height <= 0 {
			return errBadRequest(c, "width and height must be positive")
		}
		if err := req.Point.Validate(); err != nil {
			return errBadRequest(c, err.Error())
		}

		ctx := c.UserContext()
		vertices, err := req.resolve(ctx, deps.Inspector)
		if err != nil {
			return errFromService(c, err)
		}

		view := canvas.ComputeView(vertices, req.Point)
		world := canvas.Click(view, req.X, req.Y, req.Width, req.Height)
		result := deps.Inspector.Classify(ctx, vertices, world)
		return c.JSON(newClassificationResponse(result, world, len(vertices)))
	}
}

// RenderHandler draws an inline scene as PNG.
func RenderHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req renderRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}
		if err := req.Point.Validate(); err != nil {
			return errBadRequest(c, err.Error())
		}

		vertices, err := req.resolve(c.UserContext(), deps.Inspector)
		if err != nil {
			return errFromService(c, err)
		}
		return sendPNG(c, deps, vertices, req.Point, req.Width, req.Height)
	}
}

// CreatePolygonHandler saves a named polygon.
func CreatePolygonHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Polygons == nil {
			return errUnavailable(c, "polygon store not configured")
		}
		var req savePolygonRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid request body")
		}

		ctx := c.UserContext()
		var (
			poly *domain.SavedPolygon
			err  error
		)
		if strings.TrimSpace(req.VerticesText) != "" {
			poly, err = deps.Polygons.SaveText(ctx, req.Name, req.VerticesText)
		} else {
			poly, err = deps.Polygons.Save(ctx, req.Name, req.Vertices)
		}
		if err != nil {
			return errFromService(c, err)
		}

		c.Location("/v1/polygons/" + poly.ID)
		return c.Status(fiber.StatusCreated).JSON(poly)
	}
}

// ListPolygonsHandler returns a page of saved polygons.
func ListPolygonsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Polygons == nil {
			return errUnavailable(c, "polygon store not configured")
		}
		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 50)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 200 {
			limit = 50
		}

		polygons, total, err := deps.Polygons.List(c.UserContext(), offset, limit)
		if err != nil {
			return errFromService(c, err)
		}
		if polygons == nil {
			polygons = []domain.SavedPolygon{}
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		c.Set("Cache-Control", "no-cache")
		return c.JSON(PaginatedResponse{Data: polygons, Pagination: pg})
	}
}

// GetPolygonHandler returns a saved polygon by ID.
func GetPolygonHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Polygons == nil {
			return errUnavailable(c, "polygon store not configured")
		}
		poly, err := deps.Polygons.GetByID(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromService(c, err)
		}
		return c.JSON(poly)
	}
}

// DeletePolygonHandler removes a saved polygon.
func DeletePolygonHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Polygons == nil {
			return errUnavailable(c, "polygon store not configured")
		}
		if err := deps.Polygons.Delete(c.UserContext(), c.Params("id")); err != nil {
			return errFromService(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ClassifyPolygonHandler locates ?x=&y= against a saved polygon.
func ClassifyPolygonHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Polygons == nil {
			return errUnavailable(c, "polygon store not configured")
		}
		point, err := queryPoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		ctx := c.UserContext()
		poly, err := deps.Polygons.GetByID(ctx, c.Params("id"))
		if err != nil {
			return errFromService(c, err)
		}
		q := usecases.Query{Source: usecases.SourceHTTP, PolygonID: poly.ID}
		result := deps.Inspector.ClassifyFor(ctx, q, poly.Vertices, point)

		resp := newClassificationResponse(result, point, len(poly.Vertices))
		resp.PolygonID = poly.ID
		c.Set("Cache-Control", "public, max-age=600")
		return c.JSON(resp)
	}
}

// RenderPolygonHandler draws a saved polygon with the ?x=&y= point as PNG.
func RenderPolygonHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Polygons == nil {
			return errUnavailable(c, "polygon store not configured")
		}
		point, err := queryPoint(c)
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		poly, err := deps.Polygons.GetByID(c.UserContext(), c.Params("id"))
		if err != nil {
			return errFromService(c, err)
		}
		c.Set("Cache-Control", "public, max-age=600")
		return sendPNG(c, deps, poly.Vertices, point, c.QueryInt("width"), c.QueryInt("height"))
	}
}

// AuditHandler lists recent classification events with per-status totals.
func AuditHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Audit == nil {
			return errUnavailable(c, "audit log not configured")
		}
		ctx := c.UserContext()
		events, err := deps.Audit.Recent(ctx, c.QueryInt("limit", 50))
		if err != nil {
			return errFromService(c, err)
		}
		if events == nil {
			events = []domain.ClassificationEvent{}
		}
		summary, err := deps.Audit.Summary(ctx)
		if err != nil {
			return errFromService(c, err)
		}

		c.Set("Cache-Control", "no-cache")
		return c.JSON(fiber.Map{
			"events":  events,
			"summary": summary,
		})
	}
}

// queryPoint reads the x and y query parameters.
func queryPoint(c *fiber.Ctx) (domain.Point, error) {
	x, err := vertexparse.ParseCoordinate(c.Query("x"))
	if err != nil {
		return domain.Point{}, err
	}
	y, err := vertexparse.ParseCoordinate(c.Query("y"))
	if err != nil {
		return domain.Point{}, err
	}
	return domain.Point{X: x, Y: y}, nil
}

// sendPNG renders the scene, colouring the point by its classification.
// Rendering does not publish classification events.
func sendPNG(c *fiber.Ctx, deps *Dependencies, vertices domain.Polygon, point domain.Point, width, height int) error {
	if width > maxRenderSide || height > maxRenderSide || width < 0 || height < 0 {
		return errBadRequest(c, "width and height must be between 1 and 4096")
	}
	opts := deps.Canvas
	if width > 0 {
		opts.Width = width
	}
	if height > 0 {
		opts.Height = height
	}

	scene := canvas.Scene{
		Vertices: vertices,
		Point:    point,
		Status:   geometry.Classify(vertices, point).Status,
	}
	var buf bytes.Buffer
	if err := canvas.Render(&buf, scene, opts); err != nil {
		metrics.RendersTotal.WithLabelValues("error").Inc()
		return errFromService(c, err)
	}
	metrics.RendersTotal.WithLabelValues("ok").Inc()

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(buf.Bytes())
}
