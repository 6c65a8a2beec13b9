package http

import (
	"context"
	"strings"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/usecases"
)

// Raster sizes above this are refused.
const maxRenderSide = 4096

// polygonInput accepts a vertex list either as JSON points or as the
// line-oriented text format. Text wins when both are present.
type polygonInput struct {
	Vertices     domain.Polygon `json:"vertices"`
	VerticesText string         `json:"vertices_text"`
}

func (in polygonInput) resolve(ctx context.Context, inspector *usecases.InspectorService) (domain.Polygon, error) {
	if strings.TrimSpace(in.VerticesText) != "" {
		return inspector.ParseVertices(ctx, in.VerticesText)
	}
	if err := in.Vertices.Validate(); err != nil {
		return nil, err
	}
	return in.Vertices, nil
}

type classifyRequest struct {
	polygonInput
	Point *domain.Point `json:"point"`
}

type batchRequest struct {
	polygonInput
	Points []domain.Point `json:"points"`
}

type clickRequest struct {
	polygonInput
	Point  domain.Point `json:"point"` // current point, part of the view
	X      float64      `json:"x"`
	Y      float64      `json:"y"`
	Width  float64      `json:"width"`
	Height float64      `json:"height"`
}

type renderRequest struct {
	polygonInput
	Point  domain.Point `json:"point"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
}

type savePolygonRequest struct {
	polygonInput
	Name string `json:"name"`
}

// ClassificationResponse is a classification plus its display label.
type ClassificationResponse struct {
	Status      domain.Status `json:"status"`
	Label       string        `json:"label"`
	Message     string        `json:"message"`
	Point       domain.Point  `json:"point"`
	VertexCount int           `json:"vertex_count"`
	PolygonID   string        `json:"polygon_id,omitempty"`
}

func newClassificationResponse(c domain.Classification, p domain.Point, n int) ClassificationResponse {
	return ClassificationResponse{
		Status:      c.Status,
		Label:       c.Status.Label(),
		Message:     c.Message,
		Point:       p,
		VertexCount: n,
	}
}

// BatchResponse holds per-point results in request order plus a tally.
type BatchResponse struct {
	Results []domain.Classification `json:"results"`
	Inside  int                     `json:"inside"`
	OnEdge  int                     `json:"on_edge"`
	Outside int                     `json:"outside"`
}

func validatePoints(points []domain.Point) error {
	for _, p := range points {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	return nil
}
