package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/ports"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/geometry"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/metrics"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/telemetry"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/vertexparse"
)

// Classification sources, used for metrics and the audit log.
const (
	SourceHTTP    = "http"
	SourceGraphQL = "graphql"
	SourceWS      = "ws"
	SourceBatch   = "batch"
	SourceCLI     = "cli"
)

// Query describes who is asking, and about which saved polygon if any.
type Query struct {
	Source    string
	PolygonID string
}

// InspectorService wraps the point-location engine with tracing, metrics and
// event publishing. The geometry itself is stateless.
type InspectorService struct {
	events ports.EventPublisher
	now    func() time.Time
}

// NewInspectorService creates a new InspectorService. events may be nil.
func NewInspectorService(events ports.EventPublisher) *InspectorService {
	return &InspectorService{events: events, now: time.Now}
}

// Classify locates point against vertices on behalf of an HTTP caller.
func (s *InspectorService) Classify(ctx context.Context, vertices domain.Polygon, point domain.Point) domain.Classification {
	return s.ClassifyFor(ctx, Query{Source: SourceHTTP}, vertices, point)
}

// ClassifyFor locates point against vertices and records the outcome.
func (s *InspectorService) ClassifyFor(ctx context.Context, q Query, vertices domain.Polygon, point domain.Point) domain.Classification {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanClassify)
	defer span.End()

	result := geometry.Classify(vertices, point)

	span.SetAttributes(
		telemetry.AttrVertexCount.Int(len(vertices)),
		telemetry.AttrStatus.String(string(result.Status)),
		telemetry.AttrSource.String(q.Source),
	)
	if q.PolygonID != "" {
		span.SetAttributes(telemetry.AttrPolygonID.String(q.PolygonID))
	}
	s.observe(q.Source, len(vertices), result)
	s.publish(ctx, q, len(vertices), point, result)

	return result
}

// Inspect parses vertex text and classifies point against it. A parse error
// short-circuits: no classification is attempted.
func (s *InspectorService) Inspect(ctx context.Context, q Query, text string, point domain.Point) (domain.Classification, domain.Polygon, error) {
	vertices, err := s.ParseVertices(ctx, text)
	if err != nil {
		return domain.Classification{}, nil, err
	}
	return s.ClassifyFor(ctx, q, vertices, point), vertices, nil
}

// ParseVertices parses vertex text, counting failures.
func (s *InspectorService) ParseVertices(ctx context.Context, text string) (domain.Polygon, error) {
	_, span := telemetry.Tracer().Start(ctx, telemetry.SpanParse)
	defer span.End()

	vertices, err := vertexparse.Parse(text)
	if err != nil {
		metrics.ParseErrors.Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid vertex text")
		return nil, fmt.Errorf("parse vertices: %w", err)
	}
	span.SetAttributes(telemetry.AttrVertexCount.Int(len(vertices)))
	return vertices, nil
}

// ClassifyBatch locates every point against one polygon, normalizing the
// vertices once. Batch results are counted but not published one by one.
func (s *InspectorService) ClassifyBatch(ctx context.Context, q Query, vertices domain.Polygon, points []domain.Point) []domain.Classification {
	_, span := telemetry.Tracer().Start(ctx, telemetry.SpanClassifyBatch)
	defer span.End()
	span.SetAttributes(
		telemetry.AttrVertexCount.Int(len(vertices)),
		telemetry.AttrPointCount.Int(len(points)),
		telemetry.AttrSource.String(q.Source),
	)

	out := make([]domain.Classification, len(points))
	if len(vertices) < 3 {
		for i := range points {
			out[i] = geometry.Classify(vertices, points[i])
			s.observe(q.Source, len(vertices), out[i])
		}
		return out
	}

	loc := geometry.NewLocator(vertices)
	for i, p := range points {
		out[i] = loc.Locate(p)
		s.observe(q.Source, len(vertices), out[i])
	}
	return out
}

func (s *InspectorService) observe(source string, n int, c domain.Classification) {
	metrics.Classifications.WithLabelValues(string(c.Status), source).Inc()
	metrics.PolygonVertices.Observe(float64(n))
}

func (s *InspectorService) publish(ctx context.Context, q Query, n int, point domain.Point, c domain.Classification) {
	if s.events == nil {
		return
	}
	event := &domain.ClassificationEvent{
		Time:        s.now().UTC(),
		PolygonID:   q.PolygonID,
		VertexCount: n,
		Point:       point,
		Status:      c.Status,
		Message:     c.Message,
		Source:      q.Source,
	}
	if err := s.events.PublishClassification(ctx, event); err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		slog.WarnContext(ctx, "publish classification failed", "error", err)
		return
	}
	metrics.EventsPublished.WithLabelValues("ok").Inc()
}
