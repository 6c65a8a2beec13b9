package workflows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.temporal.io/sdk/temporal"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/ports"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/usecases"
)

// BatchActivities holds the activity implementations for BatchClassifyWorkflow.
type BatchActivities struct {
	Polygons  *usecases.PolygonService
	Inspector *usecases.InspectorService
	Events    ports.EventPublisher // optional
}

// LoadPolygon returns the vertices of a saved polygon. A missing polygon is
// not retried.
func (a *BatchActivities) LoadPolygon(ctx context.Context, polygonID string) (domain.Polygon, error) {
	poly, err := a.Polygons.GetByID(ctx, polygonID)
	if errors.Is(err, domain.ErrPolygonNotFound) {
		return nil, temporal.NewNonRetryableApplicationError("polygon "+polygonID+" not found", "InvalidInput", err)
	}
	if err != nil {
		return nil, fmt.Errorf("load polygon %s: %w", polygonID, err)
	}
	return poly.Vertices, nil
}

// ClassifyPoints locates one chunk of points.
func (a *BatchActivities) ClassifyPoints(ctx context.Context, polygonID string, vertices domain.Polygon, points []domain.Point) ([]domain.Classification, error) {
	q := usecases.Query{Source: usecases.SourceBatch, PolygonID: polygonID}
	return a.Inspector.ClassifyBatch(ctx, q, vertices, points), nil
}

// PublishReport announces a finished batch.
func (a *BatchActivities) PublishReport(ctx context.Context, report domain.BatchReport) error {
	if a.Events == nil {
		slog.Info("batch finished (no publisher)",
			"polygon_id", report.PolygonID,
			"inside", report.Inside, "on_edge", report.OnEdge, "outside", report.Outside)
		return nil
	}
	return a.Events.PublishBatchReport(ctx, &report)
}
