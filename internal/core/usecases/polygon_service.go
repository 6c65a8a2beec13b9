package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/ports"
	"github.com/dmitar-strbac/convex-polygon-inspector/internal/pkg/metrics"
)

const polygonCacheTTL = 600 // seconds

// PolygonService manages saved polygons and queries against them.
type PolygonService struct {
	polygons  ports.PolygonRepository
	cache     ports.CacheService
	inspector *InspectorService
}

// NewPolygonService creates a new PolygonService. cache may be nil.
func NewPolygonService(polygons ports.PolygonRepository, cache ports.CacheService, inspector *InspectorService) *PolygonService {
	return &PolygonService{polygons: polygons, cache: cache, inspector: inspector}
}

func polygonCacheKey(id string) string {
	return "polygons:id:" + id
}

// Save stores a named polygon. The vertex order is kept as given.
func (s *PolygonService) Save(ctx context.Context, name string, vertices domain.Polygon) (*domain.SavedPolygon, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyName
	}
	if len(vertices) < 3 {
		return nil, domain.ErrTooFewVertices
	}
	if err := vertices.Validate(); err != nil {
		return nil, err
	}

	poly := &domain.SavedPolygon{Name: name, Vertices: vertices}
	if err := s.polygons.Create(ctx, poly); err != nil {
		return nil, fmt.Errorf("create polygon: %w", err)
	}
	return poly, nil
}

// SaveText parses vertex text and stores the result.
func (s *PolygonService) SaveText(ctx context.Context, name, text string) (*domain.SavedPolygon, error) {
	vertices, err := s.inspector.ParseVertices(ctx, text)
	if err != nil {
		return nil, err
	}
	return s.Save(ctx, name, vertices)
}

// GetByID returns a saved polygon, reading through the cache.
func (s *PolygonService) GetByID(ctx context.Context, id string) (*domain.SavedPolygon, error) {
	cacheKey := polygonCacheKey(id)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var poly domain.SavedPolygon
			if err := json.Unmarshal(data, &poly); err == nil {
				metrics.CacheHits.WithLabelValues("polygon").Inc()
				return &poly, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("polygon").Inc()
	}

	poly, err := s.polygons.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(poly); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, polygonCacheTTL)
		}
	}

	return poly, nil
}

// List returns a page of saved polygons and the total count.
func (s *PolygonService) List(ctx context.Context, offset, limit int) ([]domain.SavedPolygon, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.polygons.List(ctx, offset, limit)
}

// Delete removes a saved polygon and its cache entry.
func (s *PolygonService) Delete(ctx context.Context, id string) error {
	if err := s.polygons.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, polygonCacheKey(id))
	}
	return nil
}

// Classify locates point against the saved polygon id.
func (s *PolygonService) Classify(ctx context.Context, q Query, id string, point domain.Point) (domain.Classification, error) {
	poly, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Classification{}, err
	}
	q.PolygonID = poly.ID
	return s.inspector.ClassifyFor(ctx, q, poly.Vertices, point), nil
}

// ClassifyBatch locates many points against the saved polygon id.
func (s *PolygonService) ClassifyBatch(ctx context.Context, id string, points []domain.Point) (*domain.BatchReport, error) {
	poly, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	results := s.inspector.ClassifyBatch(ctx, Query{Source: SourceBatch, PolygonID: poly.ID}, poly.Vertices, points)
	report := &domain.BatchReport{PolygonID: poly.ID, Results: results}
	for _, r := range results {
		report.Tally(r)
	}
	return report, nil
}
