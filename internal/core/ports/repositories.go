package ports

import (
	"context"

	"github.com/dmitar-strbac/convex-polygon-inspector/internal/core/domain"
)

// PolygonRepository persists named polygons.
type PolygonRepository interface {
	Create(ctx context.Context, poly *domain.SavedPolygon) error
	GetByID(ctx context.Context, id string) (*domain.SavedPolygon, error)
	List(ctx context.Context, offset, limit int) ([]domain.SavedPolygon, int, error)
	Delete(ctx context.Context, id string) error
}

// ClassificationLogRepository persists classification events.
type ClassificationLogRepository interface {
	Insert(ctx context.Context, event *domain.ClassificationEvent) error
	Recent(ctx context.Context, limit int) ([]domain.ClassificationEvent, error)
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
}
